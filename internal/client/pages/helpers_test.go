package pages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authflow/internal/client/apitest"
	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/services"
	"github.com/dmitrijs2005/authflow/internal/client/session"
)

// scriptUI answers prompts from a fixed list of inputs and records output.
// When the script runs out it returns io.EOF.
type scriptUI struct {
	inputs  []string
	prompts []string
	out     strings.Builder
}

func newScript(inputs ...string) *scriptUI { return &scriptUI{inputs: inputs} }

func (s *scriptUI) Println(a ...any) { fmt.Fprintln(&s.out, a...) }

func (s *scriptUI) Printf(format string, a ...any) { fmt.Fprintf(&s.out, format, a...) }

func (s *scriptUI) next(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.inputs) == 0 {
		return "", io.EOF
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *scriptUI) ReadLine(_ context.Context, prompt string) (string, error) {
	return s.next(prompt)
}

func (s *scriptUI) ReadSecret(_ context.Context, prompt string) ([]byte, error) {
	v, err := s.next(prompt)
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (s *scriptUI) Output() string { return s.out.String() }

type env struct {
	srv   *apitest.Server
	deps  *Deps
	rec   *notify.Recorder
	store *session.Store
	jar   *client.PersistentJar
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.APIURL())
	require.NoError(t, err)
	jar, err := client.NewPersistentJar(base, nil, nil)
	require.NoError(t, err)
	api, err := client.NewHTTPClient(srv.APIURL(), jar, nil)
	require.NoError(t, err)

	rec := &notify.Recorder{}
	auth := services.NewAuthService(api, jar, nil)
	store := session.NewStore(auth, rec, nil)
	deps := &Deps{
		Session:  store,
		Auth:     auth,
		Recovery: services.NewRecoveryService(api, nil),
		Notifier: rec,
	}
	return &env{srv: srv, deps: deps, rec: rec, store: store, jar: jar}
}

func (e *env) login(t *testing.T, email, password string) {
	t.Helper()
	_, err := NewLogin(e.deps).Submit(context.Background(), email, []byte(password))
	require.NoError(t, err)
	e.rec.Reset()
}
