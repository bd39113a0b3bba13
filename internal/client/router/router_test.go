package router

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authflow/internal/client/apitest"
	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/pages"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
	"github.com/dmitrijs2005/authflow/internal/client/services"
	"github.com/dmitrijs2005/authflow/internal/client/session"
)

type bufUI struct {
	out    strings.Builder
	inputs []string
}

func (b *bufUI) Println(a ...any)               { fmt.Fprintln(&b.out, a...) }
func (b *bufUI) Printf(format string, a ...any) { fmt.Fprintf(&b.out, format, a...) }
func (b *bufUI) ReadLine(context.Context, string) (string, error) {
	if len(b.inputs) == 0 {
		return "", io.EOF
	}
	v := b.inputs[0]
	b.inputs = b.inputs[1:]
	return v, nil
}
func (b *bufUI) ReadSecret(ctx context.Context, prompt string) ([]byte, error) {
	v, err := b.ReadLine(ctx, prompt)
	return []byte(v), err
}

type fixture struct {
	srv    *apitest.Server
	deps   *pages.Deps
	rec    *notify.Recorder
	ui     *bufUI
	router *Router
}

func setup(t *testing.T) *fixture {
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
	deps := &pages.Deps{
		Session:  store,
		Auth:     auth,
		Recovery: services.NewRecoveryService(api, nil),
		Notifier: rec,
	}
	ui := &bufUI{}
	return &fixture{
		srv:    srv,
		deps:   deps,
		rec:    rec,
		ui:     ui,
		router: New(pages.Routes(deps), store, ui, nil),
	}
}

func TestNavigate_ProtectedWithoutSessionGoesHome(t *testing.T) {
	f := setup(t)

	got, err := f.router.Navigate(context.Background(), "/dashboard/")

	require.NoError(t, err)
	assert.Equal(t, routepath.Landing, got)
	assert.Equal(t, routepath.Landing, f.router.Current())
	assert.Contains(t, f.ui.out.String(), "Hey Developer!")
	assert.NotContains(t, f.ui.out.String(), "Welcome, ")
	assert.Equal(t, 1, f.srv.Count("GET /is-authenticated"))
	last, ok := f.rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.KindError, last.Kind)
}

func TestNavigate_ProtectedWithSession(t *testing.T) {
	f := setup(t)
	f.srv.AddUser("Ada", "ada@example.com", "Secret1", true)
	f.srv.Delay("/is-authenticated", 30*time.Millisecond)
	_, err := pages.NewLogin(f.deps).Submit(context.Background(), "ada@example.com", []byte("Secret1"))
	require.NoError(t, err)

	got, err := f.router.Navigate(context.Background(), routepath.Dashboard)

	require.NoError(t, err)
	assert.Equal(t, routepath.Dashboard, got)
	out := f.ui.out.String()
	assert.Contains(t, out, Skeleton)
	assert.Contains(t, out, "(A) Welcome, Ada")
	assert.Less(t, strings.Index(out, Skeleton), strings.Index(out, "Welcome, Ada"))
}

func TestNavigate_PublicSkipsCheck(t *testing.T) {
	f := setup(t)
	f.ui.inputs = []string{""}

	got, err := f.router.Navigate(context.Background(), routepath.Login)

	require.NoError(t, err)
	assert.Equal(t, routepath.Landing, got, "empty email leaves the login page")
	assert.Zero(t, f.srv.Count("GET /is-authenticated"))
}

func TestNavigate_UnknownPath(t *testing.T) {
	f := setup(t)
	f.srv.AddUser("Ada", "ada@example.com", "Secret1", true)
	_, err := pages.NewLogin(f.deps).Submit(context.Background(), "ada@example.com", []byte("Secret1"))
	require.NoError(t, err)

	got, err := f.router.Navigate(context.Background(), "/nowhere")

	require.NoError(t, err)
	assert.Equal(t, "/nowhere", got)
	assert.Contains(t, f.ui.out.String(), "Page not found")
	assert.Equal(t, 1, f.srv.Count("GET /is-authenticated"), "unknown paths are not public")
}

type bounce struct{ to string }

func (b bounce) Title() string { return "bounce" }

func (b bounce) Render(context.Context, pages.UI) (string, error) { return b.to, nil }

func TestNavigate_RedirectLoop(t *testing.T) {
	f := setup(t)
	f.router.pages = map[string]pages.Page{
		routepath.Landing: bounce{to: routepath.Login},
		routepath.Login:   bounce{to: routepath.Landing},
	}

	_, err := f.router.Navigate(context.Background(), routepath.Landing)

	assert.ErrorIs(t, err, ErrTooManyRedirects)
}

func TestNavigate_CanceledWhileChecking(t *testing.T) {
	f := setup(t)
	f.srv.Delay("/is-authenticated", time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.router.Navigate(ctx, routepath.Dashboard)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
