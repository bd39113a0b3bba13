package pages

import (
	"context"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

type Logout struct {
	deps *Deps
	busy busy
}

func NewLogout(d *Deps) *Logout { return &Logout{deps: d} }

func (p *Logout) Title() string { return "Logout" }

// Submit ends the session. On success the session store is reset and the
// landing page is next; on failure the user goes back to the dashboard,
// still logged in.
func (p *Logout) Submit(ctx context.Context) (string, error) {
	if err := p.busy.acquire(); err != nil {
		return "", err
	}
	defer p.busy.release()

	if err := p.deps.Auth.Logout(ctx); err != nil {
		notify.Error(p.deps.notifier(), client.UserMessage(err, client.GenericMessage))
		return routepath.Dashboard, err
	}
	p.deps.Session.Logout()
	return routepath.Landing, nil
}

func (p *Logout) Render(ctx context.Context, _ UI) (string, error) {
	next, _ := p.Submit(ctx)
	return next, nil
}
