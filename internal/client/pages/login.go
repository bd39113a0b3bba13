package pages

import (
	"context"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
	"github.com/dmitrijs2005/authflow/internal/client/validation"
	"github.com/dmitrijs2005/authflow/internal/common"
)

const MsgLoginSuccess = "Login successful"

type Login struct {
	deps *Deps
	busy busy
}

func NewLogin(d *Deps) *Login { return &Login{deps: d} }

func (p *Login) Title() string { return "Sign in" }

// Submit validates the form and posts it. On success the session is marked
// logged in, the profile is loaded and the dashboard is returned as the
// next page. password is wiped.
func (p *Login) Submit(ctx context.Context, email string, password []byte) (string, error) {
	if err := p.busy.acquire(); err != nil {
		common.WipeByteArray(password)
		return "", err
	}
	defer p.busy.release()

	if err := validation.Check(validation.Login{Email: email, Password: string(password)}); err != nil {
		common.WipeByteArray(password)
		return "", err
	}

	started := p.deps.now()
	err := p.deps.Auth.Login(ctx, email, password)
	settle(ctx, started, p.deps.MinLoading, p.deps.now())
	if err != nil {
		notify.Error(p.deps.notifier(), client.UserMessage(err, client.GenericMessage))
		return "", err
	}

	p.deps.Session.Login()
	_ = p.deps.Session.FetchProfile(ctx)
	notify.Success(p.deps.notifier(), MsgLoginSuccess)
	return routepath.Dashboard, nil
}

// Render asks for credentials until a login succeeds. An empty email goes
// back to the landing page.
func (p *Login) Render(ctx context.Context, ui UI) (string, error) {
	ui.Println("Welcome Back. Sign in to your account (empty email to go back).")
	for {
		email, err := ui.ReadLine(ctx, "Email")
		if err != nil {
			return "", err
		}
		if email == "" {
			return routepath.Landing, nil
		}
		password, err := ui.ReadSecret(ctx, "Password")
		if err != nil {
			return "", err
		}
		next, err := p.Submit(ctx, email, password)
		if err == nil {
			return next, nil
		}
		showFieldErrors(ui, err, "email", "password")
	}
}
