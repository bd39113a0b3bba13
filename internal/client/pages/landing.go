package pages

import (
	"context"

	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

type Landing struct {
	deps *Deps
}

func NewLanding(d *Deps) *Landing { return &Landing{deps: d} }

func (p *Landing) Title() string { return "Welcome" }

func (p *Landing) Render(_ context.Context, ui UI) (string, error) {
	snap := p.deps.Session.Snapshot()
	ui.Println("Hey " + snap.User.DisplayName() + "! Welcome to authflow.")
	if snap.IsLoggedIn {
		ui.Println("You are signed in. Open your dashboard with: go " + routepath.Dashboard)
		return "", nil
	}
	ui.Println("Sign in with: login   Create an account with: signup")
	return "", nil
}

type NotFound struct{}

func (NotFound) Title() string { return "Not found" }

func (NotFound) Render(_ context.Context, ui UI) (string, error) {
	ui.Println("Page not found. Type help for the list of commands.")
	return "", nil
}
