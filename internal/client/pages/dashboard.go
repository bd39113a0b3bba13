package pages

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

type Dashboard struct {
	deps *Deps
}

func NewDashboard(d *Deps) *Dashboard { return &Dashboard{deps: d} }

func (p *Dashboard) Title() string { return "Dashboard" }

// Render shows the header and account card. A missing profile renders with
// the display fallbacks.
func (p *Dashboard) Render(_ context.Context, ui UI) (string, error) {
	snap := p.deps.Session.Snapshot()
	if !snap.IsLoggedIn {
		return routepath.Landing, nil
	}
	user := snap.User

	ui.Printf("(%s) Welcome, %s\n", user.Initial(), user.DisplayName())
	if user != nil {
		ui.Printf("  Email:    %s\n", user.Email)
		if user.IsAccountVerified {
			ui.Println("  Account:  verified")
		} else {
			ui.Println("  Account:  not verified (type verify to confirm your email)")
		}
	}
	if cred, ok := p.deps.Auth.Credential(); ok && !cred.ExpiresAt.IsZero() {
		left := cred.ExpiresAt.Sub(p.deps.now()).Round(time.Minute)
		ui.Printf("  Session:  expires %s (in %s)\n", cred.ExpiresAt.Local().Format(time.RFC1123), left)
	}
	ui.Println("Actions: verify, logout")
	return "", nil
}
