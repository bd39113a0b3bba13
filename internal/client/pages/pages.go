// Package pages holds the screens of the client, one per route. A form
// page exposes Submit, which runs exactly one request/response cycle, and
// Render, which drives Submit from user input.
package pages

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/services"
	"github.com/dmitrijs2005/authflow/internal/client/session"
	"github.com/dmitrijs2005/authflow/internal/client/validation"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// ErrBusy is returned when a page is submitted while its previous
// submission is still running.
var ErrBusy = errors.New("a submission is already in progress")

// UI is the surface a page writes to and reads from.
type UI interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadLine(ctx context.Context, prompt string) (string, error)
	ReadSecret(ctx context.Context, prompt string) ([]byte, error)
}

// Page renders one route. The returned path, when not empty, is where the
// router goes next.
type Page interface {
	Title() string
	Render(ctx context.Context, ui UI) (string, error)
}

// Deps are the collaborators shared by all pages.
type Deps struct {
	Session  *session.Store
	Auth     services.AuthService
	Recovery services.RecoveryService
	Notifier notify.Notifier
	Logger   logging.Logger

	// MinLoading keeps a submission in its loading state at least this long.
	MinLoading time.Duration
	// VerifyResetOTP enables the backend check of reset codes.
	VerifyResetOTP bool

	Now func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) logger() logging.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return logging.Discard()
}

func (d *Deps) notifier() notify.Notifier {
	if d.Notifier != nil {
		return d.Notifier
	}
	return notify.Discard{}
}

type busy struct {
	flag atomic.Bool
}

func (b *busy) acquire() error {
	if !b.flag.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (b *busy) release() { b.flag.Store(false) }

// settle waits until min has passed since started.
func settle(ctx context.Context, started time.Time, min time.Duration, now time.Time) {
	remaining := min - now.Sub(started)
	if remaining <= 0 {
		return
	}
	t := time.NewTimer(remaining)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// showFieldErrors prints field messages in form order.
func showFieldErrors(ui UI, err error, order ...string) bool {
	verrs, ok := validation.AsErrors(err)
	if !ok {
		return false
	}
	for _, f := range order {
		if msg := verrs.Field(f); msg != "" {
			ui.Printf("  %s: %s\n", f, msg)
		}
	}
	return true
}
