package pages

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/recovery"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

const (
	MsgVerifyCodeSent  = "Verification OTP sent to your email"
	MsgEmailVerified   = "Email verified successfully"
	MsgAlreadyVerified = "Account is already verified"
)

// EmailVerify confirms the address of the logged-in account with a code
// sent by the backend.
type EmailVerify struct {
	deps *Deps
	busy busy
}

func NewEmailVerify(d *Deps) *EmailVerify { return &EmailVerify{deps: d} }

func (p *EmailVerify) Title() string { return "Verify email" }

// SendCode asks the backend to mail a verification code.
func (p *EmailVerify) SendCode(ctx context.Context) error {
	if err := p.deps.Auth.SendVerifyOTP(ctx); err != nil {
		notify.Error(p.deps.notifier(), client.UserMessage(err, client.GenericMessage))
		return err
	}
	notify.Success(p.deps.notifier(), MsgVerifyCodeSent)
	return nil
}

// Submit sends a complete code. On success the profile is reloaded and the
// dashboard is next.
func (p *EmailVerify) Submit(ctx context.Context, code *recovery.OTP) (string, error) {
	if err := p.busy.acquire(); err != nil {
		return "", err
	}
	defer p.busy.release()

	if !code.Complete() {
		return "", recovery.ErrIncompleteOTP
	}
	if err := p.deps.Auth.VerifyEmail(ctx, code.Code()); err != nil {
		notify.Error(p.deps.notifier(), client.UserMessage(err, client.GenericMessage))
		code.Reset()
		return "", err
	}
	notify.Success(p.deps.notifier(), MsgEmailVerified)
	_ = p.deps.Session.FetchProfile(ctx)
	return routepath.Dashboard, nil
}

func (p *EmailVerify) Render(ctx context.Context, ui UI) (string, error) {
	snap := p.deps.Session.Snapshot()
	if snap.User != nil && snap.User.IsAccountVerified {
		notify.Info(p.deps.notifier(), MsgAlreadyVerified)
		return routepath.Dashboard, nil
	}
	if err := p.SendCode(ctx); err != nil {
		return routepath.Dashboard, nil
	}

	ui.Println("Enter the 6-digit code sent to your email (resend for a new one, empty to go back).")
	var code recovery.OTP
	for {
		line, err := ui.ReadLine(ctx, "Code")
		if err != nil {
			return "", err
		}
		switch strings.TrimSpace(line) {
		case "":
			return routepath.Dashboard, nil
		case "resend":
			code.Reset()
			_ = p.SendCode(ctx)
			continue
		}
		code.Paste(line)
		next, err := p.Submit(ctx, &code)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, recovery.ErrIncompleteOTP) {
			ui.Println("  " + err.Error())
			code.Reset()
		}
	}
}
