package pages

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/authflow/internal/client/recovery"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
	"github.com/dmitrijs2005/authflow/internal/common"
)

// ResetPassword runs the recovery journey. Each visit starts a fresh flow;
// leaving before the end abandons it.
type ResetPassword struct {
	deps *Deps
	busy busy
}

func NewResetPassword(d *Deps) *ResetPassword { return &ResetPassword{deps: d} }

func (p *ResetPassword) Title() string { return "Reset password" }

// NewFlow builds the journey with the page settings.
func (p *ResetPassword) NewFlow() *recovery.Flow {
	return recovery.NewFlow(p.deps.Recovery, p.deps.notifier(),
		recovery.WithServerOTPCheck(p.deps.VerifyResetOTP),
		recovery.WithLogger(p.deps.logger()),
	)
}

func (p *ResetPassword) Render(ctx context.Context, ui UI) (string, error) {
	if err := p.busy.acquire(); err != nil {
		return "", err
	}
	defer p.busy.release()

	flow := p.NewFlow()
	defer func() {
		if !flow.Done() {
			flow.Abandon()
		}
	}()

	if back, err := p.emailStage(ctx, ui, flow); back || err != nil {
		return routepath.Login, err
	}
	if back, err := p.codeStage(ctx, ui, flow); back || err != nil {
		return routepath.Login, err
	}
	if back, err := p.passwordStage(ctx, ui, flow); back || err != nil {
		return routepath.Login, err
	}
	return flow.Redirect(), nil
}

func (p *ResetPassword) emailStage(ctx context.Context, ui UI, flow *recovery.Flow) (bool, error) {
	stage, err := flow.EmailEntry()
	if err != nil {
		return false, err
	}
	ui.Println("Reset Password. Enter your registered email address (empty to go back).")
	for {
		email, err := ui.ReadLine(ctx, "Email")
		if err != nil {
			return false, err
		}
		if email == "" {
			return true, nil
		}
		err = stage.Submit(ctx, email)
		if err == nil {
			return false, nil
		}
		showFieldErrors(ui, err, "email")
	}
}

func (p *ResetPassword) codeStage(ctx context.Context, ui UI, flow *recovery.Flow) (bool, error) {
	stage, err := flow.OTPEntry()
	if err != nil {
		return false, err
	}
	ui.Printf("Enter the 6-digit code sent to %s (resend for a new one, empty to go back).\n", stage.Email())
	for {
		line, err := ui.ReadLine(ctx, "Code")
		if err != nil {
			return false, err
		}
		switch strings.TrimSpace(line) {
		case "":
			return true, nil
		case "resend":
			_ = stage.Resend(ctx)
			continue
		}
		stage.Cells().Paste(line)
		err = stage.Submit(ctx)
		if err == nil {
			return false, nil
		}
		if errors.Is(err, recovery.ErrIncompleteOTP) {
			ui.Println("  " + err.Error())
			stage.Cells().Reset()
		}
	}
}

func (p *ResetPassword) passwordStage(ctx context.Context, ui UI, flow *recovery.Flow) (bool, error) {
	stage, err := flow.NewPassword()
	if err != nil {
		return false, err
	}
	ui.Println("Choose a new password.")
	for {
		pw, err := ui.ReadSecret(ctx, "New password")
		if err != nil {
			return false, err
		}
		if len(pw) == 0 {
			return true, nil
		}
		confirm, err := ui.ReadSecret(ctx, "Confirm password")
		if err != nil {
			common.WipeByteArray(pw)
			return false, err
		}
		err = stage.Submit(ctx, pw, confirm)
		if err == nil {
			return false, nil
		}
		showFieldErrors(ui, err, "newPassword", "confirmPassword")
	}
}
