package recovery

import (
	"context"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/validation"
	"github.com/dmitrijs2005/authflow/internal/common"
)

// EmailEntry collects the address the code is sent to.
type EmailEntry struct {
	api      API
	notifier notify.Notifier
	onSent   func(email string) error
}

// Submit validates email and requests a code for it. Validation failures
// come back as validation.Errors and reach no server. A rejected request
// emits an error notice and the stage stays where it is.
func (e *EmailEntry) Submit(ctx context.Context, email string) error {
	if err := validation.Check(validation.ResetEmail{Email: email}); err != nil {
		return err
	}
	if err := e.api.SendResetOTP(ctx, email); err != nil {
		notify.Error(e.notifier, client.UserMessage(err, client.GenericMessage))
		return err
	}
	notify.Success(e.notifier, MsgCodeSent)
	return e.onSent(email)
}

// OTPEntry collects the six digit code.
type OTPEntry struct {
	email      string
	cells      OTP
	verify     bool
	api        API
	notifier   notify.Notifier
	onVerified func(code string) error
}

// Email is the address the code was sent to.
func (o *OTPEntry) Email() string { return o.email }

// Cells exposes the input model for editing.
func (o *OTPEntry) Cells() *OTP { return &o.cells }

// CanSubmit reports whether all cells are filled.
func (o *OTPEntry) CanSubmit() bool { return o.cells.Complete() }

// Submit accepts the code. With the server check enabled a rejected code
// emits an error notice and empties the cells.
func (o *OTPEntry) Submit(ctx context.Context) error {
	if !o.cells.Complete() {
		return ErrIncompleteOTP
	}
	code := o.cells.Code()
	if o.verify {
		if err := o.api.VerifyResetOTP(ctx, o.email, code); err != nil {
			notify.Error(o.notifier, client.UserMessage(err, client.GenericMessage))
			o.cells.Reset()
			return err
		}
	}
	return o.onVerified(code)
}

// Resend asks for a new code for the same email. The step does not change.
func (o *OTPEntry) Resend(ctx context.Context) error {
	if err := o.api.SendResetOTP(ctx, o.email); err != nil {
		notify.Error(o.notifier, client.UserMessage(err, client.GenericMessage))
		return err
	}
	o.cells.Reset()
	notify.Success(o.notifier, MsgCodeSent)
	return nil
}

// NewPassword collects and commits the new password.
type NewPassword struct {
	email    string
	otp      string
	api      API
	notifier notify.Notifier
	onReset  func() error
}

func (n *NewPassword) Email() string { return n.email }

// Submit validates the pair and commits it. Both buffers are wiped whatever
// the outcome.
func (n *NewPassword) Submit(ctx context.Context, newPassword, confirm []byte) error {
	defer common.WipeByteArray(newPassword)
	defer common.WipeByteArray(confirm)

	form := validation.NewPassword{NewPassword: string(newPassword), ConfirmPassword: string(confirm)}
	if err := validation.Check(form); err != nil {
		return err
	}
	if err := n.api.ResetPassword(ctx, n.email, n.otp, newPassword); err != nil {
		notify.Error(n.notifier, client.UserMessage(err, client.GenericMessage))
		return err
	}
	notify.Success(n.notifier, MsgPasswordReset)
	return n.onReset()
}
