package pages

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
	"github.com/dmitrijs2005/authflow/internal/client/validation"
	"github.com/dmitrijs2005/authflow/internal/common"
)

const (
	MsgAccountCreated = "Account Created Successfully"
	MsgEmailExists    = "Email Already Exist"
)

// SignUpForm is what the sign-up page collects.
type SignUpForm struct {
	Name            string
	Email           string
	Password        []byte
	ConfirmPassword []byte
	AcceptTerms     bool
}

func (f *SignUpForm) wipe() {
	common.WipeByteArray(f.Password)
	common.WipeByteArray(f.ConfirmPassword)
}

type SignUp struct {
	deps *Deps
	busy busy
}

func NewSignUp(d *Deps) *SignUp { return &SignUp{deps: d} }

func (p *SignUp) Title() string { return "Create Account" }

// Submit validates and registers the account. Only a 201 counts as
// success; the login page is next.
func (p *SignUp) Submit(ctx context.Context, form SignUpForm) (string, error) {
	if err := p.busy.acquire(); err != nil {
		form.wipe()
		return "", err
	}
	defer p.busy.release()

	schema := validation.SignUp{
		Name:            form.Name,
		Email:           form.Email,
		Password:        string(form.Password),
		ConfirmPassword: string(form.ConfirmPassword),
	}
	if err := validation.Check(schema); err != nil {
		form.wipe()
		return "", err
	}

	started := p.deps.now()
	err := p.deps.Auth.Register(ctx, form.Name, form.Email, form.Password, form.ConfirmPassword, form.AcceptTerms)
	settle(ctx, started, p.deps.MinLoading, p.deps.now())
	if err != nil {
		msg := client.UserMessage(err, client.GenericMessage)
		if code := client.StatusCode(err); code >= 200 && code < 300 {
			msg = MsgEmailExists
		}
		notify.Error(p.deps.notifier(), msg)
		return "", err
	}

	notify.Success(p.deps.notifier(), MsgAccountCreated)
	return routepath.Login, nil
}

func (p *SignUp) Render(ctx context.Context, ui UI) (string, error) {
	ui.Println("Create Account. Join us and get started (empty name to go back).")
	for {
		name, err := ui.ReadLine(ctx, "Name")
		if err != nil {
			return "", err
		}
		if name == "" {
			return routepath.Landing, nil
		}
		email, err := ui.ReadLine(ctx, "Email")
		if err != nil {
			return "", err
		}
		password, err := ui.ReadSecret(ctx, "Password")
		if err != nil {
			return "", err
		}
		confirm, err := ui.ReadSecret(ctx, "Confirm password")
		if err != nil {
			common.WipeByteArray(password)
			return "", err
		}
		terms, err := ui.ReadLine(ctx, "Accept the terms and conditions? [y/N]")
		if err != nil {
			common.WipeByteArray(password)
			common.WipeByteArray(confirm)
			return "", err
		}

		next, err := p.Submit(ctx, SignUpForm{
			Name:            name,
			Email:           email,
			Password:        password,
			ConfirmPassword: confirm,
			AcceptTerms:     isYes(terms),
		})
		if err == nil {
			return next, nil
		}
		showFieldErrors(ui, err, "name", "email", "password", "confirmPassword")
	}
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}
