// Package services contains the application services of the authflow
// client. They sit between the pages and the HTTP client and own what the
// raw transport does not: keeping the session cookie on disk, wiping
// password buffers and logging outcomes.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/models"
	"github.com/dmitrijs2005/authflow/internal/common"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// SessionJar is the part of the cookie jar the services persist.
type SessionJar interface {
	Save(ctx context.Context) error
	Clear(ctx context.Context) error
	Credential() (client.Credential, bool)
}

// AuthService defines the account operations used by the pages.
//
// Contract:
//   - Login: authenticate and persist the session cookie.
//   - Register: create an account; success is a 201 from the backend.
//   - Logout: end the session on the backend, then wipe the stored cookie.
//   - IsAuthenticated/Profile: read the current session.
//   - SendVerifyOTP/VerifyEmail: confirm the account email address.
//   - Credential: what the stored session token says about itself.
//
// Password buffers passed in are wiped before the call returns.
type AuthService interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, name, email string, password, confirm []byte, acceptTerms bool) error
	Logout(ctx context.Context) error
	SendVerifyOTP(ctx context.Context) error
	VerifyEmail(ctx context.Context, otp string) error
	Credential() (client.Credential, bool)
}

type authService struct {
	client client.Client
	jar    SessionJar
	logger logging.Logger
}

// NewAuthService binds the service to an API client and the jar that
// client sends its cookies from.
func NewAuthService(c client.Client, jar SessionJar, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, jar: jar, logger: logger}
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	return a.client.IsAuthenticated(ctx)
}

func (a *authService) Profile(ctx context.Context) (*models.UserProfile, error) {
	return a.client.Profile(ctx)
}

// Login authenticates and saves the session cookie. A failed save is logged
// but does not fail the login: the session is valid for this run.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, models.LoginRequest{Email: email, Password: string(password)}); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := a.jar.Save(ctx); err != nil {
		a.logger.Warn(ctx, "session not persisted", "error", err)
	}
	a.logger.Info(ctx, "logged in", "email", email)
	return nil
}

func (a *authService) Register(ctx context.Context, name, email string, password, confirm []byte, acceptTerms bool) error {
	defer common.WipeByteArray(password)
	defer common.WipeByteArray(confirm)

	req := models.RegisterRequest{
		Name:            name,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
		AcceptTerms:     acceptTerms,
	}
	if err := a.client.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	a.logger.Info(ctx, "account created", "email", email)
	return nil
}

// Logout ends the session. The stored cookie is only wiped once the backend
// confirmed the logout.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := a.jar.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "stored session not cleared", "error", err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) SendVerifyOTP(ctx context.Context) error {
	if err := a.client.SendVerifyOTP(ctx); err != nil {
		return fmt.Errorf("send verify otp: %w", err)
	}
	return nil
}

func (a *authService) VerifyEmail(ctx context.Context, otp string) error {
	if err := a.client.VerifyEmail(ctx, models.VerifyEmailRequest{OTP: otp}); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}
	return nil
}

func (a *authService) Credential() (client.Credential, bool) {
	return a.jar.Credential()
}
