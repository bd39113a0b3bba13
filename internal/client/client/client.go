package client

import (
	"context"

	"github.com/dmitrijs2005/authflow/internal/client/models"
)

// Client is the set of backend calls the application consumes.
type Client interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
	Login(ctx context.Context, req models.LoginRequest) error
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error
	SendResetOTP(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, req models.VerifyResetOTPRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	SendVerifyOTP(ctx context.Context) error
	VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) error
}
