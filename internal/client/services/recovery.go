package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/models"
	"github.com/dmitrijs2005/authflow/internal/common"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// RecoveryService wraps the password-reset endpoints. None of them needs a
// session.
type RecoveryService interface {
	SendResetOTP(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, otp string, newPassword []byte) error
}

type recoveryService struct {
	client client.Client
	logger logging.Logger
}

func NewRecoveryService(c client.Client, logger logging.Logger) RecoveryService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &recoveryService{client: c, logger: logger}
}

func (r *recoveryService) SendResetOTP(ctx context.Context, email string) error {
	if err := r.client.SendResetOTP(ctx, email); err != nil {
		return fmt.Errorf("send reset otp: %w", err)
	}
	r.logger.Info(ctx, "reset code requested", "email", email)
	return nil
}

func (r *recoveryService) VerifyResetOTP(ctx context.Context, email, otp string) error {
	req := models.VerifyResetOTPRequest{Email: email, OTP: otp}
	if err := r.client.VerifyResetOTP(ctx, req); err != nil {
		return fmt.Errorf("verify reset otp: %w", err)
	}
	return nil
}

func (r *recoveryService) ResetPassword(ctx context.Context, email, otp string, newPassword []byte) error {
	defer common.WipeByteArray(newPassword)

	req := models.ResetPasswordRequest{NewPassword: string(newPassword), Email: email, OTP: otp}
	if err := r.client.ResetPassword(ctx, req); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	r.logger.Info(ctx, "password reset", "email", email)
	return nil
}
