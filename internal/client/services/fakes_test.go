package services

import (
	"context"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/models"
)

// fakeClient implements client.Client and records the last request of each
// call.
type fakeClient struct {
	IsAuthRet  bool
	IsAuthErr  error
	ProfileRet *models.UserProfile
	ProfileErr error

	LoginErr         error
	RegisterErr      error
	LogoutErr        error
	SendResetErr     error
	VerifyResetErr   error
	ResetPasswordErr error
	SendVerifyErr    error
	VerifyEmailErr   error

	LastLogin       models.LoginRequest
	LastRegister    models.RegisterRequest
	LastResetEmail  string
	LastVerifyReset models.VerifyResetOTPRequest
	LastReset       models.ResetPasswordRequest
	LastVerifyEmail models.VerifyEmailRequest
	LogoutCalls     int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) IsAuthenticated(context.Context) (bool, error) { return f.IsAuthRet, f.IsAuthErr }
func (f *fakeClient) Profile(context.Context) (*models.UserProfile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) error {
	f.LastLogin = req
	return f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) error {
	f.LastRegister = req
	return f.RegisterErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) SendResetOTP(_ context.Context, email string) error {
	f.LastResetEmail = email
	return f.SendResetErr
}

func (f *fakeClient) VerifyResetOTP(_ context.Context, req models.VerifyResetOTPRequest) error {
	f.LastVerifyReset = req
	return f.VerifyResetErr
}

func (f *fakeClient) ResetPassword(_ context.Context, req models.ResetPasswordRequest) error {
	f.LastReset = req
	return f.ResetPasswordErr
}

func (f *fakeClient) SendVerifyOTP(context.Context) error { return f.SendVerifyErr }

func (f *fakeClient) VerifyEmail(_ context.Context, req models.VerifyEmailRequest) error {
	f.LastVerifyEmail = req
	return f.VerifyEmailErr
}

type fakeJar struct {
	SaveErr  error
	ClearErr error
	Saved    int
	Cleared  int
	Cred     client.Credential
	HasCred  bool
}

func (j *fakeJar) Save(context.Context) error {
	j.Saved++
	return j.SaveErr
}

func (j *fakeJar) Clear(context.Context) error {
	j.Cleared++
	return j.ClearErr
}

func (j *fakeJar) Credential() (client.Credential, bool) { return j.Cred, j.HasCred }
