package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/models"
)

func TestLogin_SavesSessionAndWipesPassword(t *testing.T) {
	fc := &fakeClient{}
	jar := &fakeJar{}
	svc := NewAuthService(fc, jar, nil)
	pw := []byte("Secret1")

	require.NoError(t, svc.Login(context.Background(), "a@b.io", pw))

	assert.Equal(t, models.LoginRequest{Email: "a@b.io", Password: "Secret1"}, fc.LastLogin)
	assert.Equal(t, 1, jar.Saved)
	assert.Equal(t, make([]byte, len(pw)), pw, "password buffer must be zeroed")
}

func TestLogin_ErrorDoesNotSave(t *testing.T) {
	apiErr := &client.APIError{StatusCode: http.StatusBadRequest, Message: "Email or Password is incorrect"}
	fc := &fakeClient{LoginErr: apiErr}
	jar := &fakeJar{}
	svc := NewAuthService(fc, jar, nil)

	err := svc.Login(context.Background(), "a@b.io", []byte("Secret1"))
	require.Error(t, err)
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, jar.Saved)
}

func TestLogin_SaveFailureIsNotFatal(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, &fakeJar{SaveErr: errors.New("disk full")}, nil)
	assert.NoError(t, svc.Login(context.Background(), "a@b.io", []byte("Secret1")))
}

func TestRegister_SendsFullBody(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, &fakeJar{}, nil)
	pw, confirm := []byte("Secret1"), []byte("Secret1")

	require.NoError(t, svc.Register(context.Background(), "Ada", "ada@example.com", pw, confirm, true))

	assert.Equal(t, models.RegisterRequest{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "Secret1",
		ConfirmPassword: "Secret1",
		AcceptTerms:     true,
	}, fc.LastRegister)
	assert.Equal(t, make([]byte, 7), pw)
	assert.Equal(t, make([]byte, 7), confirm)
}

func TestRegister_Error(t *testing.T) {
	svc := NewAuthService(&fakeClient{RegisterErr: client.ErrUnavailable}, &fakeJar{}, nil)
	err := svc.Register(context.Background(), "Ada", "ada@example.com", []byte("x"), []byte("x"), false)
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestLogout_ClearsOnlyAfterSuccess(t *testing.T) {
	jar := &fakeJar{}
	failing := NewAuthService(&fakeClient{LogoutErr: client.ErrUnavailable}, jar, nil)
	require.ErrorIs(t, failing.Logout(context.Background()), client.ErrUnavailable)
	assert.Equal(t, 0, jar.Cleared)

	fc := &fakeClient{}
	ok := NewAuthService(fc, jar, nil)
	require.NoError(t, ok.Logout(context.Background()))
	assert.Equal(t, 1, jar.Cleared)
	assert.Equal(t, 1, fc.LogoutCalls)
}

func TestSessionReads(t *testing.T) {
	p := &models.UserProfile{Name: "Ada", Email: "ada@example.com"}
	fc := &fakeClient{IsAuthRet: true, ProfileRet: p}
	exp := time.Now().Add(time.Hour)
	jar := &fakeJar{HasCred: true, Cred: client.Credential{Subject: "ada@example.com", ExpiresAt: exp}}
	svc := NewAuthService(fc, jar, nil)

	ok, err := svc.IsAuthenticated(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Same(t, p, got)

	cred, has := svc.Credential()
	assert.True(t, has)
	assert.Equal(t, exp, cred.ExpiresAt)
}

func TestEmailVerification(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, &fakeJar{}, nil)

	require.NoError(t, svc.SendVerifyOTP(context.Background()))
	require.NoError(t, svc.VerifyEmail(context.Background(), "123456"))
	assert.Equal(t, "123456", fc.LastVerifyEmail.OTP)

	fc.VerifyEmailErr = &client.APIError{StatusCode: 500, Message: "Invalid OTP"}
	err := svc.VerifyEmail(context.Background(), "000000")
	assert.Equal(t, "Invalid OTP", client.UserMessage(err, ""))
}
