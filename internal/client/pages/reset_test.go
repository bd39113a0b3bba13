package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authflow/internal/client/apitest"
	"github.com/dmitrijs2005/authflow/internal/client/recovery"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

func TestResetPassword_RenderWholeJourney(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("User", "user@example.com", "oldpass", true)
	ui := newScript(
		"user@example",     // rejected inline
		"user@example.com", // code sent
		"12345",            // incomplete
		"resend",
		"1 2 3 4 5 6",
		"Secret1", "Secret2", // mismatch
		"Secret1", "Secret1",
	)

	next, err := NewResetPassword(e.deps).Render(context.Background(), ui)

	require.NoError(t, err)
	assert.Equal(t, routepath.Login, next)
	pw, _ := e.srv.Password("user@example.com")
	assert.Equal(t, "Secret1", pw)
	out := ui.Output()
	assert.Contains(t, out, "code sent to user@example.com")
	assert.Contains(t, out, recovery.ErrIncompleteOTP.Error())
	assert.Contains(t, out, "confirmPassword: Both the passwords do not match")
	assert.Equal(t, 2, e.srv.Count("POST /send-reset-otp"))
	assert.False(t, e.store.Snapshot().IsLoggedIn, "recovery does not touch the session")
}

func TestResetPassword_ServerOTPCheck(t *testing.T) {
	e := newEnv(t)
	e.deps.VerifyResetOTP = true
	e.srv.AddUser("User", "user@example.com", "oldpass", true)
	ui := newScript("user@example.com", "999999", apitest.OTP, "Secret1", "Secret1")

	next, err := NewResetPassword(e.deps).Render(context.Background(), ui)

	require.NoError(t, err)
	assert.Equal(t, routepath.Login, next)
	assert.Equal(t, 2, e.srv.Count("POST /verify-reset-otp"))
}

func TestResetPassword_AbandonAtCodeStage(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("User", "user@example.com", "oldpass", true)

	next, err := NewResetPassword(e.deps).Render(context.Background(), newScript("user@example.com", ""))

	require.NoError(t, err)
	assert.Equal(t, routepath.Login, next)
	pw, _ := e.srv.Password("user@example.com")
	assert.Equal(t, "oldpass", pw)
	assert.Zero(t, e.srv.Count("POST /reset-password"))
}

func TestResetPassword_UnknownEmailStays(t *testing.T) {
	e := newEnv(t)
	ui := newScript("ghost@example.com")

	_, err := NewResetPassword(e.deps).Render(context.Background(), ui)

	require.Error(t, err, "script ends while still on the email stage")
	last, _ := e.rec.Last()
	assert.Equal(t, "user not found:-ghost@example.com", last.Text)
}

func TestRoutes_CoverEveryPath(t *testing.T) {
	r := Routes(&Deps{})
	for _, p := range []string{routepath.Landing, routepath.Login, routepath.SignUp, routepath.Dashboard, routepath.EmailVerify, routepath.ResetPassword, routepath.Logout} {
		assert.Contains(t, r, p)
	}
}
