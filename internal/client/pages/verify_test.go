package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authflow/internal/client/apitest"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/recovery"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

func TestEmailVerify_Render(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("Ada", "ada@example.com", "Secret1", false)
	e.login(t, "ada@example.com", "Secret1")
	ui := newScript("12", "000000", apitest.OTP)

	next, err := NewEmailVerify(e.deps).Render(context.Background(), ui)

	require.NoError(t, err)
	assert.Equal(t, routepath.Dashboard, next)
	assert.True(t, e.srv.Verified("ada@example.com"))
	assert.True(t, e.store.Snapshot().User.IsAccountVerified, "profile is reloaded")
	assert.Contains(t, ui.Output(), recovery.ErrIncompleteOTP.Error())
	assert.Equal(t, []notify.Notice{
		{Kind: notify.KindSuccess, Text: MsgVerifyCodeSent},
		{Kind: notify.KindError, Text: "Invalid OTP"},
		{Kind: notify.KindSuccess, Text: MsgEmailVerified},
	}, e.rec.Notices())
}

func TestEmailVerify_AlreadyVerified(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("Ada", "ada@example.com", "Secret1", true)
	e.login(t, "ada@example.com", "Secret1")

	next, err := NewEmailVerify(e.deps).Render(context.Background(), newScript())

	require.NoError(t, err)
	assert.Equal(t, routepath.Dashboard, next)
	assert.Zero(t, e.srv.Count("POST /send-otp"))
}

func TestEmailVerify_SubmitIncomplete(t *testing.T) {
	e := newEnv(t)
	var code recovery.OTP
	code.Paste("123")
	_, err := NewEmailVerify(e.deps).Submit(context.Background(), &code)
	assert.ErrorIs(t, err, recovery.ErrIncompleteOTP)
}
