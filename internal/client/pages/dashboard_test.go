package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authflow/internal/client/models"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

func TestDashboard_RendersProfileAndExpiry(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("ada", "ada@example.com", "Secret1", false)
	e.login(t, "ada@example.com", "Secret1")
	ui := newScript()

	next, err := NewDashboard(e.deps).Render(context.Background(), ui)

	require.NoError(t, err)
	assert.Empty(t, next)
	out := ui.Output()
	assert.Contains(t, out, "(A) Welcome, ada")
	assert.Contains(t, out, "Email:    ada@example.com")
	assert.Contains(t, out, "not verified")
	assert.Contains(t, out, "Session:  expires")
}

func TestDashboard_FallbackWithoutProfile(t *testing.T) {
	e := newEnv(t)
	e.store.Login()
	ui := newScript()

	_, err := NewDashboard(e.deps).Render(context.Background(), ui)

	require.NoError(t, err)
	assert.Contains(t, ui.Output(), "(D) Welcome, "+models.FallbackName)
	assert.NotContains(t, ui.Output(), "Session:")
}

func TestDashboard_LoggedOutGoesToLanding(t *testing.T) {
	e := newEnv(t)
	next, err := NewDashboard(e.deps).Render(context.Background(), newScript())
	require.NoError(t, err)
	assert.Equal(t, routepath.Landing, next)
}

func TestLanding(t *testing.T) {
	e := newEnv(t)
	ui := newScript()
	_, err := NewLanding(e.deps).Render(context.Background(), ui)
	require.NoError(t, err)
	assert.Contains(t, ui.Output(), "Hey Developer!")

	e.store.Login()
	e.store.SetUser(&models.UserProfile{Name: "Ada"})
	ui = newScript()
	_, err = NewLanding(e.deps).Render(context.Background(), ui)
	require.NoError(t, err)
	assert.Contains(t, ui.Output(), "Hey Ada!")
	assert.Contains(t, ui.Output(), "go /dashboard")
}
