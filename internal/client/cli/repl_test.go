package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Go(_ context.Context, path string) error {
	f.calls = append(f.calls, "go "+path)
	switch path {
	case routepath.Login:
		f.loggedIn = true
	case routepath.Logout:
		f.loggedIn = false
	}
	return nil
}

func (f *fakeExec) Status(context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)
	input := strings.Join([]string{
		"help",
		"login",
		"dashboard",
		"verify",
		"go /email-verify?x=1",
		"status",
		"logout",
		"signup",
		"reset",
		"home",
		"exit",
		"login",
	}, "\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"go /login",
		"go /dashboard",
		"go /email-verify",
		"go /email-verify?x=1",
		"status",
		"go /logout",
		"go /sign-up",
		"go /reset-password",
		"go /",
	}, exec.calls)
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrintln(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "(/)" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\n")))

	joined := strings.Join(*lines, "\n")
	assert.Contains(t, joined, "authflow (/) > ")
	assert.Contains(t, joined, "Available commands: home, login, signup, reset, status, go <path>, exit")
	assert.Contains(t, joined, "Available commands: home, dashboard, verify, logout, status, go <path>, exit")
}

func TestRunREPL_UsageUnknownAndQuit(t *testing.T) {
	lines := capturePrintln(t)
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("go\n\nfoobar\nquit\nhome\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: go <path>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrintln(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("signup")))

	assert.Equal(t, []string{"go /sign-up"}, exec.calls)
}
