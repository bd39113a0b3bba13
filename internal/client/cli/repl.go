package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authflow/internal/client/routepath"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Go(ctx context.Context, path string) error
	Status(ctx context.Context) error
}

// shortcuts maps REPL commands onto routes.
var shortcuts = map[string]string{
	"home":      routepath.Landing,
	"login":     routepath.Login,
	"signup":    routepath.SignUp,
	"dashboard": routepath.Dashboard,
	"verify":    routepath.EmailVerify,
	"reset":     routepath.ResetPassword,
	"logout":    routepath.Logout,
}

// runREPL starts a simple read–eval–print loop for the authflow client.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to 'a'. The loop exits on EOF or when the user types "exit" or
// "quit". Pages read their own input from the same reader.
//
//	Not logged in:
//	  - help              show available commands
//	  - home | login | signup | reset
//	  - go <path>         open any route
//	  - status            check the session with the backend
//	  - exit | quit       leave the program
//
//	Logged in, additionally:
//	  - dashboard | verify | logout
//
// Errors returned by command handlers are ignored here; handlers log and
// notify on their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("authflow %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, dashboard, verify, logout, status, go <path>, exit")
			} else {
				printlnFn("Available commands: home, login, signup, reset, status, go <path>, exit")
			}

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			path, ok := shortcuts[cmd]
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.Go(ctx, path)
		}
	}
}
