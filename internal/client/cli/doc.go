// Package cli provides the interactive authflow terminal client.
//
// It wires configuration, the persisted session cookie, the API services,
// the session store and the pages, and drives them from a REPL. Every
// command is a navigation: the router runs the authentication check for
// protected routes and then renders the page, which reads its own input
// from the same terminal.
//
// The REPL is started via App.Shell(ctx), which blocks until the user exits.
// See App, TerminalUI and runREPL for details.
package cli
