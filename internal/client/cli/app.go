package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/config"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/pages"
	"github.com/dmitrijs2005/authflow/internal/client/router"
	"github.com/dmitrijs2005/authflow/internal/client/services"
	"github.com/dmitrijs2005/authflow/internal/client/session"
	"github.com/dmitrijs2005/authflow/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client together: the cookie jar and its database, the API
// client, the session store, the notice console, the pages and the router.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	jar     *client.PersistentJar
	auth    services.AuthService
	store   *session.Store
	console *notify.Console
	deps    *pages.Deps
	ui      *TerminalUI
	router  *router.Router
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the client from cfg. Input is read from in, and pages and
// notices are written to out. With PersistSession the session database is
// opened and the stored cookies are restored.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	base, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}

	var db *sql.DB
	if cfg.PersistSession {
		db, err = client.InitDatabase(ctx, cfg.SessionDBPath())
		if err != nil {
			logger.Error(ctx, "error initializing session database", "path", cfg.SessionDBPath(), "error", err)
			return nil, err
		}
	}

	jar, err := client.NewPersistentJar(base, db, logger)
	if err != nil {
		closeDB(db)
		return nil, err
	}
	if err := jar.Load(ctx); err != nil {
		logger.Warn(ctx, "could not restore the stored session", "error", err)
	}

	api, err := client.NewHTTPClient(cfg.BackendURL, jar, logger, client.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		closeDB(db)
		return nil, err
	}

	console := notify.NewConsole(out, logger)
	auth := services.NewAuthService(api, jar, logger)
	store := session.NewStore(auth, console, logger)
	deps := &pages.Deps{
		Session:        store,
		Auth:           auth,
		Recovery:       services.NewRecoveryService(api, logger),
		Notifier:       console,
		Logger:         logger,
		MinLoading:     cfg.MinLoading,
		VerifyResetOTP: cfg.VerifyResetOTP,
	}

	reader := bufio.NewReader(in)
	ui := NewTerminalUI(reader, TerminalFD(in), out, console)

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		jar:     jar,
		auth:    auth,
		store:   store,
		console: console,
		deps:    deps,
		ui:      ui,
		router:  router.New(pages.Routes(deps), store, ui, logger),
		reader:  reader,
		out:     out,
	}, nil
}

// Close flushes pending notices and closes the session database.
func (a *App) Close() error {
	a.console.Close()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsLoggedIn
}

// Go navigates to path and runs the pages it leads to.
func (a *App) Go(ctx context.Context, path string) error {
	_, err := a.router.Navigate(ctx, path)
	if err != nil && !errors.Is(err, io.EOF) {
		a.logger.Error(ctx, "navigation failed", "path", path, "error", err)
	}
	a.console.Flush()
	return err
}

// Restore checks a session that survived from an earlier run, so the
// landing page can greet the user by name. Without a stored credential it
// does nothing.
func (a *App) Restore(ctx context.Context) {
	if _, ok := a.jar.Credential(); !ok {
		return
	}
	<-a.store.CheckAuthState(ctx)
	a.console.Flush()
}

// Shell runs the interactive loop until the user exits or input ends.
func (a *App) Shell(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to authflow (type 'help' for commands)")
	a.Restore(ctx)
	if err := a.Go(ctx, "/"); err != nil {
		return err
	}
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Status runs one authentication check and prints the session.
func (a *App) Status(ctx context.Context) error {
	<-a.store.CheckAuthState(ctx)
	a.console.Flush()

	snap := a.store.Snapshot()
	if !snap.IsLoggedIn {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s", snap.User.DisplayName())
	if snap.User != nil {
		verified := "not verified"
		if snap.User.IsAccountVerified {
			verified = "verified"
		}
		fmt.Fprintf(a.out, " <%s> (%s)", snap.User.Email, verified)
	}
	fmt.Fprintln(a.out)
	if cred, ok := a.auth.Credential(); ok && !cred.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Session expires %s\n", cred.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Logout ends the stored session.
func (a *App) Logout(ctx context.Context) error {
	_, err := pages.NewLogout(a.deps).Submit(ctx)
	a.console.Flush()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Reset runs the password recovery journey once.
func (a *App) Reset(ctx context.Context) error {
	page := pages.NewResetPassword(a.deps)
	_, err := page.Render(ctx, a.ui)
	a.console.Flush()
	return err
}

func (a *App) getStatus() string {
	s := a.router.Current()
	if snap := a.store.Snapshot(); snap.IsLoggedIn {
		s = snap.User.DisplayName() + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}
