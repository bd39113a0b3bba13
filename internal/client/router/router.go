// Package router moves the client between pages. Every navigation goes
// through the session store, so protected pages are only rendered after the
// authentication check has settled.
package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/authflow/internal/client/pages"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
	"github.com/dmitrijs2005/authflow/internal/client/session"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// MaxHops bounds the redirects followed by a single Navigate call.
const MaxHops = 8

// Skeleton is printed while a protected page waits for the auth check.
const Skeleton = "Loading..."

var ErrTooManyRedirects = errors.New("too many redirects")

type Router struct {
	pages    map[string]pages.Page
	notFound pages.Page
	store    *session.Store
	ui       pages.UI
	logger   logging.Logger

	mu      sync.Mutex
	current string
}

func New(routes map[string]pages.Page, store *session.Store, ui pages.UI, logger logging.Logger) *Router {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Router{
		pages:    routes,
		notFound: pages.NotFound{},
		store:    store,
		ui:       ui,
		logger:   logger,
		current:  routepath.Landing,
	}
}

// Current is the last path that was rendered.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate renders path and follows every redirect that the auth check or
// the rendered pages return. It reports the path rendered last.
func (r *Router) Navigate(ctx context.Context, path string) (string, error) {
	path = routepath.Normalize(path)
	for hop := 0; hop < MaxHops; hop++ {
		next, err := r.visit(ctx, path)
		if err != nil {
			return path, err
		}
		if next == "" {
			return path, nil
		}
		if next = routepath.Normalize(next); next == path {
			return path, nil
		}
		r.logger.Debug(ctx, "redirect", "from", path, "to", next)
		path = next
	}
	return path, fmt.Errorf("navigate to %s: %w", path, ErrTooManyRedirects)
}

// visit settles the auth check for path and renders its page. A non-empty
// result is the next path.
func (r *Router) visit(ctx context.Context, path string) (string, error) {
	if ch := r.store.OnNavigate(ctx, path); ch != nil {
		out, err := r.await(ctx, ch)
		if err != nil {
			return "", err
		}
		if out.Stale {
			return "", nil
		}
		if out.Redirect != "" && out.Redirect != path {
			return out.Redirect, nil
		}
	}

	page, ok := r.pages[path]
	if !ok {
		page = r.notFound
	}
	r.mu.Lock()
	r.current = path
	r.mu.Unlock()

	r.ui.Println("== " + page.Title() + " ==")
	next, err := page.Render(ctx, r.ui)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	return next, nil
}

func (r *Router) await(ctx context.Context, ch <-chan session.Outcome) (session.Outcome, error) {
	select {
	case out := <-ch:
		return out, nil
	default:
	}
	r.ui.Println(Skeleton)
	select {
	case out := <-ch:
		return out, ctx.Err()
	case <-ctx.Done():
		return session.Outcome{}, ctx.Err()
	}
}
