// Package session owns the process-wide authentication state of the
// client: whether the user is logged in, their profile and whether an
// authentication check is running. Readers get immutable snapshots; every
// write goes through the Store methods.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authflow/internal/client/client"
	"github.com/dmitrijs2005/authflow/internal/client/models"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// Notice texts used when the backend supplies no message.
const (
	MsgAuthCheckFailed = "Authentication check failed"
	MsgProfileFailed   = "Unable to retrive the profile"
)

// API is the part of the backend the store talks to.
type API interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
}

// Snapshot is a copy of the session at one point in time. User is a
// private copy and may be nil while logged in if the profile is not loaded.
type Snapshot struct {
	IsLoggedIn bool
	User       *models.UserProfile
	Loading    bool
}

// Outcome is delivered once per authentication check. Redirect is set when
// the caller has to leave the current page. Stale marks results of a check
// that was overtaken by a later navigation; they were not applied.
type Outcome struct {
	Redirect string
	Stale    bool
}

type Store struct {
	api      API
	notifier notify.Notifier
	logger   logging.Logger

	mu         sync.RWMutex
	isLoggedIn bool
	user       *models.UserProfile
	loading    int
	generation uint64
}

func NewStore(api API, notifier notify.Notifier, logger logging.Logger) *Store {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{api: api, notifier: notifier, logger: logger}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		IsLoggedIn: s.isLoggedIn,
		User:       copyProfile(s.user),
		Loading:    s.loading > 0,
	}
}

// Login marks the session as logged in and drops any previous profile.
// The profile is loaded separately.
func (s *Store) Login() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoggedIn = true
	s.user = nil
}

// Logout resets the session to logged out.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoggedIn = false
	s.user = nil
}

// SetUser replaces the profile. It is ignored while logged out so a user is
// never held without a session.
func (s *Store) SetUser(p *models.UserProfile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isLoggedIn {
		return false
	}
	s.user = copyProfile(p)
	return true
}

// Generation identifies the current navigation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// OnNavigate starts a new navigation to path. Public paths return nil; any
// other path starts CheckAuthState and returns its outcome channel.
func (s *Store) OnNavigate(ctx context.Context, path string) <-chan Outcome {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()

	if routepath.IsPublic(path) {
		return nil
	}
	return s.CheckAuthState(ctx)
}

// CheckAuthState asks the backend whether the stored credential is valid.
// On a true answer the session is marked logged in and the profile is
// fetched before the outcome is delivered. On an error or a false answer
// the session is reset, an error notice is emitted and the outcome
// redirects to the landing page. The returned channel yields exactly one
// Outcome and is then closed.
func (s *Store) CheckAuthState(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)

	s.mu.Lock()
	gen := s.generation
	s.loading++
	s.mu.Unlock()

	go func() {
		defer close(out)
		out <- s.runCheck(ctx, gen)
	}()
	return out
}

func (s *Store) runCheck(ctx context.Context, gen uint64) Outcome {
	ok, current := s.checkAuth(ctx, gen)
	if !current {
		return Outcome{Stale: true}
	}
	if !ok {
		return Outcome{Redirect: routepath.Landing}
	}
	if current, _ = s.fetchProfile(ctx, gen); !current {
		return Outcome{Stale: true}
	}
	return Outcome{}
}

// checkAuth performs the request and applies its result when gen is still
// the current generation. The loading flag is released whatever happens.
func (s *Store) checkAuth(ctx context.Context, gen uint64) (ok, current bool) {
	defer func() {
		s.mu.Lock()
		s.loading--
		s.mu.Unlock()
	}()

	authed, err := s.api.IsAuthenticated(ctx)

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.Debug(ctx, "discarding stale auth check", "generation", gen)
		return false, false
	}
	if err == nil && authed {
		s.isLoggedIn = true
		s.mu.Unlock()
		return true, true
	}
	s.isLoggedIn = false
	s.user = nil
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn(ctx, "auth check failed", "error", err)
	}
	notify.Error(s.notifier, client.UserMessage(err, MsgAuthCheckFailed))
	return false, true
}

// FetchProfile loads the profile. A failure emits an error notice and
// leaves the logged-in flag alone.
func (s *Store) FetchProfile(ctx context.Context) error {
	_, err := s.fetchProfile(ctx, s.Generation())
	return err
}

// fetchProfile reports whether gen was still current when the response
// arrived, and the request error if any.
func (s *Store) fetchProfile(ctx context.Context, gen uint64) (bool, error) {
	p, err := s.api.Profile(ctx)

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.Debug(ctx, "discarding stale profile", "generation", gen)
		return false, err
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn(ctx, "profile fetch failed", "error", err)
		notify.Error(s.notifier, client.UserMessage(err, MsgProfileFailed))
		return true, err
	}
	if s.isLoggedIn {
		s.user = copyProfile(p)
	}
	s.mu.Unlock()
	return true, nil
}

func copyProfile(p *models.UserProfile) *models.UserProfile {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
