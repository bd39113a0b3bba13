package client

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/dmitrijs2005/authflow/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/authflow/internal/dbx"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// PersistentJar is the cookie jar of the HTTP client. It behaves like a
// standard jar and additionally remembers the cookies of the backend host
// so Save can write them to the session database and Load can restore them
// on the next start. A nil database keeps everything in memory.
type PersistentJar struct {
	mu      sync.Mutex
	inner   *cookiejar.Jar
	base    *url.URL
	db      *sql.DB
	logger  logging.Logger
	tracked map[string]*http.Cookie
	now     func() time.Time
	repo    func(db dbx.DBTX) cookies.Repository
}

func sqliteCookies(db dbx.DBTX) cookies.Repository {
	return cookies.NewSQLiteRepository(db)
}

func NewPersistentJar(base *url.URL, db *sql.DB, logger logging.Logger) (*PersistentJar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &PersistentJar{
		inner:   inner,
		base:    base,
		db:      db,
		logger:  logger,
		tracked: make(map[string]*http.Cookie),
		now:     time.Now,
		repo:    sqliteCookies,
	}, nil
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

func (j *PersistentJar) SetCookies(u *url.URL, cs []*http.Cookie) {
	j.inner.SetCookies(u, cs)
	if u.Host != j.base.Host {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	for _, c := range cs {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && !c.Expires.After(now)) {
			delete(j.tracked, c.Name)
			continue
		}
		cp := *c
		if cp.MaxAge > 0 {
			cp.Expires = now.Add(time.Duration(cp.MaxAge) * time.Second)
			cp.MaxAge = 0
		}
		if cp.Path == "" {
			cp.Path = "/"
		}
		j.tracked[cp.Name] = &cp
	}
}

// Credential inspects the session cookie currently held for the backend.
func (j *PersistentJar) Credential() (Credential, bool) {
	j.mu.Lock()
	c, ok := j.tracked[SessionCookieName]
	j.mu.Unlock()
	if !ok {
		return Credential{}, false
	}
	cred, err := InspectCredential(c.Value)
	if err != nil {
		return Credential{}, false
	}
	return cred, true
}

// Load restores the stored backend cookies. Expired cookies and session
// tokens whose own expiry has passed are skipped.
func (j *PersistentJar) Load(ctx context.Context) error {
	if j.db == nil {
		return nil
	}
	stored, err := j.repo(j.db).List(ctx, j.base.Host)
	if err != nil {
		return err
	}

	now := j.now()
	var restored []*http.Cookie
	for _, c := range stored {
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			continue
		}
		if c.Name == SessionCookieName {
			cred, err := InspectCredential(c.Value)
			if err != nil || cred.Expired(now) {
				j.logger.Debug(ctx, "dropping stored session token", "expired", err == nil)
				continue
			}
		}
		restored = append(restored, c)
	}
	if len(restored) > 0 {
		j.SetCookies(j.base, restored)
	}
	j.logger.Debug(ctx, "session cookies restored", "count", len(restored))
	return nil
}

// Save replaces the stored cookies of the backend host with the ones held
// in memory.
func (j *PersistentJar) Save(ctx context.Context) error {
	if j.db == nil {
		return nil
	}
	j.mu.Lock()
	snapshot := make([]*http.Cookie, 0, len(j.tracked))
	for _, c := range j.tracked {
		cp := *c
		snapshot = append(snapshot, &cp)
	}
	j.mu.Unlock()

	return dbx.WithTx(ctx, j.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := j.repo(tx)
		if err := repo.Clear(ctx, j.base.Host); err != nil {
			return err
		}
		for _, c := range snapshot {
			if err := repo.Put(ctx, j.base.Host, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear forgets every backend cookie in memory and in storage.
func (j *PersistentJar) Clear(ctx context.Context) error {
	j.mu.Lock()
	expire := make([]*http.Cookie, 0, len(j.tracked))
	for name, c := range j.tracked {
		expire = append(expire, &http.Cookie{Name: name, Path: c.Path, MaxAge: -1})
	}
	j.tracked = make(map[string]*http.Cookie)
	j.mu.Unlock()

	if len(expire) > 0 {
		j.inner.SetCookies(j.base, expire)
	}
	if j.db == nil {
		return nil
	}
	return j.repo(j.db).Clear(ctx, j.base.Host)
}
