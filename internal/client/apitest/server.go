// Package apitest runs an in-memory authentication backend for tests. It
// serves the same endpoints, status codes, cookies and error bodies as the
// real API, keeps users in a map and always issues the same OTP.
package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authflow/internal/client/models"
)

const (
	// BasePath is where the API is mounted on the test server.
	BasePath = "/api/v1.0"
	// OTP is the code every send-otp call "delivers".
	OTP = "123456"
	// CookieName is the session cookie the server sets on login.
	CookieName = "jwt"
)

type user struct {
	id        string
	name      string
	email     string
	password  string
	verified  bool
	resetOTP  string
	resetExp  time.Time
	verifyOTP string
}

type failure struct {
	status  int
	message string
}

// Server is a running fake backend. Close it when done.
type Server struct {
	*httptest.Server

	secret   []byte
	tokenTTL time.Duration

	mu       sync.Mutex
	users    map[string]*user
	calls    []string
	failures map[string]failure
	delay    map[string]time.Duration
	nextID   int
}

// New starts a fake backend.
func New() *Server {
	s := &Server{
		secret:   []byte("apitest-secret"),
		tokenTTL: 24 * time.Hour,
		users:    make(map[string]*user),
		failures: make(map[string]failure),
		delay:    make(map[string]time.Duration),
	}
	r := chi.NewRouter()
	r.Use(s.record)
	r.Route(BasePath, func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Post("/logout", s.handleLogout)
		r.Post("/send-reset-otp", s.handleSendResetOTP)
		r.Post("/verify-reset-otp", s.handleVerifyResetOTP)
		r.Post("/reset-password", s.handleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticated)
			r.Get("/is-authenticated", s.handleIsAuthenticated)
			r.Get("/profile", s.handleProfile)
			r.Post("/send-otp", s.handleSendOTP)
			r.Post("/verify-otp", s.handleVerifyOTP)
		})
	})
	s.Server = httptest.NewServer(r)
	return s
}

// APIURL is the base URL clients should be configured with.
func (s *Server) APIURL() string {
	return s.URL + BasePath
}

// AddUser registers an account directly.
func (s *Server) AddUser(name, email, password string, verified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUserLocked(name, email, password, verified)
}

// Fail makes every later request to path answer with status and message
// until Recover is called. path is relative to BasePath, e.g. "/profile".
func (s *Server) Fail(path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[BasePath+path] = failure{status: status, message: message}
}

// Recover clears a failure installed by Fail.
func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, BasePath+path)
}

// Delay holds requests to path for d before they are handled.
func (s *Server) Delay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay[BasePath+path] = d
}

// Calls lists the requests received so far as "METHOD /path", without the
// base path.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// Count returns how many times "METHOD /path" was called.
func (s *Server) Count(call string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Password returns the stored password of email, for asserting resets.
func (s *Server) Password(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return "", false
	}
	return u.password, true
}

// Verified reports whether email has confirmed its address.
func (s *Server) Verified(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	return ok && u.verified
}

// Token signs a session token for email that expires after ttl.
func (s *Server) Token(email string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return tok
}

func (s *Server) addUserLocked(name, email, password string, verified bool) *user {
	s.nextID++
	u := &user{
		id:       fmt.Sprintf("user-%03d", s.nextID),
		name:     name,
		email:    email,
		password: password,
		verified: verified,
	}
	s.users[email] = u
	return u
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		s.mu.Lock()
		s.calls = append(s.calls, r.Method+" "+strings.TrimPrefix(path, BasePath))
		f, failing := s.failures[path]
		d := s.delay[path]
		s.mu.Unlock()

		if d > 0 {
			select {
			case <-time.After(d):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieName)
		if err != nil || c.Value == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		claims := jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(c.Value, &claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		s.mu.Lock()
		u, ok := s.users[claims.Subject]
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, map[string]any{"error": true, "message": msg})
}

func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("missing body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func profileOf(u *user) models.UserProfile {
	return models.UserProfile{
		UserID:            u.id,
		Name:              u.name,
		Email:             u.email,
		IsAccountVerified: u.verified,
	}
}
