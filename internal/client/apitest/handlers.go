package apitest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authflow/internal/client/models"
)

type userKey struct{}

func withUser(ctx context.Context, u *user) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func userFrom(ctx context.Context) *user {
	u, _ := ctx.Value(userKey{}).(*user)
	return u
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication Failed")
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	s.mu.Unlock()
	if !ok || u.password != req.Password {
		writeError(w, http.StatusBadRequest, "Email or Password is incorrect")
		return
	}

	token := s.Token(u.email, s.tokenTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"email": u.email, "token": token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decode(r, &req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Missing Details")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		writeError(w, http.StatusConflict, "Email Already Exist")
		return
	}
	u := s.addUserLocked(req.Name, req.Email, req.Password, false)
	writeJSON(w, http.StatusCreated, profileOf(u))
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Logged out successfully !"))
}

func (s *Server) handleIsAuthenticated(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, true)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	s.mu.Lock()
	p := profileOf(u)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSendResetOTP(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		writeError(w, http.StatusInternalServerError, "user not found:-"+email)
		return
	}
	u.resetOTP = OTP
	u.resetExp = time.Now().Add(15 * time.Minute)
	w.WriteHeader(http.StatusOK)
}

// checkResetLocked mirrors the backend order of checks: unknown user, wrong
// code, expired code.
func (s *Server) checkResetLocked(email, otp string) (*user, int, string) {
	u, ok := s.users[email]
	if !ok {
		return nil, http.StatusNotFound, "user not found:-" + email
	}
	if u.resetOTP == "" || u.resetOTP != otp {
		return nil, http.StatusBadRequest, "Invalid OTP"
	}
	if time.Now().After(u.resetExp) {
		return nil, http.StatusBadRequest, "OTP Expired"
	}
	return u, 0, ""
}

func (s *Server) handleVerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyResetOTPRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing Details")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, status, msg := s.checkResetLocked(req.Email, req.OTP); status != 0 {
		writeError(w, status, msg)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decode(r, &req); err != nil || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Missing Details")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, status, msg := s.checkResetLocked(req.Email, req.OTP)
	if status != 0 {
		writeError(w, status, msg)
		return
	}
	u.password = req.NewPassword
	u.resetOTP = ""
	u.resetExp = time.Time{}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.verified {
		writeError(w, http.StatusInternalServerError, "Account is already verified")
		return
	}
	u.verifyOTP = OTP
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyEmailRequest
	if err := decode(r, &req); err != nil || req.OTP == "" {
		writeError(w, http.StatusBadRequest, "Missing Details")
		return
	}
	u := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.verifyOTP == "" || u.verifyOTP != req.OTP {
		writeError(w, http.StatusInternalServerError, "Invalid OTP")
		return
	}
	u.verified = true
	u.verifyOTP = ""
	w.WriteHeader(http.StatusOK)
}
