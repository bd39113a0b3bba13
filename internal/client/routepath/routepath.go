// Package routepath names the client routes and the public allow-list.
package routepath

import "strings"

const (
	Landing       = "/"
	SignUp        = "/sign-up"
	Login         = "/login"
	Dashboard     = "/dashboard"
	EmailVerify   = "/email-verify"
	ResetPassword = "/reset-password"
	Logout        = "/logout"

	// Recovery sub-steps. They are never rendered on their own but stay
	// public so a check is not triggered while the recovery flow runs.
	ResetRequest = "/send-reset-otp"
	ResetVerify  = "/verify-reset-otp"
)

var public = map[string]struct{}{
	Landing:       {},
	Login:         {},
	SignUp:        {},
	ResetRequest:  {},
	ResetVerify:   {},
	ResetPassword: {},
	Logout:        {},
}

// IsPublic reports whether path skips the authentication check.
func IsPublic(path string) bool {
	_, ok := public[Normalize(path)]
	return ok
}

// Normalize strips query, fragment and trailing slashes and guarantees a
// leading slash.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
