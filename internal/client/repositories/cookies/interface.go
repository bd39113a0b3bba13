// Package cookies persists the backend session cookies of the client so a
// login survives a restart. Rows are keyed by backend host and cookie name.
package cookies

import (
	"context"
	"net/http"
)

// Repository stores the cookies of one backend host.
type Repository interface {
	List(ctx context.Context, host string) ([]*http.Cookie, error)
	Put(ctx context.Context, host string, c *http.Cookie) error
	Clear(ctx context.Context, host string) error
}
