package cookies

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authflow/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// List returns the cookies stored for host. Expiry is restored from unix
// seconds; 0 means a session cookie without expiry.
func (r *SQLiteRepository) List(ctx context.Context, host string) ([]*http.Cookie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, value, path, expires, secure, http_only
		FROM cookies WHERE host = ? ORDER BY name`, host)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies[%s]: %w", host, err)
	}
	defer rows.Close()

	var result []*http.Cookie
	for rows.Next() {
		var (
			c        http.Cookie
			expires  int64
			secure   bool
			httpOnly bool
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Path, &expires, &secure, &httpOnly); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		if expires > 0 {
			c.Expires = time.Unix(expires, 0)
		}
		c.Secure = secure
		c.HttpOnly = httpOnly
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, host string, c *http.Cookie) error {
	var expires int64
	if !c.Expires.IsZero() {
		expires = c.Expires.Unix()
	}
	path := c.Path
	if path == "" {
		path = "/"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (host, name, value, path, expires, secure, http_only)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(host, name) DO UPDATE SET
			value = excluded.value,
			path = excluded.path,
			expires = excluded.expires,
			secure = excluded.secure,
			http_only = excluded.http_only
	`, host, c.Name, c.Value, path, expires, c.Secure, c.HttpOnly)
	if err != nil {
		return fmt.Errorf("failed to put cookie[%s/%s]: %w", host, c.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, host string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE host = ?`, host)
	if err != nil {
		return fmt.Errorf("failed to clear cookies[%s]: %w", host, err)
	}
	return nil
}
