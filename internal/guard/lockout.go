package guard

import (
	"context"
	"time"

	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
)

const (
	MaxAttempts   = 5
	LockoutWindow = 15 * time.Minute
)

// RecordAttempt inserts a login attempt row. Failures are swallowed: audit
// writes must never break the login path.
func RecordAttempt(ctx context.Context, db repository.DBTX, email, ip string, success bool) {
	_, _ = db.Exec(ctx, `
		INSERT INTO login_attempts (email, ip_address, success)
		VALUES ($1, $2, $3)`,
		email, ip, success)
}

// CheckLocked returns ErrAccountLocked when the email has accumulated
// MaxAttempts failed logins inside the lockout window.
func CheckLocked(ctx context.Context, db repository.DBTX, email string) error {
	var count int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM login_attempts
		WHERE email = $1 AND success = false
		  AND created_at > $2`,
		email, time.Now().Add(-LockoutWindow)).Scan(&count)
	if err != nil {
		return nil // fail open on DB error — don't block login
	}
	if count >= MaxAttempts {
		return domain.ErrAccountLocked("Terlalu banyak percobaan login, coba lagi nanti")
	}
	return nil
}
