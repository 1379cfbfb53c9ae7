package retry

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/voyagr/voyagr-api/internal/store"
)

// IsTransient reports whether err is a transient storage failure worth
// retrying: an error originating from the database or its connection,
// including when wrapped inside another error. Business outcomes the stores
// already mapped to sentinels (not found, duplicate, invalid entity) are
// never transient, even if a database error sits deeper in the chain.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Store-level sentinels are business outcomes, not infrastructure faults.
	if store.IsNotFoundError(err) ||
		store.IsDuplicateError(err) ||
		errors.Is(err, store.ErrInvalidEntity) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, store.ErrTransactionFailed) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
