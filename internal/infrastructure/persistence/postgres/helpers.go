package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
)

const uniqueViolationCode = "23505"

// mapError translates driver errors into the repository error taxonomy.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return port.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return port.ErrDuplicate
	}
	return err
}

// textOrNil stores empty strings as NULL.
func textOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// scannable is the common surface of pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}
