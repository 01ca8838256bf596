package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FromPG maps a pgx error into a project *Error.
// nil stays nil; unknown database errors become ErrorCodeDB
func FromPG(err error) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, pgx.ErrNoRows) {
		return Wrap(err, ErrorCodeNotFound, "not found")
	}
	var pgerr *pgconn.PgError
	if stderrs.As(err, &pgerr) {
		switch pgerr.Code {
		case "23505":
			return Wrapf(err, ErrorCodeDuplicateKey, "duplicate key on %s", pgerr.ConstraintName)
		case "40001", "40P01":
			// serialization failure / deadlock: retry may succeed
			return Wrap(err, ErrorCodeUnavailable, "transient database conflict")
		}
	}
	return Wrap(err, ErrorCodeDB, "database error")
}

// IsRetryable reports whether err looks like a transient database failure
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var pgerr *pgconn.PgError
	if stderrs.As(err, &pgerr) {
		switch pgerr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}
	return IsCode(err, ErrorCodeUnavailable)
}
