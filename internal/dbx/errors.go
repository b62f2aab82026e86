package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInvalidReference marks a write that names a row which cannot exist,
// such as a malformed foreign key. It counts as a constraint violation.
var ErrInvalidReference = errors.New("invalid reference")

// integrityViolationClass is the SQLSTATE class for constraint failures
// (foreign key 23503, unique 23505, not null 23502, check 23514).
const integrityViolationClass = "23"

// PersistenceError reports a connectivity or constraint failure of the
// backing store. The underlying driver error is kept for errors.Is/As.
type PersistenceError struct {
	// Op names the failed operation, e.g. "db error" or "begin tx".
	Op string
	// Code is the SQLSTATE when the driver reported one.
	Code string
	// Constraint is the violated constraint name, if any.
	Constraint string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Wrap turns err into a *PersistenceError. A nil err stays nil, an error that
// already is a PersistenceError is returned as is. sql.ErrNoRows is not a
// failure and must be translated by the caller before wrapping.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}

	res := &PersistenceError{Op: op, Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		res.Code = pgErr.Code
		res.Constraint = pgErr.ConstraintName
	}

	return res
}

// IsConstraintViolation reports whether err is a PersistenceError raised by
// an integrity constraint (e.g. a photo referencing a missing account).
func IsConstraintViolation(err error) bool {
	if errors.Is(err, ErrInvalidReference) {
		return true
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		return false
	}
	return len(pe.Code) == 5 && pe.Code[:2] == integrityViolationClass
}

// IsNoRows is a small helper for repositories translating empty results.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
