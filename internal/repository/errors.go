package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound marks lookups that matched no row, including finishing
	// a session that is not running.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks writes rejected by a uniqueness constraint, most
	// importantly a second running session for the same user.
	ErrConflict = errors.New("conflict")
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite surfaces constraint errors as plain errors
// carrying the SQLite message, so the text is the stable signal.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
