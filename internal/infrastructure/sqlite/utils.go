package sqlite

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// isBusy verifica si un error es de la clase transitoria "recurso ocupado"
// (SQLITE_BUSY / SQLITE_LOCKED). Solo esta clase se reintenta.
func isBusy(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "database table is locked")
}

// isConstraint verifica si un error es una violación de constraint
// (unicidad, foreign key, CHECK). No reintentable.
func isConstraint(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrConstraint
	}
	return strings.Contains(err.Error(), "constraint failed")
}
