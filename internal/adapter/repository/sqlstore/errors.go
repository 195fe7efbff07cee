package sqlstore

import (
	"errors"
	"strings"

	"biblios/internal/domain/errs"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// translate maps gorm/driver errors onto the ledger taxonomy, leaving Op for
// the calling operation to fill in. Anything it does not recognise is
// wrapped with context and left for errs.Classify.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound("", "%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return &errs.Error{Kind: errs.KindConflict, Msg: what + " already exists", Err: err}
	}
	return pkgerrors.Wrapf(err, "sqlstore: %s", what)
}

// Drivers without an error translator still spell the violation out.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value") // postgres
}
