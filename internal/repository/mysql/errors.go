package mysql

import (
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/go-social-feed/domain"
)

const (
	errDuplicateEntry    = 1062
	errNoReferencedRow   = 1452
	errNoReferencedRowV2 = 1216
)

// translateError maps driver errors onto domain errors. Anything it does not
// recognise is reported as a transient store failure.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errDuplicateEntry:
			return domain.ErrConflict
		case errNoReferencedRow, errNoReferencedRowV2:
			return domain.ErrNotFound
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
}

func isDuplicate(err error) bool {
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errDuplicateEntry
}
