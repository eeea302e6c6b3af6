package inventory

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicated is returned when a write violates a unique index.
	ErrDuplicated = errors.New("record violates unique constraint")
	// ErrForeignKey is returned when a write references a missing parent.
	ErrForeignKey = errors.New("record violates foreign key constraint")
)

// translateError maps dialect specific failures onto the package sentinels.
// Unknown errors are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicated, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %w", ErrDuplicated, err)
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %w", ErrForeignKey, err)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			msg := sqliteErr.Error()
			if strings.Contains(msg, "UNIQUE constraint failed") {
				return fmt.Errorf("%w: %w", ErrDuplicated, err)
			}
			if strings.Contains(msg, "FOREIGN KEY constraint failed") {
				return fmt.Errorf("%w: %w", ErrForeignKey, err)
			}
		}
	}

	return err
}
