package portfoliodb

import (
	"errors"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Sentinel errors for the portfolio repository layer.
// These describe storage outcomes; the service layer maps them to domain errors.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("portfolio record not found")

	// ErrIntegrity indicates a unique or foreign key constraint rejected a write.
	ErrIntegrity = errors.New("integrity constraint violated")
)

// IsIntegrityViolation reports whether err was raised by a constraint in either
// supported database.
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrIntegrity) {
		return true
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.IntegrityViolation()
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}
