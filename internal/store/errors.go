package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translate maps driver and gorm errors onto the sentinels exchange understands.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", exchange.ErrNotFound, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %w", exchange.ErrDuplicate, err)
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// sqlite reports "UNIQUE constraint failed: <table>.<column>"
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique constraint") || strings.Contains(s, "duplicate key")
}
