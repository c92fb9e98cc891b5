package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Kind is the constraint class behind a database error. Classification
// happens once at the transaction boundary; callers branch on the Kind and
// never on driver-specific codes.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindUnique
	KindForeignKey
	KindCheck
	KindOther
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Classify maps a store error to its constraint kind.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}

	if code := sqlStateOf(err); code != "" {
		switch code {
		case pgUniqueViolation:
			return KindUnique
		case pgForeignKeyViolation:
			return KindForeignKey
		case pgCheckViolation:
			return KindCheck
		}
		return KindOther
	}

	// sqlite (tests) and drivers that only surface message text.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key value"),
		strings.Contains(msg, "UNIQUE constraint failed"):
		return KindUnique
	case strings.Contains(msg, "violates foreign key constraint"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return KindForeignKey
	case strings.Contains(msg, "violates check constraint"),
		strings.Contains(msg, "CHECK constraint failed"):
		return KindCheck
	}
	return KindOther
}

func sqlStateOf(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
