// File: internal/database/dialect.go
package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Backend-neutral identifiers for the schema's unique constraints. Each
// dialect translates its own integrity-violation payload into one of these;
// no driver error type escapes this package.
const (
	ConstraintChatSlug          = "chats.slug"
	ConstraintChatExternalID    = "chats.chat_id"
	ConstraintMessageExternalID = "messages.chat_ref_id+msg_id"
)

// Dialect captures the SQL-dialect differences the repositories cannot
// express through GORM alone.
type Dialect interface {
	// Name reports the backend name ("sqlite" or "postgres").
	Name() string
	// LikeOperator returns the case-insensitive substring-match operator.
	LikeOperator() string
	// UniqueViolation inspects a driver error and, when it is a unique
	// constraint violation, returns the backend-neutral constraint key.
	UniqueViolation(err error) (constraint string, ok bool)
}

type sqliteDialect struct{}

func (d *sqliteDialect) Name() string { return "sqlite" }

// SQLite LIKE is already case-insensitive for ASCII.
func (d *sqliteDialect) LikeOperator() string { return "LIKE" }

// SQLite reports unique violations as "UNIQUE constraint failed:
// <table>.<column>[, ...]"; the violated columns identify the constraint.
func (d *sqliteDialect) UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return "", false
	}
	switch {
	case strings.Contains(msg, "chats.slug"):
		return ConstraintChatSlug, true
	case strings.Contains(msg, "chats.chat_id"):
		return ConstraintChatExternalID, true
	case strings.Contains(msg, "messages.chat_ref_id") || strings.Contains(msg, "messages.msg_id"):
		return ConstraintMessageExternalID, true
	}
	return "", true
}

type postgresDialect struct{}

func (d *postgresDialect) Name() string { return "postgres" }

func (d *postgresDialect) LikeOperator() string { return "ILIKE" }

// Postgres reports unique violations as SQLSTATE 23505 with the violated
// index name as the constraint name.
func (d *postgresDialect) UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return "", false
	}
	switch pgErr.ConstraintName {
	case "idx_chats_slug":
		return ConstraintChatSlug, true
	case "idx_chats_chat_id":
		return ConstraintChatExternalID, true
	case "idx_messages_chat_msg":
		return ConstraintMessageExternalID, true
	}
	return "", true
}
