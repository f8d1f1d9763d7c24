// File: internal/domain/errors.go
package domain

import "fmt"

// DuplicateSlugError reports a slug uniqueness violation on insert/update.
type DuplicateSlugError struct {
	Slug string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("chat with slug %q already exists", e.Slug)
}

// DuplicateChatIDError reports an external chat ID uniqueness violation.
type DuplicateChatIDError struct {
	ChatID int64
}

func (e *DuplicateChatIDError) Error() string {
	return fmt.Sprintf("chat with Telegram ID %d already exists", e.ChatID)
}

// DuplicateMessageError reports a (chat, external message id) uniqueness violation.
type DuplicateMessageError struct {
	ChatRefID uint
	MsgID     int64
}

func (e *DuplicateMessageError) Error() string {
	return fmt.Sprintf("message with msg_id %d already exists in chat %d", e.MsgID, e.ChatRefID)
}

// ChatNotFoundError reports an update/delete targeting a nonexistent chat.
type ChatNotFoundError struct {
	ID   uint
	Slug string
}

func (e *ChatNotFoundError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("chat with slug %q not found", e.Slug)
	}
	return fmt.Sprintf("chat with ID=%d not found", e.ID)
}

// MessageNotFoundError reports an update/delete targeting a nonexistent message.
type MessageNotFoundError struct {
	ID uint
}

func (e *MessageNotFoundError) Error() string {
	return fmt.Sprintf("message with ID=%d not found", e.ID)
}

// ValidationError reports malformed user input. It never reaches the database layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// DatabaseError wraps any backend failure not mapped to a specific domain kind.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
