// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/arcanum-app/arcanum/internal/database"
	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/sqlutil"
	"github.com/arcanum-app/arcanum/internal/timeutil"
)

// listOrder is the allow-list for message listings and search results.
var listOrder = sqlutil.OrderConfig{
	AllowedFields: []string{"timestamp", "msg_id"},
	DefaultField:  "timestamp",
	DefaultOrder:  "desc",
	Prefix:        "messages.",
}

type gormMessageRepository struct {
	db      *gorm.DB
	dialect database.Dialect
}

func NewMessageRepository(db *gorm.DB, dialect database.Dialect) MessageRepository {
	return &gormMessageRepository{db: db, dialect: dialect}
}

// FindByID retrieves a message by its primary key, or (nil, nil) if absent.
func (r *gormMessageRepository) FindByID(ctx context.Context, id uint) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.WithContext(ctx).First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[MESSAGES|DAO] No message found with ID=%d.", id)
		return nil, nil
	}
	if err != nil {
		log.Printf("[MESSAGES|DAO] Failed to fetch message by ID=%d: %v", id, err)
		return nil, &domain.DatabaseError{Op: "fetch message by id", Err: err}
	}
	return &msg, nil
}

// joined returns the base query joining messages with their owning chat.
func (r *gormMessageRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Select("messages.*, chats.name AS chat_name, chats.slug AS chat_slug").
		Joins("JOIN chats ON messages.chat_ref_id = chats.id")
}

// ListByChatSlug retrieves all messages for one chat with sorting.
func (r *gormMessageRepository) ListByChatSlug(ctx context.Context, chatSlug, sortBy, order string) ([]domain.MessageWithChat, error) {
	orderClause := sqlutil.BuildOrderClause(sortBy, order, listOrder)

	rows := []domain.MessageWithChat{}
	err := r.joined(ctx).
		Where("chats.slug = ?", chatSlug).
		Order(orderClause).
		Find(&rows).Error
	if err != nil {
		log.Printf("[MESSAGES|DAO] Failed to retrieve messages for chat %q: %v", chatSlug, err)
		return nil, &domain.DatabaseError{Op: "list messages by chat", Err: err}
	}

	log.Printf("[MESSAGES|DAO] Retrieved %d message(s) for chat %q.", len(rows), chatSlug)
	return rows, nil
}

// ListFiltered retrieves messages matching the search query, tag, or date
// filters, globally or scoped to one chat. The filter is assumed to have
// passed service-level validation.
func (r *gormMessageRepository) ListFiltered(ctx context.Context, filters domain.MessageFilters, sortBy, order string) ([]domain.MessageWithChat, error) {
	query := r.joined(ctx)

	if filters.ChatSlug != "" {
		query = query.Where("chats.slug = ?", filters.ChatSlug)
	}

	switch filters.Action {
	case domain.ActionSearch:
		query = query.Where(
			fmt.Sprintf("messages.text %s ?", r.dialect.LikeOperator()),
			"%"+filters.Query+"%",
		)
	case domain.ActionTag:
		// Tags are stored as a JSON array; containment matches the quoted form.
		query = query.Where(
			fmt.Sprintf("messages.tags %s ?", r.dialect.LikeOperator()),
			fmt.Sprintf(`%%"%s"%%`, filters.Tag),
		)
	case domain.ActionFilter:
		var err error
		query, err = applyDateFilter(query, filters)
		if err != nil {
			return nil, err
		}
	case domain.ActionNone:
		log.Printf("[FILTERS|DAO] No action set; returning empty result.")
		return []domain.MessageWithChat{}, nil
	}

	rows := []domain.MessageWithChat{}
	err := query.Order(sqlutil.BuildOrderClause(sortBy, order, listOrder)).Find(&rows).Error
	if err != nil {
		log.Printf("[FILTERS|DAO] Query failed: %v", err)
		return nil, &domain.DatabaseError{Op: "filter messages", Err: err}
	}

	log.Printf("[FILTERS|DAO] Retrieved %d message(s) | action=%s | chat=%q.",
		len(rows), filters.Action, filters.ChatSlug)
	return rows, nil
}

// applyDateFilter bounds the timestamp range per the date mode. Boundaries
// are computed in UTC; "between" includes the whole end day (23:59:59).
func applyDateFilter(query *gorm.DB, filters domain.MessageFilters) (*gorm.DB, error) {
	start, err := timeutil.ParseDate(filters.StartDate)
	if err != nil {
		return nil, &domain.ValidationError{Field: "start_date", Reason: err.Error()}
	}

	switch filters.DateMode {
	case domain.DateModeOn:
		return query.
			Where("messages.timestamp >= ?", timeutil.DayStart(start)).
			Where("messages.timestamp <= ?", timeutil.DayEnd(start)), nil
	case domain.DateModeBefore:
		return query.Where("messages.timestamp < ?", timeutil.DayStart(start)), nil
	case domain.DateModeAfter:
		return query.Where("messages.timestamp > ?", timeutil.DayEnd(start)), nil
	case domain.DateModeBetween:
		end, err := timeutil.ParseDate(filters.EndDate)
		if err != nil {
			return nil, &domain.ValidationError{Field: "end_date", Reason: err.Error()}
		}
		return query.
			Where("messages.timestamp >= ?", timeutil.DayStart(start)).
			Where("messages.timestamp <= ?", timeutil.DayEnd(end)), nil
	}
	return nil, &domain.ValidationError{Field: "date_mode", Reason: fmt.Sprintf("unknown date mode %q", filters.DateMode)}
}

// Insert stores a new message record and returns its generated primary key.
func (r *gormMessageRepository) Insert(ctx context.Context, msg *domain.Message) (uint, error) {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		if dup := r.translateDuplicate(msg, err); dup != nil {
			return 0, dup
		}
		log.Printf("[MESSAGES|DAO] Insert failed: %v", err)
		return 0, &domain.DatabaseError{Op: "insert message", Err: err}
	}

	log.Printf("[MESSAGES|DAO] Inserted message ID=%d for chat_ref_id=%d.", msg.ID, msg.ChatRefID)
	return msg.ID, nil
}

// Update rewrites an existing message record. Zero affected rows means the
// target does not exist.
func (r *gormMessageRepository) Update(ctx context.Context, msg *domain.Message) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ?", msg.ID).
		Updates(map[string]interface{}{
			"msg_id":     msg.MsgID,
			"timestamp":  msg.Timestamp,
			"link":       msg.Link,
			"text":       msg.Text,
			"media":      msg.Media,
			"screenshot": msg.Screenshot,
			"tags":       msg.Tags,
			"notes":      msg.Notes,
		})
	if result.Error != nil {
		if dup := r.translateDuplicate(msg, result.Error); dup != nil {
			return dup
		}
		log.Printf("[MESSAGES|DAO] Update failed: %v", result.Error)
		return &domain.DatabaseError{Op: "update message", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		log.Printf("[MESSAGES|DAO] No rows updated for ID=%d.", msg.ID)
		return &domain.MessageNotFoundError{ID: msg.ID}
	}

	log.Printf("[MESSAGES|DAO] Updated message ID=%d.", msg.ID)
	return nil
}

// Delete removes a message by primary key.
func (r *gormMessageRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Message{}, id)
	if result.Error != nil {
		log.Printf("[MESSAGES|DAO] Delete failed: %v", result.Error)
		return &domain.DatabaseError{Op: "delete message", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &domain.MessageNotFoundError{ID: id}
	}

	log.Printf("[MESSAGES|DAO] Deleted message ID=%d.", id)
	return nil
}

// Exists checks whether a message with the given external ID exists within
// the chat, optionally excluding one message (used on updates).
func (r *gormMessageRepository) Exists(ctx context.Context, chatRefID uint, msgID int64, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_ref_id = ? AND msg_id = ?", chatRefID, msgID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("[MESSAGES|DAO] Existence check failed: %v", err)
		return false, &domain.DatabaseError{Op: "check message exists", Err: err}
	}
	return count > 0, nil
}

// CountByChat counts the messages in a given chat.
func (r *gormMessageRepository) CountByChat(ctx context.Context, chatRefID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_ref_id = ?", chatRefID).
		Count(&count).Error
	if err != nil {
		log.Printf("[MESSAGES|DAO] Count failed: %v", err)
		return 0, &domain.DatabaseError{Op: "count messages", Err: err}
	}
	return count, nil
}

// FindAdjacent returns the message immediately before or after the given
// timestamp within the same chat, or (nil, nil) if none.
func (r *gormMessageRepository) FindAdjacent(ctx context.Context, chatRefID uint, ts time.Time, dir Direction) (*domain.Message, error) {
	query := r.db.WithContext(ctx).Where("chat_ref_id = ?", chatRefID)
	switch dir {
	case DirectionPrevious:
		query = query.Where("timestamp < ?", ts).Order("timestamp DESC")
	case DirectionNext:
		query = query.Where("timestamp > ?", ts).Order("timestamp ASC")
	default:
		return nil, &domain.ValidationError{Field: "direction", Reason: fmt.Sprintf("unknown direction %q", dir)}
	}

	var msg domain.Message
	err := query.First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("[MESSAGES|DAO] Adjacent lookup failed: %v", err)
		return nil, &domain.DatabaseError{Op: "fetch adjacent message", Err: err}
	}
	return &msg, nil
}

// translateDuplicate maps backend integrity violations to the domain
// duplicate kind. Returns nil when err is not a unique violation.
func (r *gormMessageRepository) translateDuplicate(msg *domain.Message, err error) error {
	constraint, ok := r.dialect.UniqueViolation(err)
	if !ok {
		return nil
	}
	if constraint == database.ConstraintMessageExternalID {
		var msgID int64
		if msg.MsgID != nil {
			msgID = *msg.MsgID
		}
		log.Printf("[MESSAGES|DAO] Unique msg_id conflict (chat_ref_id=%d, msg_id=%d).", msg.ChatRefID, msgID)
		return &domain.DuplicateMessageError{ChatRefID: msg.ChatRefID, MsgID: msgID}
	}
	return &domain.DatabaseError{Op: "message integrity violation", Err: err}
}
