// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/arcanum-app/arcanum/internal/database"
	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/sqlutil"
)

// listOrder is the allow-list for the chats overview; last_message is an
// aggregate that is NULL for chats without messages.
var listOrder = sqlutil.OrderConfig{
	AllowedFields:  []string{"name", "message_count", "last_message"},
	DefaultField:   "last_message",
	DefaultOrder:   "desc",
	NullableFields: []string{"last_message"},
}

type gormChatRepository struct {
	db      *gorm.DB
	dialect database.Dialect
}

func NewChatRepository(db *gorm.DB, dialect database.Dialect) ChatRepository {
	return &gormChatRepository{db: db, dialect: dialect}
}

// List returns all chats joined with message count and last-message
// timestamp. An empty archive yields an empty list, never an error.
func (r *gormChatRepository) List(ctx context.Context, sortBy, order string) ([]domain.ChatWithStats, error) {
	orderClause := sqlutil.BuildOrderClause(sortBy, order, listOrder)

	rows := []domain.ChatWithStats{}
	err := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Select(`chats.*,
			(SELECT COUNT(*) FROM messages m WHERE m.chat_ref_id = chats.id) AS message_count,
			(SELECT MAX(m.timestamp) FROM messages m WHERE m.chat_ref_id = chats.id) AS last_message`).
		Order(orderClause).
		Find(&rows).Error
	if err != nil {
		log.Printf("[CHATS|DAO] Failed to retrieve chats: %v", err)
		return nil, &domain.DatabaseError{Op: "list chats", Err: err}
	}

	log.Printf("[CHATS|DAO] Retrieved %d chat(s).", len(rows))
	return rows, nil
}

// FindBySlug retrieves a chat by its slug, or (nil, nil) if absent.
func (r *gormChatRepository) FindBySlug(ctx context.Context, slug string) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[CHATS|DAO] No match for slug %q.", slug)
		return nil, nil
	}
	if err != nil {
		log.Printf("[CHATS|DAO] Failed to fetch chat by slug %q: %v", slug, err)
		return nil, &domain.DatabaseError{Op: "fetch chat by slug", Err: err}
	}
	return &chat, nil
}

// FindByID retrieves a chat by its primary key, or (nil, nil) if absent.
func (r *gormChatRepository) FindByID(ctx context.Context, id uint) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[CHATS|DAO] No match for ID=%d.", id)
		return nil, nil
	}
	if err != nil {
		log.Printf("[CHATS|DAO] Failed to fetch chat by ID=%d: %v", id, err)
		return nil, &domain.DatabaseError{Op: "fetch chat by id", Err: err}
	}
	return &chat, nil
}

// Insert stores a new chat record and returns its generated primary key.
// Integrity violations are translated to domain duplicate errors at this
// boundary.
func (r *gormChatRepository) Insert(ctx context.Context, chat *domain.Chat) (uint, error) {
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		if dup := r.translateDuplicate(chat, err); dup != nil {
			return 0, dup
		}
		log.Printf("[CHATS|DAO] Insert failed: %v", err)
		return 0, &domain.DatabaseError{Op: "insert chat", Err: err}
	}

	log.Printf("[CHATS|DAO] Inserted chat ID=%d (slug=%q).", chat.ID, chat.Slug)
	return chat.ID, nil
}

// Update rewrites an existing chat record. Zero affected rows means the
// target does not exist.
func (r *gormChatRepository) Update(ctx context.Context, chat *domain.Chat) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chat.ID).
		Updates(map[string]interface{}{
			"chat_id":   chat.ChatID,
			"slug":      chat.Slug,
			"name":      chat.Name,
			"link":      chat.Link,
			"type":      chat.Type,
			"joined":    chat.Joined,
			"is_active": chat.IsActive,
			"is_member": chat.IsMember,
			"is_public": chat.IsPublic,
			"notes":     chat.Notes,
		})
	if result.Error != nil {
		if dup := r.translateDuplicate(chat, result.Error); dup != nil {
			return dup
		}
		log.Printf("[CHATS|DAO] Update failed: %v", result.Error)
		return &domain.DatabaseError{Op: "update chat", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		log.Printf("[CHATS|DAO] No rows updated for ID=%d.", chat.ID)
		return &domain.ChatNotFoundError{ID: chat.ID}
	}

	log.Printf("[CHATS|DAO] Updated chat ID=%d (slug=%q).", chat.ID, chat.Slug)
	return nil
}

// Delete removes a chat by primary key. Owned messages go with it through
// the database-level cascade constraint.
func (r *gormChatRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Chat{}, id)
	if result.Error != nil {
		log.Printf("[CHATS|DAO] Delete failed: %v", result.Error)
		return &domain.DatabaseError{Op: "delete chat", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		log.Printf("[CHATS|DAO] No chat found to delete with ID=%d.", id)
		return &domain.ChatNotFoundError{ID: id}
	}

	log.Printf("[CHATS|DAO] Deleted chat ID=%d.", id)
	return nil
}

// ExistsBySlug checks whether a slug is taken, optionally excluding one chat
// (used when validating an update that keeps its current slug).
func (r *gormChatRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("[CHATS|DAO] Slug check failed: %v", err)
		return false, &domain.DatabaseError{Op: "check slug exists", Err: err}
	}
	return count > 0, nil
}

// ExistsByChatID checks whether an external chat ID is taken, optionally
// excluding one chat.
func (r *gormChatRepository) ExistsByChatID(ctx context.Context, chatID int64, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("chat_id = ?", chatID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("[CHATS|DAO] Chat ID check failed: %v", err)
		return false, &domain.DatabaseError{Op: "check chat_id exists", Err: err}
	}
	return count > 0, nil
}

// GlobalStats aggregates archive-wide counts: totals, media messages, the
// most active chat, and the most recent message with its owning chat.
func (r *gormChatRepository) GlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	stats := &domain.GlobalStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&domain.Chat{}).Count(&stats.TotalChats).Error; err != nil {
		return nil, r.statsError(err)
	}
	if err := db.Model(&domain.Message{}).Count(&stats.TotalMessages).Error; err != nil {
		return nil, r.statsError(err)
	}
	if err := db.Model(&domain.Message{}).
		Where("media IS NOT NULL AND media <> '' AND media <> '[]'").
		Count(&stats.MediaMessages).Error; err != nil {
		return nil, r.statsError(err)
	}

	var mostActive struct {
		ChatRefID uint  `gorm:"column:chat_ref_id"`
		MsgCount  int64 `gorm:"column:msg_count"`
	}
	err := db.Model(&domain.Message{}).
		Select("chat_ref_id, COUNT(*) AS msg_count").
		Group("chat_ref_id").
		Order("msg_count DESC").
		Limit(1).
		Scan(&mostActive).Error
	if err != nil {
		return nil, r.statsError(err)
	}
	if mostActive.ChatRefID != 0 {
		owner, err := r.FindByID(ctx, mostActive.ChatRefID)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			stats.MostActiveChatName = owner.Name
			stats.MostActiveChatSlug = owner.Slug
			stats.MostActiveChatCount = mostActive.MsgCount
		}
	}

	var lastMsg domain.Message
	err = db.Where("timestamp IS NOT NULL").
		Order("timestamp DESC").
		First(&lastMsg).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.statsError(err)
	}
	if err == nil {
		stats.LastMessageID = lastMsg.ID
		stats.LastMessageTimestamp = lastMsg.Timestamp
		owner, err := r.FindByID(ctx, lastMsg.ChatRefID)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			stats.LastMessageChatSlug = owner.Slug
		}
	}

	log.Printf("[CHATS|DAO] Retrieved global chat statistics.")
	return stats, nil
}

func (r *gormChatRepository) statsError(err error) error {
	log.Printf("[CHATS|DAO] Failed to fetch global chat statistics: %v", err)
	return &domain.DatabaseError{Op: "fetch global stats", Err: err}
}

// translateDuplicate maps backend integrity violations to domain duplicate
// kinds. Returns nil when err is not a unique violation.
func (r *gormChatRepository) translateDuplicate(chat *domain.Chat, err error) error {
	constraint, ok := r.dialect.UniqueViolation(err)
	if !ok {
		return nil
	}
	switch constraint {
	case database.ConstraintChatSlug:
		log.Printf("[CHATS|DAO] Slug conflict: %q", chat.Slug)
		return &domain.DuplicateSlugError{Slug: chat.Slug}
	case database.ConstraintChatExternalID:
		var id int64
		if chat.ChatID != nil {
			id = *chat.ChatID
		}
		log.Printf("[CHATS|DAO] Chat ID conflict: %d", id)
		return &domain.DuplicateChatIDError{ChatID: id}
	}
	return &domain.DatabaseError{Op: "chat integrity violation", Err: err}
}
