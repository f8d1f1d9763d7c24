// File: internal/services/chat_service.go
package services

import (
	"context"
	"time"

	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/repository/chat"
	"github.com/arcanum-app/arcanum/internal/slugify"
)

// ChatService encapsulates business rules for archived chats: slug
// generation, uniqueness pre-checks, and joined-date validation. The
// database unique constraints remain the authoritative guard; pre-checks
// only produce friendlier errors for the common case.
type ChatService struct {
	chats  chat.ChatRepository
	logger Logger
}

func NewChatService(chats chat.ChatRepository, logger Logger) *ChatService {
	return &ChatService{chats: chats, logger: logger}
}

// ListChats retrieves all chats with message aggregates.
func (s *ChatService) ListChats(ctx context.Context, sortBy, order string) ([]domain.ChatWithStats, error) {
	return s.chats.List(ctx, sortBy, order)
}

// GetChatBySlug retrieves a chat by slug; (nil, nil) when absent.
func (s *ChatService) GetChatBySlug(ctx context.Context, slug string) (*domain.Chat, error) {
	return s.chats.FindBySlug(ctx, slug)
}

// GetChatByID retrieves a chat by primary key; (nil, nil) when absent.
func (s *ChatService) GetChatByID(ctx context.Context, id uint) (*domain.Chat, error) {
	return s.chats.FindByID(ctx, id)
}

// CreateChat validates the input, computes a unique slug from the name, and
// inserts the chat.
func (s *ChatService) CreateChat(ctx context.Context, in domain.ChatInput) (*domain.Chat, error) {
	newChat := domain.ChatFromInput(in)
	if err := s.validateChat(newChat); err != nil {
		return nil, err
	}

	if newChat.ChatID != nil {
		taken, err := s.chats.ExistsByChatID(ctx, *newChat.ChatID, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.DuplicateChatIDError{ChatID: *newChat.ChatID}
		}
	}

	slug, err := s.resolveSlug(ctx, newChat, 0)
	if err != nil {
		return nil, err
	}
	newChat.Slug = slug

	id, err := s.chats.Insert(ctx, newChat)
	if err != nil {
		return nil, err
	}
	newChat.ID = id

	s.logger.Info("chat created", "id", id, "slug", newChat.Slug)
	return newChat, nil
}

// UpdateChat applies new input to an existing chat. The slug changes only
// when the name changed.
func (s *ChatService) UpdateChat(ctx context.Context, id uint, in domain.ChatInput) (*domain.Chat, error) {
	existing, err := s.chats.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &domain.ChatNotFoundError{ID: id}
	}

	updated := domain.ChatFromInput(in)
	updated.ID = id
	updated.Slug = existing.Slug
	if err := s.validateChat(updated); err != nil {
		return nil, err
	}

	if updated.Name != existing.Name {
		slug, err := s.resolveSlug(ctx, updated, id)
		if err != nil {
			return nil, err
		}
		updated.Slug = slug
	}

	if updated.ChatID != nil {
		taken, err := s.chats.ExistsByChatID(ctx, *updated.ChatID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.DuplicateChatIDError{ChatID: *updated.ChatID}
		}
	}

	if err := s.chats.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("chat updated", "id", id, "slug", updated.Slug)
	return updated, nil
}

// DeleteChat removes a chat and, through the cascade constraint, all of its
// messages.
func (s *ChatService) DeleteChat(ctx context.Context, id uint) error {
	if err := s.chats.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("chat deleted", "id", id)
	return nil
}

// GetGlobalStats returns archive-wide aggregate counts.
func (s *ChatService) GetGlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	return s.chats.GlobalStats(ctx)
}

// resolveSlug derives the slug from the chat name, suffixing a short hash
// when the base slug is taken. The check-then-insert window is accepted;
// the unique constraint catches the race.
func (s *ChatService) resolveSlug(ctx context.Context, c *domain.Chat, excludeID uint) (string, error) {
	base := slugify.Slugify(c.Name)

	taken, err := s.chats.ExistsBySlug(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	seed := c.Name
	if c.Link != nil {
		seed += *c.Link
	}
	return slugify.GenerateUniqueSlug(base, seed, func(candidate string) (bool, error) {
		return s.chats.ExistsBySlug(ctx, candidate, excludeID)
	})
}

func (s *ChatService) validateChat(c *domain.Chat) error {
	if c.Name == "" {
		return &domain.ValidationError{Field: "name", Reason: "name is required"}
	}
	if c.Joined != nil && c.Joined.After(endOfToday()) {
		return &domain.ValidationError{Field: "joined", Reason: "joined date must not be in the future"}
	}
	return nil
}

func endOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
}
