// File: internal/services/message_service.go
package services

import (
	"context"
	"time"

	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/repository/chat"
	"github.com/arcanum-app/arcanum/internal/repository/message"
)

// MessageService encapsulates business rules for archived messages:
// per-chat external-ID uniqueness pre-checks, prev/next navigation, and
// timestamp input parsing. Naive timestamp input is read in displayLoc,
// the zone users type archive times in.
type MessageService struct {
	messages   message.MessageRepository
	chats      chat.ChatRepository
	displayLoc *time.Location
	logger     Logger
}

func NewMessageService(messages message.MessageRepository, chats chat.ChatRepository, displayLoc *time.Location, logger Logger) *MessageService {
	return &MessageService{messages: messages, chats: chats, displayLoc: displayLoc, logger: logger}
}

// ListByChatSlug retrieves all messages for a chat with sorting.
func (s *MessageService) ListByChatSlug(ctx context.Context, chatSlug, sortBy, order string) ([]domain.MessageWithChat, error) {
	return s.messages.ListByChatSlug(ctx, chatSlug, sortBy, order)
}

// GetMessageByID retrieves a message by primary key; (nil, nil) when absent.
func (s *MessageService) GetMessageByID(ctx context.Context, id uint) (*domain.Message, error) {
	return s.messages.FindByID(ctx, id)
}

// CountByChat counts the messages owned by one chat.
func (s *MessageService) CountByChat(ctx context.Context, chatRefID uint) (int64, error) {
	return s.messages.CountByChat(ctx, chatRefID)
}

// GetPreviousMessage returns the message sent immediately before msg in the
// same chat, or nil. Messages without a timestamp have no neighbors.
func (s *MessageService) GetPreviousMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if msg.Timestamp == nil {
		return nil, nil
	}
	return s.messages.FindAdjacent(ctx, msg.ChatRefID, *msg.Timestamp, message.DirectionPrevious)
}

// GetNextMessage returns the message sent immediately after msg in the same
// chat, or nil.
func (s *MessageService) GetNextMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if msg.Timestamp == nil {
		return nil, nil
	}
	return s.messages.FindAdjacent(ctx, msg.ChatRefID, *msg.Timestamp, message.DirectionNext)
}

// CreateMessage inserts a new message tied to the chat identified by slug.
// When an external message ID is present, the (chat, msg_id) pair is
// pre-checked; the unique constraint remains the authoritative guard.
func (s *MessageService) CreateMessage(ctx context.Context, chatSlug string, in domain.MessageInput) (*domain.Message, error) {
	owner, err := s.chats.FindBySlug(ctx, chatSlug)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, &domain.ChatNotFoundError{Slug: chatSlug}
	}

	msg, err := domain.MessageFromInput(owner.ID, in, s.displayLoc)
	if err != nil {
		return nil, err
	}

	if msg.MsgID != nil {
		taken, err := s.messages.Exists(ctx, msg.ChatRefID, *msg.MsgID, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.DuplicateMessageError{ChatRefID: msg.ChatRefID, MsgID: *msg.MsgID}
		}
	}

	id, err := s.messages.Insert(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id

	s.logger.Info("message created", "id", id, "chat_ref_id", msg.ChatRefID)
	return msg, nil
}

// UpdateMessage applies new input to an existing message. The owning chat
// never changes on update.
func (s *MessageService) UpdateMessage(ctx context.Context, id uint, in domain.MessageInput) (*domain.Message, error) {
	if id == 0 {
		return nil, &domain.ValidationError{Field: "id", Reason: "message ID is required for update"}
	}

	existing, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &domain.MessageNotFoundError{ID: id}
	}

	msg, err := domain.MessageFromInput(existing.ChatRefID, in, s.displayLoc)
	if err != nil {
		return nil, err
	}
	msg.ID = id

	if msg.MsgID != nil {
		taken, err := s.messages.Exists(ctx, msg.ChatRefID, *msg.MsgID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.DuplicateMessageError{ChatRefID: msg.ChatRefID, MsgID: *msg.MsgID}
		}
	}

	if err := s.messages.Update(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("message updated", "id", id)
	return msg, nil
}

// DeleteMessage removes a message by primary key.
func (s *MessageService) DeleteMessage(ctx context.Context, id uint) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("message deleted", "id", id)
	return nil
}
