// File: internal/repository/message/interface.go
package message

import (
	"context"
	"time"

	"github.com/arcanum-app/arcanum/internal/domain"
)

// Direction selects which neighbor FindAdjacent looks for.
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

// MessageRepository handles message data operations, independent of SQL
// dialect. Lookups return (nil, nil) when no row matches.
type MessageRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Message, error)
	ListByChatSlug(ctx context.Context, chatSlug, sortBy, order string) ([]domain.MessageWithChat, error)
	ListFiltered(ctx context.Context, filters domain.MessageFilters, sortBy, order string) ([]domain.MessageWithChat, error)
	Insert(ctx context.Context, msg *domain.Message) (uint, error)
	Update(ctx context.Context, msg *domain.Message) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, chatRefID uint, msgID int64, excludeID uint) (bool, error)
	CountByChat(ctx context.Context, chatRefID uint) (int64, error)
	FindAdjacent(ctx context.Context, chatRefID uint, ts time.Time, dir Direction) (*domain.Message, error)
}
