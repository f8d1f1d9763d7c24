// File: internal/repository/chat/interface.go
package chat

import (
	"context"

	"github.com/arcanum-app/arcanum/internal/domain"
)

// ChatRepository handles chat data operations, independent of SQL dialect.
// Lookups return (nil, nil) when no row matches; absence is not an error.
type ChatRepository interface {
	List(ctx context.Context, sortBy, order string) ([]domain.ChatWithStats, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Chat, error)
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)
	Insert(ctx context.Context, chat *domain.Chat) (uint, error)
	Update(ctx context.Context, chat *domain.Chat) error
	Delete(ctx context.Context, id uint) error
	ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error)
	ExistsByChatID(ctx context.Context, chatID int64, excludeID uint) (bool, error)
	GlobalStats(ctx context.Context) (*domain.GlobalStats, error)
}
