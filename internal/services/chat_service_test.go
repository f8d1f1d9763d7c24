// File: internal/services/chat_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanum-app/arcanum/internal/domain"
)

func newChatService(t *testing.T) (*ChatService, *serviceEnv) {
	env := newServiceEnv(t)
	return NewChatService(env.chats, &NoOpLogger{}), env
}

func TestCreateChat_GeneratesSlugFromName(t *testing.T) {
	svc, _ := newChatService(t)

	chat, err := svc.CreateChat(context.Background(), domain.ChatInput{Name: "My Telegram Chat"})
	require.NoError(t, err)
	assert.Equal(t, "my_telegram_chat", chat.Slug)
	assert.NotZero(t, chat.ID)
}

func TestCreateChat_TransliteratesCyrillicName(t *testing.T) {
	svc, _ := newChatService(t)

	chat, err := svc.CreateChat(context.Background(), domain.ChatInput{Name: "Новини Дня"})
	require.NoError(t, err)
	assert.Equal(t, "novyny_dnia", chat.Slug)
}

func TestCreateChat_ResolvesSlugCollision(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()

	first, err := svc.CreateChat(ctx, domain.ChatInput{Name: "News"})
	require.NoError(t, err)
	second, err := svc.CreateChat(ctx, domain.ChatInput{Name: "News", Link: "https://t.me/other"})
	require.NoError(t, err)

	assert.Equal(t, "news", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "news_")
}

func TestCreateChat_RequiresName(t *testing.T) {
	svc, _ := newChatService(t)

	_, err := svc.CreateChat(context.Background(), domain.ChatInput{Name: "   "})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
}

func TestCreateChat_RejectsFutureJoinedDate(t *testing.T) {
	svc, _ := newChatService(t)

	_, err := svc.CreateChat(context.Background(), domain.ChatInput{Name: "News", Joined: "2099-01-01"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "joined", verr.Field)
}

func TestCreateChat_RejectsDuplicateExternalID(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()

	_, err := svc.CreateChat(ctx, domain.ChatInput{Name: "A", ChatID: "500"})
	require.NoError(t, err)

	_, err = svc.CreateChat(ctx, domain.ChatInput{Name: "B", ChatID: "500"})
	var dup *domain.DuplicateChatIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, int64(500), dup.ChatID)
}

func TestUpdateChat_KeepsSlugWhenNameUnchanged(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()

	chat, err := svc.CreateChat(ctx, domain.ChatInput{Name: "News"})
	require.NoError(t, err)

	updated, err := svc.UpdateChat(ctx, chat.ID, domain.ChatInput{Name: "News", Notes: "updated notes"})
	require.NoError(t, err)
	assert.Equal(t, chat.Slug, updated.Slug)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "updated notes", *updated.Notes)
}

func TestUpdateChat_RecomputesSlugOnRename(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()

	chat, err := svc.CreateChat(ctx, domain.ChatInput{Name: "Old Name"})
	require.NoError(t, err)

	updated, err := svc.UpdateChat(ctx, chat.ID, domain.ChatInput{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "new_name", updated.Slug)
}

func TestUpdateChat_KeepingOwnExternalIDIsNotAConflict(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()

	chat, err := svc.CreateChat(ctx, domain.ChatInput{Name: "News", ChatID: "500"})
	require.NoError(t, err)

	_, err = svc.UpdateChat(ctx, chat.ID, domain.ChatInput{Name: "News", ChatID: "500"})
	assert.NoError(t, err)
}

func TestUpdateChat_MissingChat(t *testing.T) {
	svc, _ := newChatService(t)

	_, err := svc.UpdateChat(context.Background(), 404, domain.ChatInput{Name: "X"})
	var nf *domain.ChatNotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestDeleteChat_Missing(t *testing.T) {
	svc, _ := newChatService(t)

	err := svc.DeleteChat(context.Background(), 404)
	var nf *domain.ChatNotFoundError
	assert.True(t, errors.As(err, &nf))
}
