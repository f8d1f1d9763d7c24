// File: internal/repository/message/message_repository_test.go
package message

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arcanum-app/arcanum/internal/config"
	"github.com/arcanum-app/arcanum/internal/database"
	"github.com/arcanum-app/arcanum/internal/domain"
)

type testEnv struct {
	db   *gorm.DB
	repo MessageRepository
	chat *domain.Chat
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		DBBackend:  config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "archive.sqlite"),
	}
	db, dialect, err := database.Open(cfg)
	require.NoError(t, err)

	chat := &domain.Chat{Slug: "news", Name: "News"}
	require.NoError(t, db.Create(chat).Error)

	return &testEnv{db: db, repo: NewMessageRepository(db, dialect), chat: chat}
}

func (e *testEnv) addChat(t *testing.T, slug string) *domain.Chat {
	t.Helper()
	chat := &domain.Chat{Slug: slug, Name: slug}
	require.NoError(t, e.db.Create(chat).Error)
	return chat
}

func (e *testEnv) addMessage(t *testing.T, msg *domain.Message) *domain.Message {
	t.Helper()
	if msg.ChatRefID == 0 {
		msg.ChatRefID = e.chat.ID
	}
	_, err := e.repo.Insert(context.Background(), msg)
	require.NoError(t, err)
	return msg
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func utc(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestInsert_DuplicateMsgIDWithinChat(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	env.addMessage(t, &domain.Message{MsgID: int64Ptr(42)})

	_, err := env.repo.Insert(ctx, &domain.Message{ChatRefID: env.chat.ID, MsgID: int64Ptr(42)})
	var dup *domain.DuplicateMessageError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, env.chat.ID, dup.ChatRefID)
	assert.Equal(t, int64(42), dup.MsgID)
}

func TestInsert_SameMsgIDInDifferentChats(t *testing.T) {
	env := newEnv(t)
	other := env.addChat(t, "other")

	env.addMessage(t, &domain.Message{MsgID: int64Ptr(42)})
	env.addMessage(t, &domain.Message{ChatRefID: other.ID, MsgID: int64Ptr(42)})
}

func TestInsert_ManyAbsentMsgIDsAllowed(t *testing.T) {
	env := newEnv(t)

	for i := 0; i < 3; i++ {
		env.addMessage(t, &domain.Message{Text: strPtr("no external id")})
	}

	count, err := env.repo.CountByChat(context.Background(), env.chat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestListByChatSlug_ScopedAndSorted(t *testing.T) {
	env := newEnv(t)
	other := env.addChat(t, "other")

	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Timestamp: timePtr(utc(2024, 1, 1, 10, 0))})
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(2), Timestamp: timePtr(utc(2024, 2, 1, 10, 0))})
	env.addMessage(t, &domain.Message{ChatRefID: other.ID, MsgID: int64Ptr(9), Timestamp: timePtr(utc(2024, 3, 1, 10, 0))})

	rows, err := env.repo.ListByChatSlug(context.Background(), "news", "timestamp", "desc")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), *rows[0].MsgID)
	assert.Equal(t, int64(1), *rows[1].MsgID)
	assert.Equal(t, "News", rows[0].ChatName)
	assert.Equal(t, "news", rows[0].ChatSlug)
}

func TestListFiltered_SearchIsCaseInsensitive(t *testing.T) {
	env := newEnv(t)
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Text: strPtr("Hello World")})
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(2), Text: strPtr("unrelated")})

	rows, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{
		Action: domain.ActionSearch,
		Query:  "hello",
	}, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), *rows[0].MsgID)
}

func TestListFiltered_SearchScopedToChat(t *testing.T) {
	env := newEnv(t)
	other := env.addChat(t, "other")

	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Text: strPtr("match here")})
	env.addMessage(t, &domain.Message{ChatRefID: other.ID, MsgID: int64Ptr(2), Text: strPtr("match there")})

	rows, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{
		Action:   domain.ActionSearch,
		Query:    "match",
		ChatSlug: "other",
	}, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "other", rows[0].ChatSlug)
}

func TestListFiltered_TagMatchesWholeTagOnly(t *testing.T) {
	env := newEnv(t)
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Tags: domain.TagList{"news"}})
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(2), Tags: domain.TagList{"newsletter"}})

	rows, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{
		Action: domain.ActionTag,
		Tag:    "news",
	}, "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), *rows[0].MsgID)
}

func TestListFiltered_DateOnCoversWholeDay(t *testing.T) {
	env := newEnv(t)
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Timestamp: timePtr(utc(2024, 3, 15, 0, 0))})
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(2), Timestamp: timePtr(time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC))})
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(3), Timestamp: timePtr(utc(2024, 3, 16, 0, 0))})

	rows, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{
		Action:    domain.ActionFilter,
		DateMode:  domain.DateModeOn,
		StartDate: "2024-03-15",
	}, "timestamp", "asc")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), *rows[0].MsgID)
	assert.Equal(t, int64(2), *rows[1].MsgID)
}

func TestListFiltered_DateBeforeAndAfterExcludeTheDay(t *testing.T) {
	env := newEnv(t)
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Timestamp: timePtr(utc(2024, 3, 14, 12, 0))})
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(2), Timestamp: timePtr(utc(2024, 3, 15, 12, 0))})
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(3), Timestamp: timePtr(utc(2024, 3, 16, 12, 0))})

	before, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{
		Action:    domain.ActionFilter,
		DateMode:  domain.DateModeBefore,
		StartDate: "2024-03-15",
	}, "", "")
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, int64(1), *before[0].MsgID)

	after, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{
		Action:    domain.ActionFilter,
		DateMode:  domain.DateModeAfter,
		StartDate: "2024-03-15",
	}, "", "")
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, int64(3), *after[0].MsgID)
}

func TestListFiltered_BetweenSameDayIsInclusive(t *testing.T) {
	env := newEnv(t)
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Timestamp: timePtr(time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC))})

	rows, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{
		Action:    domain.ActionFilter,
		DateMode:  domain.DateModeBetween,
		StartDate: "2024-03-15",
		EndDate:   "2024-03-15",
	}, "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestListFiltered_MessagesWithoutTimestampNeverMatchDates(t *testing.T) {
	env := newEnv(t)
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1)})

	rows, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{
		Action:    domain.ActionFilter,
		DateMode:  domain.DateModeBetween,
		StartDate: "2000-01-01",
		EndDate:   "2100-01-01",
	}, "", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListFiltered_NoActionReturnsEmpty(t *testing.T) {
	env := newEnv(t)
	env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Text: strPtr("hello")})

	rows, err := env.repo.ListFiltered(context.Background(), domain.MessageFilters{}, "", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInsert_RoundTripPreservesNormalizedFields(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	in, err := domain.MessageFromInput(env.chat.ID, domain.MessageInput{
		MsgID:     "42",
		Timestamp: "2024-03-15T12:30:00Z",
		Text:      "  hello world  ",
		Media:     `["a.jpg","a.jpg"]`,
		Tags:      "x, y",
	}, time.UTC)
	require.NoError(t, err)

	id, err := env.repo.Insert(ctx, in)
	require.NoError(t, err)

	got, err := env.repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *in.MsgID, *got.MsgID)
	assert.True(t, in.Timestamp.Equal(*got.Timestamp))
	assert.Equal(t, *in.Text, *got.Text)
	assert.Equal(t, in.Media, got.Media)
	assert.Equal(t, in.Tags, got.Tags)
}

func TestUpdate_MissingMessage(t *testing.T) {
	env := newEnv(t)

	err := env.repo.Update(context.Background(), &domain.Message{ID: 404, ChatRefID: env.chat.ID})
	var nf *domain.MessageNotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestUpdate_RewritesFields(t *testing.T) {
	env := newEnv(t)
	msg := env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Text: strPtr("old"), Tags: domain.TagList{"a"}})

	msg.Text = strPtr("new")
	msg.Tags = domain.TagList{"b", "c"}
	msg.Notes = nil
	require.NoError(t, env.repo.Update(context.Background(), msg))

	found, err := env.repo.FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "new", *found.Text)
	assert.Equal(t, domain.TagList{"b", "c"}, found.Tags)
}

func TestExists_WithExclusion(t *testing.T) {
	env := newEnv(t)
	msg := env.addMessage(t, &domain.Message{MsgID: int64Ptr(42)})
	ctx := context.Background()

	taken, err := env.repo.Exists(ctx, env.chat.ID, 42, 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = env.repo.Exists(ctx, env.chat.ID, 42, msg.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = env.repo.Exists(ctx, env.chat.ID, 999, 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestFindAdjacent(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	first := env.addMessage(t, &domain.Message{MsgID: int64Ptr(1), Timestamp: timePtr(utc(2024, 1, 1, 10, 0))})
	second := env.addMessage(t, &domain.Message{MsgID: int64Ptr(2), Timestamp: timePtr(utc(2024, 1, 2, 10, 0))})
	third := env.addMessage(t, &domain.Message{MsgID: int64Ptr(3), Timestamp: timePtr(utc(2024, 1, 3, 10, 0))})

	prev, err := env.repo.FindAdjacent(ctx, env.chat.ID, *second.Timestamp, DirectionPrevious)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, first.ID, prev.ID)

	next, err := env.repo.FindAdjacent(ctx, env.chat.ID, *second.Timestamp, DirectionNext)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, third.ID, next.ID)

	none, err := env.repo.FindAdjacent(ctx, env.chat.ID, *third.Timestamp, DirectionNext)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFindAdjacent_StaysWithinChat(t *testing.T) {
	env := newEnv(t)
	other := env.addChat(t, "other")

	env.addMessage(t, &domain.Message{ChatRefID: other.ID, MsgID: int64Ptr(1), Timestamp: timePtr(utc(2024, 1, 1, 10, 0))})
	mine := env.addMessage(t, &domain.Message{MsgID: int64Ptr(2), Timestamp: timePtr(utc(2024, 1, 2, 10, 0))})

	prev, err := env.repo.FindAdjacent(context.Background(), env.chat.ID, *mine.Timestamp, DirectionPrevious)
	require.NoError(t, err)
	assert.Nil(t, prev)
}
