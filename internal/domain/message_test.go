// File: internal/domain/message_test.go
package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFromInput_NormalizesFields(t *testing.T) {
	msg, err := MessageFromInput(7, MessageInput{
		MsgID:     "991",
		Timestamp: "2024-03-15T12:30:00Z",
		Text:      "  hello world  ",
		Media:     `["a.jpg","a.jpg","b.png"]`,
		Tags:      "news, фото",
	}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, uint(7), msg.ChatRefID)
	require.NotNil(t, msg.MsgID)
	assert.Equal(t, int64(991), *msg.MsgID)
	require.NotNil(t, msg.Timestamp)
	assert.Equal(t, time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC), *msg.Timestamp)
	require.NotNil(t, msg.Text)
	assert.Equal(t, "hello world", *msg.Text)
	assert.Equal(t, MediaList{"a.jpg", "b.png"}, msg.Media)
	assert.Equal(t, TagList{"news", "фото"}, msg.Tags)
}

func TestMessageFromInput_BlankOptionalFields(t *testing.T) {
	msg, err := MessageFromInput(1, MessageInput{}, time.UTC)
	require.NoError(t, err)
	assert.Nil(t, msg.MsgID)
	assert.Nil(t, msg.Timestamp)
	assert.Nil(t, msg.Text)
	assert.Equal(t, MediaList{}, msg.Media)
	assert.Equal(t, TagList{}, msg.Tags)
}

func TestMessageFromInput_NaiveTimestampLocalized(t *testing.T) {
	kyiv, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)

	// Naive input is read in the supplied zone and stored as UTC.
	msg, err := MessageFromInput(1, MessageInput{Timestamp: "2024-01-10 15:00"}, kyiv)
	require.NoError(t, err)
	require.NotNil(t, msg.Timestamp)
	assert.Equal(t, time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC), *msg.Timestamp)

	// Zoned input is taken as-is regardless of the supplied zone.
	msg, err = MessageFromInput(1, MessageInput{Timestamp: "2024-01-10T15:00:00Z"}, kyiv)
	require.NoError(t, err)
	require.NotNil(t, msg.Timestamp)
	assert.Equal(t, time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC), *msg.Timestamp)
}

func TestMessageFromInput_UnparseableTimestampRejected(t *testing.T) {
	_, err := MessageFromInput(1, MessageInput{Timestamp: "yesterday"}, time.UTC)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "timestamp", verr.Field)
}

func TestMessageNormalize_BlankTextBecomesAbsent(t *testing.T) {
	text := "   "
	msg := Message{Text: &text, Tags: TagList{" a ", ""}, Media: MediaList{"x", "x"}}
	msg.Normalize()
	assert.Nil(t, msg.Text)
	assert.Equal(t, TagList{"a"}, msg.Tags)
	assert.Equal(t, MediaList{"x"}, msg.Media)
}

func TestMessageShortText(t *testing.T) {
	long := "word one\nword two word three"
	msg := Message{Text: &long}
	assert.Equal(t, "word one wo...", msg.ShortText(11))
	assert.Equal(t, "word one word two word three", msg.ShortText(100))

	empty := Message{}
	assert.Equal(t, "", empty.ShortText(10))
}
