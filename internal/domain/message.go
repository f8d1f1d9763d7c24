// File: internal/domain/message.go
package domain

import (
	"strings"
	"time"

	"github.com/arcanum-app/arcanum/internal/timeutil"
)

// Message represents one archived chat message, owned by exactly one Chat.
// Timestamps are stored and compared in UTC.
type Message struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	ChatRefID  uint       `gorm:"column:chat_ref_id;not null;uniqueIndex:idx_messages_chat_msg" json:"chat_ref_id"`
	MsgID      *int64     `gorm:"column:msg_id;uniqueIndex:idx_messages_chat_msg" json:"msg_id,omitempty"` // external Telegram message ID
	Timestamp  *time.Time `gorm:"index" json:"timestamp,omitempty"`
	Link       *string    `json:"link,omitempty"`
	Text       *string    `json:"text,omitempty"`
	Media      MediaList  `gorm:"type:text" json:"media"`
	Screenshot *string    `json:"screenshot,omitempty"`
	Tags       TagList    `gorm:"type:text" json:"tags"`
	Notes      *string    `json:"notes,omitempty"`
}

func (Message) TableName() string { return "messages" }

// Normalize trims the text field and discards empty tags and duplicate
// media references in place.
func (m *Message) Normalize() {
	if m.Text != nil {
		trimmed := strings.TrimSpace(*m.Text)
		if trimmed == "" {
			m.Text = nil
		} else {
			m.Text = &trimmed
		}
	}
	m.Tags = cleanTags(m.Tags)
	m.Media = dedupeMedia(m.Media)
}

// ShortText returns a shortened, single-line version of the message text.
func (m *Message) ShortText(limit int) string {
	if m.Text == nil {
		return ""
	}
	text := CollapseWhitespace(*m.Text)
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

// MessageInput is the loosely-typed form/request payload for a message.
type MessageInput struct {
	MsgID      string `json:"msg_id"`
	Timestamp  string `json:"timestamp"`
	Link       string `json:"link"`
	Text       string `json:"text"`
	Media      string `json:"media"`
	Screenshot string `json:"screenshot"`
	Tags       string `json:"tags"`
	Notes      string `json:"notes"`
}

// MessageFromInput builds a normalized Message tied to a chat from loose
// input. Timestamps accept zoned ISO-8601 directly; naive input is localized
// to loc before converting to UTC, matching how users type archive times. A
// timestamp no known layout matches is reported as an error; every other
// field degrades to absent on bad input.
func MessageFromInput(chatRefID uint, in MessageInput, loc *time.Location) (*Message, error) {
	ts, err := parseTimestamp(in.Timestamp, loc)
	if err != nil {
		return nil, &ValidationError{Field: "timestamp", Reason: err.Error()}
	}

	msg := &Message{
		ChatRefID:  chatRefID,
		MsgID:      ToInt64OrNil(in.MsgID),
		Timestamp:  ts,
		Link:       EmptyToNil(in.Link),
		Text:       EmptyToNil(in.Text),
		Media:      ParseMedia(in.Media),
		Screenshot: EmptyToNil(in.Screenshot),
		Tags:       ParseTags(in.Tags),
		Notes:      EmptyToNil(in.Notes),
	}
	msg.Normalize()
	return msg, nil
}

// parseTimestamp parses an optional timestamp into UTC. Naive input is never
// silently assumed to be UTC; it is localized to loc first.
func parseTimestamp(raw string, loc *time.Location) (*time.Time, error) {
	if EmptyToNil(raw) == nil {
		return nil, nil
	}
	t, err := timeutil.ParseDateTime(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MessageWithChat is one search/listing row joined with its owning chat.
type MessageWithChat struct {
	Message  `gorm:"embedded"`
	ChatName string `gorm:"column:chat_name" json:"chat_name"`
	ChatSlug string `gorm:"column:chat_slug" json:"chat_slug"`
}
