// File: internal/domain/chat.go
package domain

import (
	"fmt"
	"time"

	"github.com/arcanum-app/arcanum/internal/timeutil"
)

// Chat represents one archived conversation.
type Chat struct {
	ID       uint       `gorm:"primarykey" json:"id"`
	Slug     string     `gorm:"uniqueIndex:idx_chats_slug;not null" json:"slug"`
	ChatID   *int64     `gorm:"column:chat_id;uniqueIndex:idx_chats_chat_id" json:"chat_id,omitempty"` // external Telegram chat ID
	Name     string     `gorm:"not null" json:"name"`
	Link     *string    `json:"link,omitempty"`
	Type     *string    `json:"type,omitempty"`
	Joined   *time.Time `json:"joined,omitempty"`
	IsActive bool       `json:"is_active"`
	IsMember bool       `json:"is_member"`
	IsPublic bool       `json:"is_public"`
	Notes    *string    `json:"notes,omitempty"`

	Messages []Message `gorm:"foreignKey:ChatRefID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Chat) TableName() string { return "chats" }

// DisplayName returns the chat name together with its slug.
func (c *Chat) DisplayName() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Slug)
}

// ChatInput is the loosely-typed form/request payload for a chat. All fields
// arrive as strings; normalization turns blanks into absent values and
// invalid numbers into absent values, never into errors.
type ChatInput struct {
	ChatID   string `json:"chat_id"`
	Name     string `json:"name"`
	Link     string `json:"link"`
	Type     string `json:"type"`
	Joined   string `json:"joined"`
	IsActive bool   `json:"is_active"`
	IsMember bool   `json:"is_member"`
	IsPublic bool   `json:"is_public"`
	Notes    string `json:"notes"`
}

// ChatFromInput builds a normalized Chat from loose input. The slug is left
// empty; it is computed by the service at creation time.
func ChatFromInput(in ChatInput) *Chat {
	return &Chat{
		ChatID:   ToInt64OrNil(in.ChatID),
		Name:     CollapseWhitespace(in.Name),
		Link:     EmptyToNil(in.Link),
		Type:     EmptyToNil(in.Type),
		Joined:   parseJoined(in.Joined),
		IsActive: in.IsActive,
		IsMember: in.IsMember,
		IsPublic: in.IsPublic,
		Notes:    EmptyToNil(in.Notes),
	}
}

// parseJoined parses an optional calendar date. Blank or malformed input is
// absent, never an error.
func parseJoined(raw string) *time.Time {
	if EmptyToNil(raw) == nil {
		return nil
	}
	d, err := timeutil.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &d
}

// ChatWithStats is one chats-list row joined with derived aggregates.
type ChatWithStats struct {
	Chat         `gorm:"embedded"`
	MessageCount int64      `gorm:"column:message_count" json:"message_count"`
	LastMessage  *time.Time `gorm:"column:last_message" json:"last_message,omitempty"`
}

// GlobalStats aggregates archive-wide counts for the dashboard.
type GlobalStats struct {
	TotalChats           int64      `json:"total_chats"`
	TotalMessages        int64      `json:"total_messages"`
	MediaMessages        int64      `json:"media_messages"`
	MostActiveChatName   string     `json:"most_active_chat_name,omitempty"`
	MostActiveChatSlug   string     `json:"most_active_chat_slug,omitempty"`
	MostActiveChatCount  int64      `json:"most_active_chat_count,omitempty"`
	LastMessageID        uint       `json:"last_message_id,omitempty"`
	LastMessageTimestamp *time.Time `json:"last_message_timestamp,omitempty"`
	LastMessageChatSlug  string     `json:"last_message_chat_slug,omitempty"`
}
