// File: internal/dtos/chat.go
package dtos

import (
	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/timeutil"
)

// ChatResponse is the API shape of a chat: dates rendered as ISO strings,
// notes optionally rendered to HTML.
type ChatResponse struct {
	ID        uint   `json:"id"`
	Slug      string `json:"slug"`
	ChatID    *int64 `json:"chat_id,omitempty"`
	Name      string `json:"name"`
	Link      string `json:"link,omitempty"`
	Type      string `json:"type,omitempty"`
	Joined    string `json:"joined,omitempty"`
	IsActive  bool   `json:"is_active"`
	IsMember  bool   `json:"is_member"`
	IsPublic  bool   `json:"is_public"`
	Notes     string `json:"notes,omitempty"`
	NotesHTML string `json:"notes_html,omitempty"`
}

// ChatListItem is one row of the chats overview, including aggregates.
type ChatListItem struct {
	ChatResponse
	MessageCount int64  `json:"message_count"`
	LastMessage  string `json:"last_message,omitempty"`
}

func FromChat(c *domain.Chat) ChatResponse {
	resp := ChatResponse{
		ID:       c.ID,
		Slug:     c.Slug,
		ChatID:   c.ChatID,
		Name:     c.Name,
		IsActive: c.IsActive,
		IsMember: c.IsMember,
		IsPublic: c.IsPublic,
	}
	if c.Link != nil {
		resp.Link = *c.Link
	}
	if c.Type != nil {
		resp.Type = *c.Type
	}
	if c.Joined != nil {
		resp.Joined = timeutil.FormatDate(*c.Joined)
	}
	if c.Notes != nil {
		resp.Notes = *c.Notes
	}
	return resp
}

func FromChatWithStats(row *domain.ChatWithStats) ChatListItem {
	item := ChatListItem{ChatResponse: FromChat(&row.Chat)}
	item.MessageCount = row.MessageCount
	if row.LastMessage != nil {
		item.LastMessage = timeutil.ToUTCISO(*row.LastMessage)
	}
	return item
}
