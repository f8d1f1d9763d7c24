// File: internal/dtos/message.go
package dtos

import (
	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/timeutil"
)

// MessageResponse is the API shape of a message: timestamps rendered as
// UTC ISO strings with a 'Z' suffix.
type MessageResponse struct {
	ID         uint     `json:"id"`
	ChatRefID  uint     `json:"chat_ref_id"`
	MsgID      *int64   `json:"msg_id,omitempty"`
	Timestamp  string   `json:"timestamp,omitempty"`
	Link       string   `json:"link,omitempty"`
	Text       string   `json:"text,omitempty"`
	Media      []string `json:"media"`
	Screenshot string   `json:"screenshot,omitempty"`
	Tags       []string `json:"tags"`
	Notes      string   `json:"notes,omitempty"`
	NotesHTML  string   `json:"notes_html,omitempty"`
}

// previewLength bounds the single-line text preview on listing rows.
const previewLength = 120

// MessageListItem is one search/listing row joined with its owning chat.
type MessageListItem struct {
	MessageResponse
	Preview  string `json:"preview,omitempty"`
	ChatName string `json:"chat_name"`
	ChatSlug string `json:"chat_slug"`
}

func FromMessage(m *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		ChatRefID: m.ChatRefID,
		MsgID:     m.MsgID,
		Media:     []string(m.Media),
		Tags:      []string(m.Tags),
	}
	if resp.Media == nil {
		resp.Media = []string{}
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if m.Timestamp != nil {
		resp.Timestamp = timeutil.ToUTCISO(*m.Timestamp)
	}
	if m.Link != nil {
		resp.Link = *m.Link
	}
	if m.Text != nil {
		resp.Text = *m.Text
	}
	if m.Screenshot != nil {
		resp.Screenshot = *m.Screenshot
	}
	if m.Notes != nil {
		resp.Notes = *m.Notes
	}
	return resp
}

func FromMessageWithChat(row *domain.MessageWithChat) MessageListItem {
	return MessageListItem{
		MessageResponse: FromMessage(&row.Message),
		Preview:         row.ShortText(previewLength),
		ChatName:        row.ChatName,
		ChatSlug:        row.ChatSlug,
	}
}

func FromMessageRows(rows []domain.MessageWithChat) []MessageListItem {
	items := make([]MessageListItem, 0, len(rows))
	for i := range rows {
		items = append(items, FromMessageWithChat(&rows[i]))
	}
	return items
}
