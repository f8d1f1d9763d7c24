// File: internal/handlers/message_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/dtos"
	"github.com/arcanum-app/arcanum/internal/services"
)

type MessageHandler struct {
	MessageService *services.MessageService
	ChatService    *services.ChatService
}

func NewMessageHandler(ms *services.MessageService, cs *services.ChatService) *MessageHandler {
	return &MessageHandler{MessageService: ms, ChatService: cs}
}

// messageDetail is the single-message payload including navigation links.
type messageDetail struct {
	dtos.MessageResponse
	ChatName   string `json:"chat_name"`
	ChatSlug   string `json:"chat_slug"`
	PreviousID *uint  `json:"previous_id"`
	NextID     *uint  `json:"next_id"`
}

// ListMessages returns all messages of one chat, sorted per request.
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	chat, err := h.ChatService.GetChatBySlug(r.Context(), slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if chat == nil {
		writeError(w, "Chat not found.", http.StatusNotFound)
		return
	}

	sortBy, order := sortParams(r)
	rows, err := h.MessageService.ListByChatSlug(r.Context(), slug, sortBy, order)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	count, err := h.MessageService.CountByChat(r.Context(), chat.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"chat":          dtos.FromChat(chat),
		"message_count": count,
		"messages":      dtos.FromMessageRows(rows),
	})
}

// GetMessage returns a single message with rendered notes and the IDs of
// its chronological neighbours within the same chat.
func (h *MessageHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}

	msg, err := h.MessageService.GetMessageByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if msg == nil {
		writeError(w, "Message not found.", http.StatusNotFound)
		return
	}

	chat, err := h.ChatService.GetChatByID(r.Context(), msg.ChatRefID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	detail := messageDetail{MessageResponse: dtos.FromMessage(msg)}
	detail.NotesHTML = renderMarkdown(detail.Notes)
	if chat != nil {
		detail.ChatName = chat.DisplayName()
		detail.ChatSlug = chat.Slug
	}

	if prev, err := h.MessageService.GetPreviousMessage(r.Context(), msg); err == nil && prev != nil {
		detail.PreviousID = &prev.ID
	}
	if next, err := h.MessageService.GetNextMessage(r.Context(), msg); err == nil && next != nil {
		detail.NextID = &next.ID
	}

	writeJSON(w, http.StatusOK, detail)
}

// CreateMessage inserts a new message under the chat named in the path.
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var in domain.MessageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	msg, err := h.MessageService.CreateMessage(r.Context(), slug, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.FromMessage(msg))
}

// UpdateMessage rewrites an existing message in place.
func (h *MessageHandler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}

	var in domain.MessageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	msg, err := h.MessageService.UpdateMessage(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.FromMessage(msg))
}

// DeleteMessage removes a single message.
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}

	existing, err := h.MessageService.GetMessageByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if existing == nil {
		writeError(w, "Message not found.", http.StatusNotFound)
		return
	}

	if err := h.MessageService.DeleteMessage(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func messageID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "Invalid message ID.", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}
