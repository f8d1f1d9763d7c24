// File: internal/handlers/chat_handler.go
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

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

// ListChats returns all chats with message aggregates, sorted per request.
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	sortBy, order := sortParams(r)

	rows, err := h.ChatService.ListChats(r.Context(), sortBy, order)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]dtos.ChatListItem, 0, len(rows))
	for i := range rows {
		items = append(items, dtos.FromChatWithStats(&rows[i]))
	}
	writeJSON(w, http.StatusOK, items)
}

// GetChat returns one chat by slug, with notes rendered to HTML.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
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

	resp := dtos.FromChat(chat)
	resp.NotesHTML = renderMarkdown(resp.Notes)
	writeJSON(w, http.StatusOK, resp)
}

// CreateChat inserts a new chat from the submitted form payload.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var in domain.ChatInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	chat, err := h.ChatService.CreateChat(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.FromChat(chat))
}

// UpdateChat rewrites an existing chat identified by slug.
func (h *ChatHandler) UpdateChat(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	existing, err := h.ChatService.GetChatBySlug(r.Context(), slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if existing == nil {
		writeError(w, "Chat not found.", http.StatusNotFound)
		return
	}

	var in domain.ChatInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	updated, err := h.ChatService.UpdateChat(r.Context(), existing.ID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.FromChat(updated))
}

// DeleteChat removes a chat and all of its messages.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	existing, err := h.ChatService.GetChatBySlug(r.Context(), slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if existing == nil {
		writeError(w, "Chat not found.", http.StatusNotFound)
		return
	}

	if err := h.ChatService.DeleteChat(r.Context(), existing.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetChatByID is a convenience lookup used by admin tooling.
func (h *ChatHandler) GetChatByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "Invalid chat ID.", http.StatusBadRequest)
		return
	}

	chat, err := h.ChatService.GetChatByID(r.Context(), uint(id))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if chat == nil {
		writeError(w, "Chat not found.", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, dtos.FromChat(chat))
}
