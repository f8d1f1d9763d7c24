// File: internal/handlers/helpers.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/arcanum-app/arcanum/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[Handlers] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps domain error kinds to HTTP statuses. Anything not
// mapped is a generic database failure.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		dupSlug       *domain.DuplicateSlugError
		dupChatID     *domain.DuplicateChatIDError
		dupMessage    *domain.DuplicateMessageError
		chatNotFound  *domain.ChatNotFoundError
		msgNotFound   *domain.MessageNotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		writeError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &dupSlug):
		writeError(w, dupSlug.Error(), http.StatusConflict)
	case errors.As(err, &dupChatID):
		writeError(w, dupChatID.Error(), http.StatusConflict)
	case errors.As(err, &dupMessage):
		writeError(w, dupMessage.Error(), http.StatusConflict)
	case errors.As(err, &chatNotFound):
		writeError(w, chatNotFound.Error(), http.StatusNotFound)
	case errors.As(err, &msgNotFound):
		writeError(w, msgNotFound.Error(), http.StatusNotFound)
	default:
		log.Printf("[Handlers] Unexpected error: %v", err)
		writeError(w, "A database error occurred.", http.StatusInternalServerError)
	}
}

// renderMarkdown converts a notes field to HTML for detail views. Rendering
// failures degrade to an empty string rather than failing the request.
func renderMarkdown(source string) string {
	if source == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		log.Printf("[Handlers] Markdown rendering failed: %v", err)
		return ""
	}
	return buf.String()
}

// sortParams extracts the requested sort field and direction. Validation
// against the allow-list happens in the query layer.
func sortParams(r *http.Request) (string, string) {
	q := r.URL.Query()
	return q.Get("sort_by"), q.Get("order")
}
