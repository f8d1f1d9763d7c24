// File: internal/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/arcanum-app/arcanum/internal/services"
	"github.com/arcanum-app/arcanum/internal/timeutil"
)

type DashboardHandler struct {
	ChatService *services.ChatService
	DisplayTZ   string
}

func NewDashboardHandler(cs *services.ChatService, displayTZ string) *DashboardHandler {
	return &DashboardHandler{ChatService: cs, DisplayTZ: displayTZ}
}

// Stats returns archive-wide totals for the dashboard.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ChatService.GetGlobalStats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := map[string]interface{}{
		"total_chats":      stats.TotalChats,
		"total_messages":   stats.TotalMessages,
		"media_messages":   stats.MediaMessages,
		"most_active_chat": nil,
		"last_message":     nil,
	}
	if stats.MostActiveChatName != "" {
		resp["most_active_chat"] = map[string]interface{}{
			"name":          stats.MostActiveChatName,
			"slug":          stats.MostActiveChatSlug,
			"message_count": stats.MostActiveChatCount,
		}
	}
	if stats.LastMessageTimestamp != nil {
		loc := timeutil.Location(h.DisplayTZ)
		resp["last_message"] = map[string]interface{}{
			"id":        stats.LastMessageID,
			"chat_slug": stats.LastMessageChatSlug,
			"timestamp": timeutil.FormatDateTime(*stats.LastMessageTimestamp, loc),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health reports liveness. It is unauthenticated.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
