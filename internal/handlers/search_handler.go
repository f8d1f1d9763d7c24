// File: internal/handlers/search_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/dtos"
	"github.com/arcanum-app/arcanum/internal/services"
)

type SearchHandler struct {
	FilterService *services.FilterService
	ChatService   *services.ChatService
}

func NewSearchHandler(fs *services.FilterService, cs *services.ChatService) *SearchHandler {
	return &SearchHandler{FilterService: fs, ChatService: cs}
}

// searchResponse is the filter result with messages converted to API rows.
type searchResponse struct {
	Status   services.FilterStatus  `json:"status"`
	Info     string                 `json:"info,omitempty"`
	Filters  domain.MessageFilters  `json:"filters"`
	Messages []dtos.MessageListItem `json:"messages"`
}

// SearchGlobal searches and filters messages across every chat.
func (h *SearchHandler) SearchGlobal(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	h.respond(w, r, filters)
}

// SearchChat searches and filters messages within one chat.
func (h *SearchHandler) SearchChat(w http.ResponseWriter, r *http.Request) {
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

	filters := filtersFromQuery(r)
	filters.ChatSlug = slug
	h.respond(w, r, filters)
}

func (h *SearchHandler) respond(w http.ResponseWriter, r *http.Request, filters domain.MessageFilters) {
	sortBy, order := sortParams(r)

	result, err := h.FilterService.Resolve(r.Context(), filters, sortBy, order)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Status:   result.Status,
		Info:     result.Info,
		Filters:  result.Filters,
		Messages: dtos.FromMessageRows(result.Messages),
	})
}

// filtersFromQuery reads the filter descriptor off the query string. All
// values pass through untrimmed; normalization happens during resolution.
func filtersFromQuery(r *http.Request) domain.MessageFilters {
	q := r.URL.Query()
	return domain.MessageFilters{
		Action:    domain.FilterAction(q.Get("action")),
		Query:     q.Get("query"),
		Tag:       q.Get("tag"),
		DateMode:  domain.DateMode(q.Get("date_mode")),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}
