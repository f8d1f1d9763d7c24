// File: internal/domain/filters.go
package domain

import "strings"

// FilterAction is the kind of message query a request asks for. It is a
// closed set; resolution code switches over it exhaustively.
type FilterAction string

const (
	ActionNone   FilterAction = ""
	ActionSearch FilterAction = "search"
	ActionFilter FilterAction = "filter"
	ActionTag    FilterAction = "tag"
)

// DateMode governs how a date filter bounds the timestamp range.
type DateMode string

const (
	DateModeNone    DateMode = ""
	DateModeOn      DateMode = "on"
	DateModeBefore  DateMode = "before"
	DateModeAfter   DateMode = "after"
	DateModeBetween DateMode = "between"
)

// ValidDateMode reports whether mode is one of the known date modes.
func ValidDateMode(mode DateMode) bool {
	switch mode {
	case DateModeOn, DateModeBefore, DateModeAfter, DateModeBetween:
		return true
	}
	return false
}

// MessageFilters is an ephemeral query descriptor for searching and
// filtering messages. It is owned by the request that builds it and is
// discarded after the query completes.
type MessageFilters struct {
	Action    FilterAction `json:"action,omitempty"`
	Query     string       `json:"query,omitempty"`
	Tag       string       `json:"tag,omitempty"`
	DateMode  DateMode     `json:"date_mode,omitempty"`
	StartDate string       `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string       `json:"end_date,omitempty"`   // YYYY-MM-DD
	ChatSlug  string       `json:"chat_slug,omitempty"`
}

// Normalize trims all fields in place, mapping blank strings to absent.
func (f *MessageFilters) Normalize() {
	f.Query = strings.TrimSpace(f.Query)
	f.Tag = strings.TrimSpace(f.Tag)
	f.DateMode = DateMode(strings.TrimSpace(string(f.DateMode)))
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.EndDate = strings.TrimSpace(f.EndDate)
	f.ChatSlug = strings.TrimSpace(f.ChatSlug)
}

// ResolveAction infers the action when the request did not name one, and
// clears fields that do not belong to the resolved action.
func (f *MessageFilters) ResolveAction() {
	switch f.Action {
	case ActionSearch, ActionFilter, ActionTag:
		return
	}

	switch {
	case f.Tag != "":
		f.Action = ActionTag
		f.Query = ""
		f.DateMode = DateModeNone
		f.StartDate = ""
		f.EndDate = ""
	case f.Query != "":
		// A text query overrides date filtering.
		f.Action = ActionSearch
		f.DateMode = DateModeNone
		f.StartDate = ""
		f.EndDate = ""
	case ValidDateMode(f.DateMode) && (f.StartDate != "" || f.EndDate != ""):
		f.Action = ActionFilter
		f.Query = ""
	default:
		f.Action = ActionNone
	}
}

// HasActive reports whether any filter field is set.
func (f *MessageFilters) HasActive() bool {
	return f.Query != "" || f.Tag != "" || f.StartDate != "" || f.EndDate != ""
}

// IsEmpty reports whether all filter fields are empty.
func (f *MessageFilters) IsEmpty() bool {
	return !f.HasActive()
}

// IsGlobal reports whether the filter spans all chats.
func (f *MessageFilters) IsGlobal() bool {
	return f.ChatSlug == ""
}
