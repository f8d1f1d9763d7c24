// File: internal/services/filter_service.go
package services

import (
	"context"

	"github.com/arcanum-app/arcanum/internal/domain"
	"github.com/arcanum-app/arcanum/internal/repository/message"
	"github.com/arcanum-app/arcanum/internal/timeutil"
)

// FilterStatus is the outcome of resolving a filter request. An empty
// result with StatusValid is a legitimate "no matches" outcome, distinct
// from a validation failure.
type FilterStatus string

const (
	StatusEmpty   FilterStatus = "empty"   // nothing requested
	StatusInvalid FilterStatus = "invalid" // requested but malformed
	StatusValid   FilterStatus = "valid"   // query executed
)

// FilterResult is what the caller renders: rows, an optional informational
// message, and the normalized filter state.
type FilterResult struct {
	Status   FilterStatus             `json:"status"`
	Messages []domain.MessageWithChat `json:"messages"`
	Info     string                   `json:"info,omitempty"`
	Filters  domain.MessageFilters    `json:"filters"`
}

// FilterService validates filter parameter combinations and dispatches to
// the appropriate message query. Validation failures never become errors;
// only database failures do.
type FilterService struct {
	messages message.MessageRepository
	logger   Logger
}

func NewFilterService(messages message.MessageRepository, logger Logger) *FilterService {
	return &FilterService{messages: messages, logger: logger}
}

// Resolve runs the search/filter/tag state machine over the given filters.
func (s *FilterService) Resolve(ctx context.Context, filters domain.MessageFilters, sortBy, order string) (*FilterResult, error) {
	filters.Normalize()
	filters.ResolveAction()

	if filters.Action == domain.ActionNone && filters.IsEmpty() {
		s.logger.Info("no filters or query provided")
		return &FilterResult{
			Status:   StatusEmpty,
			Messages: []domain.MessageWithChat{},
			Info:     "No filters or search query applied.",
			Filters:  filters,
		}, nil
	}

	if msg, ok := validateFilters(filters); !ok {
		s.logger.Warn("invalid filter parameters", "action", string(filters.Action), "reason", msg)
		return &FilterResult{
			Status:   StatusInvalid,
			Messages: []domain.MessageWithChat{},
			Info:     msg,
			Filters:  filters,
		}, nil
	}

	rows, err := s.messages.ListFiltered(ctx, filters, sortBy, order)
	if err != nil {
		s.logger.Error("filter query failed", "error", err.Error())
		return nil, err
	}

	return &FilterResult{
		Status:   StatusValid,
		Messages: rows,
		Filters:  filters,
	}, nil
}

// validateFilters checks action-specific requirements. The switch over the
// action set is exhaustive; an unknown action cannot reach the query layer.
func validateFilters(filters domain.MessageFilters) (string, bool) {
	switch filters.Action {
	case domain.ActionSearch:
		if filters.Query == "" {
			return "Please enter a search query or select a date filter.", false
		}
		return "", true

	case domain.ActionTag:
		if filters.Tag == "" {
			return "Please specify a tag.", false
		}
		return "", true

	case domain.ActionFilter:
		return validateDateFilter(filters)

	case domain.ActionNone:
		return "Please enter a search query, tag, or select a date filter.", false
	}
	return "Please enter a search query, tag, or select a date filter.", false
}

func validateDateFilter(filters domain.MessageFilters) (string, bool) {
	if !domain.ValidDateMode(filters.DateMode) {
		return "Invalid date filter mode.", false
	}

	switch filters.DateMode {
	case domain.DateModeOn, domain.DateModeBefore, domain.DateModeAfter:
		if filters.StartDate == "" {
			return "Please provide a valid date.", false
		}
		if _, err := timeutil.ParseDate(filters.StartDate); err != nil {
			return "Invalid start date format.", false
		}
		return "", true

	case domain.DateModeBetween:
		if filters.StartDate == "" && filters.EndDate == "" {
			return "Please provide both start and end dates.", false
		}
		if filters.StartDate == "" {
			return "Start date is required.", false
		}
		if filters.EndDate == "" {
			return "End date is required.", false
		}
		if _, err := timeutil.ParseDate(filters.StartDate); err != nil {
			return "Invalid date format provided.", false
		}
		if _, err := timeutil.ParseDate(filters.EndDate); err != nil {
			return "Invalid date format provided.", false
		}
		if filters.StartDate > filters.EndDate {
			return "Start date must be before or equal to end date.", false
		}
		return "", true
	}
	return "Invalid date filter mode.", false
}
