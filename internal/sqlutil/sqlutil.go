// File: internal/sqlutil/sqlutil.go

// Package sqlutil provides reusable helpers for composing SQL clauses such
// as ORDER BY, with allow-list validation so that user input never reaches
// the generated SQL.
package sqlutil

import (
	"fmt"
	"log"
	"strings"
)

// OrderConfig configures sorting for one view.
type OrderConfig struct {
	AllowedFields  []string
	DefaultField   string
	DefaultOrder   string
	Prefix         string   // optional table alias/prefix, e.g. "messages."
	NullableFields []string // fields where NULL rows must sort last
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// NormalizeSortParams validates requested sort parameters against the
// allow-list. Invalid or missing input falls back to the configured
// defaults silently (logged, not errored).
func NormalizeSortParams(sortBy, order string, cfg OrderConfig) (string, string) {
	if sortBy == "" {
		sortBy = cfg.DefaultField
	} else if !contains(cfg.AllowedFields, sortBy) {
		log.Printf("[SORT|PARAMS] Invalid sort field %q; defaulted to %q.", sortBy, cfg.DefaultField)
		sortBy = cfg.DefaultField
	}

	defaultOrder := cfg.DefaultOrder
	if defaultOrder == "" {
		defaultOrder = "desc"
	}
	order = strings.ToLower(order)
	if order != "asc" && order != "desc" {
		if order != "" {
			log.Printf("[SORT|PARAMS] Invalid sort order %q; defaulted to %q.", order, defaultOrder)
		}
		order = defaultOrder
	}

	return sortBy, order
}

// BuildOrderClause constructs a validated ORDER BY fragment (without the
// ORDER BY keyword). Only allow-listed identifiers are ever emitted. For
// nullable sort columns, NULL rows sort last regardless of direction.
func BuildOrderClause(sortBy, order string, cfg OrderConfig) string {
	field, direction := NormalizeSortParams(sortBy, order, cfg)
	fieldRef := cfg.Prefix + field
	if contains(cfg.NullableFields, field) {
		return fmt.Sprintf("%s %s NULLS LAST", fieldRef, direction)
	}
	return fmt.Sprintf("%s %s", fieldRef, direction)
}
