// File: internal/domain/tags.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TagList is an order-preserving list of non-empty tag strings. It is stored
// as a JSON array and parsed leniently: structured JSON first, then a
// comma-separated fallback.
type TagList []string

// ParseTags normalizes raw tag input. JSON arrays are preferred; anything
// that fails to parse as JSON is split on commas. Entries are trimmed and
// empty ones discarded.
func ParseTags(raw string) TagList {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TagList{}
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return cleanTags(parsed)
	}
	return cleanTags(strings.Split(raw, ","))
}

func cleanTags(items []string) TagList {
	tags := make(TagList, 0, len(items))
	for _, tag := range items {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// Value serializes the tag list as a JSON array string.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan hydrates the tag list from a stored column value.
func (t *TagList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TagList{}
	case string:
		*t = ParseTags(v)
	case []byte:
		*t = ParseTags(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TagList", src)
	}
	return nil
}

// MediaList is an ordered, deduplicated list of stored file references.
// Stored as a JSON array.
type MediaList []string

// ParseMedia normalizes raw media input the same way tags are parsed,
// additionally dropping duplicate references while preserving order.
func ParseMedia(raw string) MediaList {
	return dedupeMedia([]string(ParseTags(raw)))
}

func dedupeMedia(items []string) MediaList {
	seen := make(map[string]struct{}, len(items))
	out := make(MediaList, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Value serializes the media list as a JSON array string.
func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		m = MediaList{}
	}
	b, err := json.Marshal([]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan hydrates the media list from a stored column value.
func (m *MediaList) Scan(src interface{}) error {
	var tags TagList
	if err := tags.Scan(src); err != nil {
		return fmt.Errorf("cannot scan %T into MediaList", src)
	}
	*m = dedupeMedia([]string(tags))
	return nil
}
