package valueobjects

import (
	"encoding/json"
	"strings"
)

// RelatedTodoIDs is a value object holding the todo IDs linked to an aim.
// It is always deduplicated, ordered by first occurrence, and free of
// empty strings.
type RelatedTodoIDs struct {
	ids []string
}

// NormalizeRelatedTodoIDs converts the raw related-todos field into a clean
// ID list. The field has historically been written in several shapes: a
// string list, a JSON-encoded string list, or a single bare ID. The store
// does not enforce a schema, so every read path must go through here before
// the value is used.
//
// It never fails; unusable input yields an empty list.
func NormalizeRelatedTodoIDs(raw interface{}) RelatedTodoIDs {
	switch v := raw.(type) {
	case nil:
		return RelatedTodoIDs{}
	case RelatedTodoIDs:
		return newRelatedTodoIDs(v.ids)
	case []string:
		return newRelatedTodoIDs(v)
	case []interface{}:
		return newRelatedTodoIDs(stringsOf(v))
	case string:
		return normalizeString(v)
	default:
		return RelatedTodoIDs{}
	}
}

// normalizeString handles the two string-typed legacy shapes: a JSON-encoded
// list, or a single bare ID.
func normalizeString(s string) RelatedTodoIDs {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return RelatedTodoIDs{}
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		if list, ok := parsed.([]interface{}); ok {
			return newRelatedTodoIDs(stringsOf(list))
		}
	}

	// Not valid JSON (or valid JSON but not a list): treat as one bare ID.
	return newRelatedTodoIDs([]string{trimmed})
}

// newRelatedTodoIDs filters to non-empty strings and deduplicates while
// preserving first-occurrence order.
func newRelatedTodoIDs(ids []string) RelatedTodoIDs {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return RelatedTodoIDs{}
	}
	return RelatedTodoIDs{ids: out}
}

// stringsOf keeps only the string elements of a decoded JSON list.
func stringsOf(list []interface{}) []string {
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Values returns a copy of the ID list.
func (r RelatedTodoIDs) Values() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// IsEmpty reports whether no todos are linked.
func (r RelatedTodoIDs) IsEmpty() bool {
	return len(r.ids) == 0
}

// Len returns the number of linked todo IDs.
func (r RelatedTodoIDs) Len() int {
	return len(r.ids)
}

// Contains reports whether the given todo ID is linked.
func (r RelatedTodoIDs) Contains(todoID string) bool {
	for _, id := range r.ids {
		if id == todoID {
			return true
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler so the canonical list shape is the
// only shape this code ever writes.
func (r RelatedTodoIDs) MarshalJSON() ([]byte, error) {
	if r.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.ids)
}

// UnmarshalJSON implements json.Unmarshaler, normalizing whatever shape the
// payload carries.
func (r *RelatedTodoIDs) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NormalizeRelatedTodoIDs(raw)
	return nil
}
