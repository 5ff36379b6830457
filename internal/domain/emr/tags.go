// Where: internal/domain/emr/tags.go
// What: Tag list parsing and an insertion-ordered tag map.
// Why: Tag merges must keep existing keys in place and append new ones in arrival order.
package emr

import "fmt"

// Tag is an EMR resource tag. Value keeps the decoded JSON value as given.
type Tag struct {
	Key   string `json:"Key"`
	Value any    `json:"Value"`
}

// MalformedTagError reports a tag entry that cannot be read as {Key, Value}.
type MalformedTagError struct {
	Index  int
	Reason string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("malformed tag at index %d: %s", e.Index, e.Reason)
}

// ParseTags converts a decoded JSON tag list into tags.
// nil is an empty list; anything other than a list of {Key, Value} objects fails.
func ParseTags(raw any) ([]Tag, error) {
	if raw == nil {
		return nil, nil
	}
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []Tag:
		return append([]Tag(nil), v...), nil
	default:
		return nil, &MalformedTagError{Index: -1, Reason: fmt.Sprintf("tags must be an array, got %s", typeName(raw))}
	}

	out := make([]Tag, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedTagError{Index: i, Reason: fmt.Sprintf("expected an object, got %s", typeName(item))}
		}
		key, ok := entry[FieldTagKey]
		if !ok {
			return nil, &MalformedTagError{Index: i, Reason: "missing Key"}
		}
		keyStr, ok := key.(string)
		if !ok {
			return nil, &MalformedTagError{Index: i, Reason: fmt.Sprintf("Key must be a string, got %s", typeName(key))}
		}
		value, ok := entry[FieldTagValue]
		if !ok {
			return nil, &MalformedTagError{Index: i, Reason: "missing Value"}
		}
		out = append(out, Tag{Key: keyStr, Value: value})
	}
	return out, nil
}

// TagSet is a key -> value map that remembers first-insertion order.
// Re-setting a key updates its value in place.
type TagSet struct {
	keys   []string
	values map[string]any
}

// NewTagSet builds a set from tags; later duplicates override earlier values.
func NewTagSet(tags []Tag) *TagSet {
	s := &TagSet{values: make(map[string]any, len(tags))}
	for _, tag := range tags {
		s.Set(tag.Key, tag.Value)
	}
	return s
}

func (s *TagSet) Set(key string, value any) {
	if s.values == nil {
		s.values = map[string]any{}
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *TagSet) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

func (s *TagSet) Len() int {
	return len(s.keys)
}

// Overlay copies every entry of other into s; other wins on collisions.
func (s *TagSet) Overlay(other *TagSet) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		s.Set(key, other.values[key])
	}
}

// Tags returns the entries in insertion order.
func (s *TagSet) Tags() []Tag {
	out := make([]Tag, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, Tag{Key: key, Value: s.values[key]})
	}
	return out
}

// TagsToAny renders tags in the decoded-JSON shape stored in Documents.
func TagsToAny(tags []Tag) []any {
	out := make([]any, 0, len(tags))
	for _, tag := range tags {
		out = append(out, map[string]any{FieldTagKey: tag.Key, FieldTagValue: tag.Value})
	}
	return out
}
