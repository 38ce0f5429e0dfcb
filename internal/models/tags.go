package models

import (
	"encoding/json"
	"strings"
	"unicode"
)

// tagDelimiter matches ASCII commas, fullwidth commas and whitespace
func tagDelimiter(r rune) bool {
	return r == ',' || r == '，' || unicode.IsSpace(r)
}

// SplitTags splits a delimiter-separated tag string into trimmed,
// non-empty tags
func SplitTags(s string) []string {
	fields := strings.FieldsFunc(s, tagDelimiter)
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NormalizeTagList trims every tag and drops empty ones
func NormalizeTagList(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeTags accepts the raw JSON tags value from a request, which may
// be an array of strings or a single delimited string, and returns the
// normalized tag list. Anything else normalizes to an empty list.
func NormalizeTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return NormalizeTagList(list)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return SplitTags(s)
	}
	return []string{}
}
