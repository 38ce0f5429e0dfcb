package repository

import "strings"

// Keys derives object-store keys from the configured namespace prefix.
// Layout: one canonical document at <prefix>/<slug>/data and the shared
// index document at <prefix>/index.
type Keys struct {
	Prefix string
}

// Record returns the canonical document key for a slug
func (k Keys) Record(slug string) string {
	return k.Prefix + "/" + slug + "/data"
}

// Index returns the well-known index document key
func (k Keys) Index() string {
	return k.Prefix + "/index"
}

// SlugFromRecordKey extracts the slug from a canonical record key. It
// tolerates a ".json" suffix left behind by older upload tooling. Returns
// "" when the key does not follow the record layout.
func (k Keys) SlugFromRecordKey(key string) string {
	rest, ok := strings.CutPrefix(key, k.Prefix+"/")
	if !ok {
		return ""
	}
	rest = strings.TrimSuffix(rest, ".json")
	slug, ok := strings.CutSuffix(rest, "/data")
	if !ok || slug == "" || strings.Contains(slug, "/") {
		return ""
	}
	return slug
}
