package labels

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Catalog is an immutable set of UI label strings loaded once at startup.
type Catalog struct {
	entries map[string]string
}

// Load reads a flat JSON object of key/value label pairs.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file %s: %w", path, err)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse labels file %s: %w", path, err)
	}
	return &Catalog{entries: entries}, nil
}

// Empty returns a catalog with no entries; lookups fall back to the key.
func Empty() *Catalog {
	return &Catalog{entries: map[string]string{}}
}

// Get returns the label for key, or the key itself when unknown so missing
// translations stay visible instead of rendering blank.
func (c *Catalog) Get(key string) string {
	if v, ok := c.entries[key]; ok {
		return v
	}
	return key
}

// GetOr returns the label for key, or fallback when unknown.
func (c *Catalog) GetOr(key, fallback string) string {
	if v, ok := c.entries[key]; ok {
		return v
	}
	return fallback
}

// WithPrefix returns every entry whose key starts with prefix, under the
// full original keys.
func (c *Catalog) WithPrefix(prefix string) map[string]string {
	out := map[string]string{}
	for k, v := range c.entries {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out
}

// All returns a copy of every entry.
func (c *Catalog) All() map[string]string {
	out := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}
