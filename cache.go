package deckengine

import (
	"bytes"
	"context"
	"sync"

	"github.com/a-h/templ"
)

// ExportCache holds the rendered export view (every slide, in order) per deck
// revision and UI language. Rendering the full deck on every export request
// is the most expensive thing the server does; the result only changes when
// the deck is replaced.
type ExportCache struct {
	mu       sync.RWMutex
	revision int
	entries  map[string][]byte
}

// NewExportCache creates an empty ExportCache.
func NewExportCache() *ExportCache {
	return &ExportCache{entries: make(map[string][]byte)}
}

// Invalidate clears the cache so the next read renders again.
func (c *ExportCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string][]byte)
	c.mu.Unlock()
}

// Get returns the cached rendering for revision and lang, rendering cmp on a
// miss. Entries for older revisions are dropped on the first miss of a newer
// one. It tries a read lock first; only takes a write lock if a render is
// needed.
func (c *ExportCache) Get(ctx context.Context, revision int, lang string, cmp templ.Component) ([]byte, error) {
	c.mu.RLock()
	if c.revision == revision {
		if b, ok := c.entries[lang]; ok {
			c.mu.RUnlock()
			return b, nil
		}
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.revision != revision {
		c.revision = revision
		c.entries = make(map[string][]byte)
	}
	if b, ok := c.entries[lang]; ok {
		return b, nil
	}
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return nil, err
	}
	c.entries[lang] = buf.Bytes()
	return c.entries[lang], nil
}

// Len reports how many renderings are cached.
func (c *ExportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
