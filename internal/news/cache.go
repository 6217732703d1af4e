package news

import "sync"

// Entry is the cached headline for one instrument.
type Entry struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date,omitempty"`
}

// Placeholder is returned for instruments the updater has not resolved yet.
// Absence of news is always represented by this entry, never by a missing
// field.
var Placeholder = Entry{Title: "正在获取最新资讯...", Link: "#"}

// Cache maps instrument IDs to their latest headline. The background updater
// is the only writer; every write replaces the whole entry under the lock, so
// concurrent readers never observe a partial entry.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Set upserts the entry for one instrument.
func (c *Cache) Set(id string, e Entry) {
	c.mu.Lock()
	c.entries[id] = e
	c.mu.Unlock()
}

// Get returns the entry for id, if any.
func (c *Cache) Get(id string) (Entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	return e, ok
}

// Lookup returns the entry for id, or Placeholder when none is cached.
func (c *Cache) Lookup(id string) Entry {
	if e, ok := c.Get(id); ok {
		return e
	}
	return Placeholder
}

// Len returns the number of cached headlines.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
