package news

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache_LookupFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	c := NewCache()
	got := c.Lookup("NVDA")
	require.Equal(t, Placeholder, got)
	require.NotEmpty(t, got.Title)
	require.Equal(t, "#", got.Link)
}

func TestCache_SetOverwritesWholeEntry(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.Set("NVDA", Entry{Title: "old", Link: "https://a", Date: "Mon, 01 Jan 2026 00:00:00 GMT"})
	c.Set("NVDA", Entry{Title: "new", Link: "https://b"})

	got := c.Lookup("NVDA")
	require.Equal(t, "new", got.Title)
	require.Equal(t, "https://b", got.Link)
	require.Empty(t, got.Date, "stale fields must not survive an upsert")
	require.Equal(t, 1, c.Len())
}

func TestCache_ConcurrentReadersAndWriter(t *testing.T) {
	t.Parallel()

	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = c.Lookup("0700")
				_ = c.Len()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 200; j++ {
			c.Set("0700", Entry{Title: fmt.Sprintf("t%d", j), Link: "https://x"})
		}
	}()
	wg.Wait()

	got, ok := c.Get("0700")
	require.True(t, ok)
	require.Equal(t, "t199", got.Title)
}
