package search

import (
	"container/list"
	"sort"
	"strings"
	"sync"

	"github.com/hyperjump/rirekisho/internal/match"
)

// automatonCache keeps recently used Aho-Corasick automatons keyed by their
// keyword set, so repeated searches for the same keywords against a changing
// corpus skip the build cost. Eviction is least-recently-used with a fixed
// capacity; there is no hidden global state, the cache lives on the Engine.
type automatonCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used, holds *cacheEntry
	items    map[string]*list.Element
}

type cacheEntry struct {
	key       string
	automaton *match.Automaton
}

func newAutomatonCache(capacity int) *automatonCache {
	if capacity < 1 {
		capacity = 1
	}
	return &automatonCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// cacheKey canonicalizes a keyword set: the automaton does not depend on
// keyword order, so requests differing only in order share one entry.
// Keywords are already normalized by request validation.
func cacheKey(keywords []string) string {
	sorted := make([]string, len(keywords))
	copy(sorted, keywords)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// get returns the automaton for the keyword set, building and caching it on
// a miss. The returned automaton is read-only and safe to share across the
// worker shards of any number of concurrent calls.
func (c *automatonCache) get(keywords []string) (*match.Automaton, error) {
	key := cacheKey(keywords)

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		a := el.Value.(*cacheEntry).automaton
		c.mu.Unlock()
		return a, nil
	}
	c.mu.Unlock()

	// Build outside the lock; construction is the expensive part.
	a, err := match.NewAutomaton(keywords)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		// Lost a build race; keep the first one.
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).automaton, nil
	}
	c.items[key] = c.order.PushFront(&cacheEntry{key: key, automaton: a})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
	return a, nil
}

// len reports the number of cached automatons.
func (c *automatonCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
