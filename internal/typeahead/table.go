package typeahead

import "sync"

// LookupTable maps suggestion labels to ids. Entries are only ever added; a
// later Put for the same label wins.
type LookupTable struct {
	mu      sync.RWMutex
	entries map[string]int
}

func NewLookupTable() *LookupTable {
	return &LookupTable{entries: make(map[string]int)}
}

func (t *LookupTable) Put(label string, id int) {
	t.mu.Lock()
	t.entries[label] = id
	t.mu.Unlock()
}

func (t *LookupTable) Get(label string) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.entries[label]
	return id, ok
}

func (t *LookupTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
