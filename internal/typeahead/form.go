package typeahead

import "sync"

var _ Page = (*Form)(nil)

// Form is an in-memory Page.
type Form struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewForm() *Form {
	return &Form{values: make(map[string]string)}
}

func (f *Form) SetValue(fieldID, value string) {
	f.mu.Lock()
	f.values[fieldID] = value
	f.mu.Unlock()
}

// Value returns the field's value, or "" when it was never set.
func (f *Form) Value(fieldID string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[fieldID]
}
