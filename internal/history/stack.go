package history

import "sync"

// Entry is one history record: the location plus the route it was pushed with.
// State is absent for entries that did not originate from a Route (top tab paths, the initial location).
type Entry struct {
	URL      string
	State    interface{}
	HasState bool
}

// Stack is the underlying push/replace/traverse primitive the adapter drives.
type Stack interface {
	Push(e Entry)
	Replace(e Entry)
	Back() (Entry, bool)
	Forward() (Entry, bool)
	Current() (Entry, bool)
}

// MemoryStack is a bounded in-process history, the console's stand-in for a browser history.
type MemoryStack struct {
	mu      sync.Mutex
	entries []Entry
	index   int
	limit   int
}

// NewMemoryStack creates a stack seeded with the initial location. limit <= 0 means unbounded.
func NewMemoryStack(initialURL string, limit int) *MemoryStack {
	return &MemoryStack{
		entries: []Entry{{URL: initialURL}},
		limit:   limit,
	}
}

// Push drops any forward entries, appends e and makes it current.
func (s *MemoryStack) Push(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries[:s.index+1], e)
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
	s.index = len(s.entries) - 1
}

func (s *MemoryStack) Replace(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.index] = e
}

func (s *MemoryStack) Back() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == 0 {
		return Entry{}, false
	}
	s.index--
	return s.entries[s.index], true
}

func (s *MemoryStack) Forward() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.entries)-1 {
		return Entry{}, false
	}
	s.index++
	return s.entries[s.index], true
}

func (s *MemoryStack) Current() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.index], true
}

// Len returns the number of retained entries.
func (s *MemoryStack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
