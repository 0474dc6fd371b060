// Package recorder keeps a fixed-capacity journal of recent mock
// interactions for inspection through the admin API. Nothing is replayed;
// the journal only aids debugging scenario configurations.
package recorder

import (
	"fmt"
	"sync"
	"time"
)

// Interaction stores information about one handled mock request.
type Interaction struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Scenario   string    `json:"scenario,omitempty"`
	Session    string    `json:"session,omitempty"`
	ResponseID string    `json:"response_id,omitempty"`
	Status     int       `json:"status"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}

// Recorder is a circular buffer of interactions
type Recorder struct {
	mu         sync.RWMutex
	entries    []*Interaction
	maxEntries int
	head       int // index of oldest entry
	count      int // number of entries stored
	nextID     uint64
}

// New creates a new Recorder with the given max capacity
func New(maxEntries int) *Recorder {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Recorder{
		entries:    make([]*Interaction, maxEntries),
		maxEntries: maxEntries,
	}
}

// Record adds a new entry to the recorder
func (r *Recorder) Record(entry *Interaction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = fmt.Sprintf("req-%06d", r.nextID)

	if r.count < r.maxEntries {
		// Buffer not full yet
		r.entries[r.count] = entry
		r.count++
	} else {
		// Overwrite oldest entry
		r.entries[r.head] = entry
		r.head = (r.head + 1) % r.maxEntries
	}
}

// List returns entries in reverse-chronological order (newest first)
// limit=0 means return all
func (r *Recorder) List(limit, offset int) []*Interaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	// Build ordered slice (newest first)
	ordered := make([]*Interaction, r.count)
	for i := 0; i < r.count; i++ {
		// Newest entries are at the end; oldest is at head
		idx := (r.head + r.count - 1 - i) % r.maxEntries
		ordered[i] = r.entries[idx]
	}

	if offset >= len(ordered) {
		return nil
	}
	ordered = ordered[offset:]

	if limit > 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	return ordered
}

// Count returns the number of stored entries
func (r *Recorder) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Clear removes all entries
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make([]*Interaction, r.maxEntries)
	r.head = 0
	r.count = 0
}
