package pipeline

import "sync"

// Latest holds the most recent report in memory for readers such as the API.
// It is a hand-off point between the scheduler and readers, not storage.
type Latest struct {
	mu     sync.RWMutex
	report *Report
}

// NewLatest creates an empty holder.
func NewLatest() *Latest {
	return &Latest{}
}

// Store replaces the held report.
func (l *Latest) Store(r *Report) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.report = r
}

// Load returns the held report, nil if none has been stored.
func (l *Latest) Load() *Report {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.report
}
