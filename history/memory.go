package history

import (
	"context"
	"slices"
	"sync"
)

// Memory is a fixed-size ring of the most recent runs.
type Memory struct {
	mu   sync.Mutex
	runs []Run
	next int
	full bool
}

// NewMemory creates a ring holding capacity runs (minimum 1).
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{runs: make([]Run, capacity)}
}

func (m *Memory) Record(_ context.Context, run Run) error {
	run.Options = slices.Clone(run.Options)

	m.mu.Lock()
	m.runs[m.next] = run
	m.next = (m.next + 1) % len(m.runs)
	if m.next == 0 {
		m.full = true
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Recent(_ context.Context, limit int) ([]Run, error) {
	limit = clampLimit(limit)

	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.next
	if m.full {
		n = len(m.runs)
	}
	limit = min(limit, n)

	out := make([]Run, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + len(m.runs)) % len(m.runs)
		r := m.runs[idx]
		r.Options = slices.Clone(r.Options)
		out = append(out, r)
	}
	return out, nil
}

func (m *Memory) Backend() string { return "memory" }

func (m *Memory) Close() error { return nil }
