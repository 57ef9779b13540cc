package pagestore

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Memory is a process-local Store.
type Memory struct {
	mu    sync.RWMutex
	pages map[string]Page
	now   func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{pages: make(map[string]Page), now: time.Now}
}

// Save stores a copy of content under pageID.
func (m *Memory) Save(ctx context.Context, pageID string, content []byte) error {
	if err := checkPageID("pagestore.Memory.Save", pageID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[pageID] = Page{ID: pageID, Content: slices.Clone(content), UpdatedAt: m.now()}
	return nil
}

// Load returns a copy of the stored page.
func (m *Memory) Load(ctx context.Context, pageID string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pages[pageID]
	if !ok {
		return nil, nil
	}
	p.Content = slices.Clone(p.Content)
	return &p, nil
}

// Len returns the number of stored pages.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}
