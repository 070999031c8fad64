package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/interfaces"
	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu         sync.RWMutex
	dashboards map[types.SessionID]*model.Dashboard
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		dashboards: make(map[types.SessionID]*model.Dashboard),
	}
}

// PutDashboard saves a dashboard session
func (m *Memory) PutDashboard(ctx context.Context, dashboard *model.Dashboard) error {
	if dashboard == nil {
		return goerr.New("dashboard is nil")
	}
	if err := dashboard.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid dashboard")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.dashboards[dashboard.ID] = dashboard
	return nil
}

// GetDashboard retrieves a dashboard session by ID.
// Dashboards hold their own locks, so the stored pointer is returned as is.
func (m *Memory) GetDashboard(ctx context.Context, id types.SessionID) (*model.Dashboard, error) {
	if id == "" {
		return nil, goerr.New("session ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	dashboard, exists := m.dashboards[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "failed to get dashboard", goerr.V("id", id))
	}
	return dashboard, nil
}

// DeleteDashboard removes a dashboard session
func (m *Memory) DeleteDashboard(ctx context.Context, id types.SessionID) error {
	if id == "" {
		return goerr.New("session ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.dashboards, id)
	return nil
}

// DeleteExpired removes dashboards idle longer than ttl
func (m *Memory) DeleteExpired(ctx context.Context, now time.Time, ttl time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, d := range m.dashboards {
		if d.IsExpired(now, ttl) {
			delete(m.dashboards, id)
			removed++
		}
	}
	return removed, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}
