package interfaces

import (
	"context"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
)

// Repository stores dashboard sessions
type Repository interface {
	PutDashboard(ctx context.Context, dashboard *model.Dashboard) error
	GetDashboard(ctx context.Context, id types.SessionID) (*model.Dashboard, error)
	DeleteDashboard(ctx context.Context, id types.SessionID) error

	// DeleteExpired removes dashboards idle longer than ttl and returns how many were removed
	DeleteExpired(ctx context.Context, now time.Time, ttl time.Duration) (int, error)

	// Close closes the repository
	Close() error
}
