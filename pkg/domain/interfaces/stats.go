package interfaces

//go:generate moq -out mocks/stats_mock.go -pkg mocks . StatsClient

import (
	"context"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
)

// StatsClient reads edit statistics from the backend API
type StatsClient interface {
	TopProjects(ctx context.Context, filter model.Filter) (*model.ProjectStats, error)
	TopUsers(ctx context.Context, filter model.Filter) (*model.UserStats, error)
	// TimeStats fetches the time series. An empty view lets the backend pick its default.
	TimeStats(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error)
}
