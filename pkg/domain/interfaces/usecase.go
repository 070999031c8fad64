package interfaces

import (
	"context"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
)

// Dashboard defines the dashboard operations served over HTTP
type Dashboard interface {
	// Config returns the dashboard layout
	Config() *model.DashboardConfig

	// Open creates a session for filter and loads its panels
	Open(ctx context.Context, filter model.Filter) (*model.Dashboard, error)

	// Get returns a stored session
	Get(ctx context.Context, id types.SessionID) (*model.Dashboard, error)

	// SelectView switches the time-series panel to view, fetching it on first selection
	SelectView(ctx context.Context, id types.SessionID, view types.ViewType) (*model.Dashboard, error)

	// Views returns the views offered by the view selector
	Views(d *model.Dashboard) []types.ViewType

	// Panel returns a rendered panel
	Panel(ctx context.Context, id types.SessionID, chartID types.ChartID, view types.ViewType) (*model.Panel, error)

	// ChartHTML renders the interactive page of a panel
	ChartHTML(ctx context.Context, id types.SessionID, chartID types.ChartID, view types.ViewType) ([]byte, error)

	// ChartCSV returns the series of a panel as CSV and its download name
	ChartCSV(ctx context.Context, id types.SessionID, chartID types.ChartID, view types.ViewType) ([]byte, string, error)
}
