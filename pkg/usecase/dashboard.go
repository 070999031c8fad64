package usecase

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/interfaces"
	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/hashtags-tool/hashdash/pkg/service/chart"
	"github.com/hashtags-tool/hashdash/pkg/utils/apperr"
	"github.com/hashtags-tool/hashdash/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/singleflight"
)

// DashboardUseCase opens dashboard sessions and serves their panels
type DashboardUseCase struct {
	stats    interfaces.StatsClient
	renderer interfaces.ChartRenderer
	repo     interfaces.Repository
	config   *model.DashboardConfig

	sessionTTL time.Duration
	now        func() time.Time
	inflight   singleflight.Group
}

var _ interfaces.Dashboard = (*DashboardUseCase)(nil)

// DashboardOption configures DashboardUseCase
type DashboardOption func(*DashboardUseCase)

// WithSessionTTL sets how long an idle session is kept. Zero keeps sessions forever.
func WithSessionTTL(ttl time.Duration) DashboardOption {
	return func(uc *DashboardUseCase) {
		uc.sessionTTL = ttl
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) DashboardOption {
	return func(uc *DashboardUseCase) {
		uc.now = now
	}
}

// NewDashboardUseCase creates a new DashboardUseCase instance
func NewDashboardUseCase(stats interfaces.StatsClient, renderer interfaces.ChartRenderer, repo interfaces.Repository, config *model.DashboardConfig, opts ...DashboardOption) *DashboardUseCase {
	if config == nil {
		config = model.DefaultDashboardConfig()
	}
	uc := &DashboardUseCase{
		stats:    stats,
		renderer: renderer,
		repo:     repo,
		config:   config,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Config returns the dashboard layout
func (uc *DashboardUseCase) Config() *model.DashboardConfig {
	return uc.config
}

// Open creates a dashboard session for filter, loads its three panels and stores it.
// Panels whose fetch failed are kept as failed panels; only invalid input is an error.
func (uc *DashboardUseCase) Open(ctx context.Context, filter model.Filter) (*model.Dashboard, error) {
	dashboard, err := uc.Build(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.PutDashboard(ctx, dashboard); err != nil {
		return nil, goerr.Wrap(err, "failed to store dashboard", goerr.V("id", dashboard.ID))
	}
	return dashboard, nil
}

// Build creates and loads a dashboard without storing it
func (uc *DashboardUseCase) Build(ctx context.Context, filter model.Filter) (*model.Dashboard, error) {
	if filter.Query == "" {
		return nil, goerr.Wrap(model.ErrInvalidFilter, "hashtag is required")
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	id, err := types.NewSessionID()
	if err != nil {
		return nil, err
	}

	dashboard := model.NewDashboard(id, filter, uc.now())
	uc.load(ctx, dashboard)
	return dashboard, nil
}

type timeLoad struct {
	view  types.ViewType
	panel *model.Panel
}

// load fetches and renders the three panels concurrently. Each fetch feeds its
// own render, so a slow endpoint only delays its own panel.
func (uc *DashboardUseCase) load(ctx context.Context, d *model.Dashboard) {
	logger := ctxlog.From(ctx).With("session", d.ID, "tag", d.Tag)
	ctx = ctxlog.With(ctx, logger)

	projectsCh := async.Go(ctx, "top_projects", func(ctx context.Context) (*model.Panel, error) {
		stats, err := uc.stats.TopProjects(ctx, d.Filter)
		if err != nil {
			return nil, err
		}
		series, err := stats.Series()
		if err != nil {
			return nil, err
		}
		return uc.renderPanel(ctx, model.NewBarChartSpec(types.ChartIDProjects, uc.config.Titles.Projects, series))
	})

	usersCh := async.Go(ctx, "top_users", func(ctx context.Context) (*model.Panel, error) {
		stats, err := uc.stats.TopUsers(ctx, d.Filter)
		if err != nil {
			return nil, err
		}
		series, err := stats.Series()
		if err != nil {
			return nil, err
		}
		return uc.renderPanel(ctx, model.NewBarChartSpec(types.ChartIDUsers, uc.config.Titles.Users, series))
	})

	// The first time-series request carries no view_type and the backend picks the granularity
	timeCh := async.Go(ctx, "time_stats", func(ctx context.Context) (*timeLoad, error) {
		stats, err := uc.stats.TimeStats(ctx, d.Filter, "")
		if err != nil {
			return nil, err
		}
		view := stats.ViewType
		if view == "" {
			view = uc.config.InitialView(d.Filter)
		}
		panel, err := uc.timePanel(ctx, view, stats)
		if err != nil {
			return nil, err
		}
		return &timeLoad{view: view, panel: panel}, nil
	})

	for pending := 3; pending > 0; pending-- {
		select {
		case r := <-projectsCh:
			d.SetProjects(uc.resultPanel(ctx, types.ChartIDProjects, r))
		case r := <-usersCh:
			d.SetUsers(uc.resultPanel(ctx, types.ChartIDUsers, r))
		case r := <-timeCh:
			if r.Failed() {
				apperr.Handle(ctx, goerr.Wrap(r.Err, "failed to load panel", goerr.V("chart", types.ChartIDTime)))
				view := uc.config.InitialView(d.Filter)
				d.SetTimePanel(view, model.NewFailedPanel(r.Err))
				d.Views.Focus(view)
				continue
			}
			d.SetTimePanel(r.Value.view, r.Value.panel)
			d.Views.Initialize(r.Value.view)
		}
	}

	logger.Info("dashboard loaded",
		"projects", d.Projects().Available(),
		"users", d.Users().Available(),
		"view", d.Views.Active(),
	)
}

func (uc *DashboardUseCase) resultPanel(ctx context.Context, id types.ChartID, r model.Result[*model.Panel]) *model.Panel {
	if r.Failed() {
		apperr.Handle(ctx, goerr.Wrap(r.Err, "failed to load panel", goerr.V("chart", id)))
		return model.NewFailedPanel(r.Err)
	}
	return r.Value
}

// renderPanel draws spec and points the export link at the result
func (uc *DashboardUseCase) renderPanel(ctx context.Context, spec *model.ChartSpec) (*model.Panel, error) {
	var buf bytes.Buffer
	if err := uc.renderer.RenderPNG(ctx, spec, &buf); err != nil {
		return nil, goerr.Wrap(err, "failed to render chart", goerr.V("chart", spec.ID))
	}

	panel := &model.Panel{Spec: spec}
	if err := panel.UpdateExportLink(buf.Bytes()); err != nil {
		return nil, err
	}
	return panel, nil
}

func (uc *DashboardUseCase) timePanel(ctx context.Context, view types.ViewType, stats *model.TimeStats) (*model.Panel, error) {
	series, err := stats.Series()
	if err != nil {
		return nil, err
	}
	return uc.renderPanel(ctx, model.NewLineChartSpec(types.ChartIDTime, uc.config.Titles.Time, view, series))
}

// Get returns a stored dashboard and records the access
func (uc *DashboardUseCase) Get(ctx context.Context, id types.SessionID) (*model.Dashboard, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "malformed session id", goerr.V("id", id))
	}

	dashboard, err := uc.repo.GetDashboard(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if dashboard.IsExpired(now, uc.sessionTTL) {
		if err := uc.repo.DeleteDashboard(ctx, id); err != nil {
			return nil, goerr.Wrap(err, "failed to delete expired dashboard", goerr.V("id", id))
		}
		return nil, goerr.Wrap(model.ErrSessionNotFound, "dashboard expired", goerr.V("id", id))
	}

	dashboard.Touch(now)
	return dashboard, nil
}

// SelectView switches the time-series panel of a dashboard to view.
//
// A loaded view is a pure visibility swap. An unloaded view is fetched with
// view_type set, rendered and then shown, unless another selection happened
// in the meantime. Concurrent selections of the same unloaded view share one fetch.
func (uc *DashboardUseCase) SelectView(ctx context.Context, id types.SessionID, view types.ViewType) (*model.Dashboard, error) {
	if !view.IsValid() || !uc.config.IsEnabledView(view) {
		return nil, goerr.Wrap(model.ErrInvalidView, "view is not selectable", goerr.V("view", view))
	}

	dashboard, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	generation, done := dashboard.Views.Select(view)
	if done {
		return dashboard, nil
	}

	if err := uc.ensureView(ctx, dashboard, view); err != nil {
		return nil, err
	}

	if !dashboard.Views.Complete(view, generation) {
		ctxlog.From(ctx).Debug("view loaded after a newer selection",
			"session", id,
			"view", view,
			"generation", generation,
		)
	}
	return dashboard, nil
}

// ensureView fetches and renders view unless it is already loaded.
// The fetch is shared by every caller waiting on the same view and runs on a
// context detached from their cancellation; each caller stops waiting when its
// own ctx is done.
func (uc *DashboardUseCase) ensureView(ctx context.Context, d *model.Dashboard, view types.ViewType) error {
	key := d.ID.String() + "/" + view.String()
	fetchCtx := context.WithoutCancel(ctx)

	ch := uc.inflight.DoChan(key, func() (any, error) {
		if d.Views.IsLoaded(view) {
			return nil, nil
		}

		stats, err := uc.stats.TimeStats(fetchCtx, d.Filter, view)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch time series", goerr.V("view", view))
		}
		panel, err := uc.timePanel(fetchCtx, view, stats)
		if err != nil {
			return nil, err
		}

		d.SetTimePanel(view, panel)
		d.Views.MarkLoaded(view)
		return panel, nil
	})

	select {
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "stopped waiting for time series", goerr.V("view", view))
	case r := <-ch:
		if r.Shared {
			ctxlog.From(ctx).Debug("shared in-flight view fetch", "session", d.ID, "view", view)
		}
		return r.Err
	}
}

// LoadViews fetches every configured view that is not loaded yet. The active
// view is unchanged. A failed view does not stop the others; the failures are
// returned joined.
func (uc *DashboardUseCase) LoadViews(ctx context.Context, d *model.Dashboard) error {
	var errs []error
	for _, view := range uc.config.Views {
		if err := uc.ensureView(ctx, d, view); err != nil {
			apperr.Handle(ctx, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Views returns the views shown in the selector: the configured ones, plus the
// active view when the backend picked one outside of them
func (uc *DashboardUseCase) Views(d *model.Dashboard) []types.ViewType {
	active := d.Views.Active()
	if active == "" || uc.config.IsEnabledView(active) {
		return uc.config.Views
	}
	views := make([]types.ViewType, 0, len(uc.config.Views)+1)
	views = append(views, uc.config.Views...)
	return append(views, active)
}

// Panel returns a rendered panel of a stored dashboard. An empty view selects
// the active time-series view.
func (uc *DashboardUseCase) Panel(ctx context.Context, id types.SessionID, chartID types.ChartID, view types.ViewType) (*model.Panel, error) {
	if !chartID.IsValid() {
		return nil, goerr.Wrap(model.ErrPanelNotFound, "unknown chart", goerr.V("chart", chartID))
	}
	if view != "" && !view.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidView, "unknown view", goerr.V("view", view))
	}

	dashboard, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	panel, ok := dashboard.Panel(chartID, view)
	if !ok || !panel.Available() {
		return nil, goerr.Wrap(model.ErrPanelNotFound, "panel is not available",
			goerr.V("session", id),
			goerr.V("chart", chartID),
			goerr.V("view", view))
	}
	return panel, nil
}

// ChartHTML renders the interactive page of a panel
func (uc *DashboardUseCase) ChartHTML(ctx context.Context, id types.SessionID, chartID types.ChartID, view types.ViewType) ([]byte, error) {
	panel, err := uc.Panel(ctx, id, chartID, view)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := uc.renderer.RenderHTML(ctx, panel.Spec, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChartCSV returns the series of a panel as CSV together with its download name
func (uc *DashboardUseCase) ChartCSV(ctx context.Context, id types.SessionID, chartID types.ChartID, view types.ViewType) ([]byte, string, error) {
	panel, err := uc.Panel(ctx, id, chartID, view)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := chart.WriteCSV(panel.Spec, &buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), chart.CSVFilename(panel.Spec), nil
}

// Sweep removes sessions idle longer than the session TTL
func (uc *DashboardUseCase) Sweep(ctx context.Context) (int, error) {
	if uc.sessionTTL <= 0 {
		return 0, nil
	}
	n, err := uc.repo.DeleteExpired(ctx, uc.now(), uc.sessionTTL)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete expired dashboards")
	}
	if n > 0 {
		ctxlog.From(ctx).Info("expired dashboards removed", "count", n)
	}
	return n, nil
}
