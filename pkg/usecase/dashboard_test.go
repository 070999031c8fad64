package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/interfaces/mocks"
	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/hashtags-tool/hashdash/pkg/repository"
	"github.com/hashtags-tool/hashdash/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

var fakePNG = []byte("\x89PNG\r\n\x1a\nfake")

func newStatsMock() *mocks.StatsClientMock {
	return &mocks.StatsClientMock{
		TopProjectsFunc: func(ctx context.Context, filter model.Filter) (*model.ProjectStats, error) {
			return &model.ProjectStats{
				Projects:        []string{"en.wikipedia.org", "commons.wikimedia.org"},
				EditsPerProject: []int{12, 5},
			}, nil
		},
		TopUsersFunc: func(ctx context.Context, filter model.Filter) (*model.UserStats, error) {
			return &model.UserStats{
				Usernames:    []string{"Alice", "Bob"},
				EditsPerUser: []int{9, 8},
			}, nil
		},
		TimeStatsFunc: func(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
			if view == "" {
				view = types.ViewTypeMonth
			}
			return &model.TimeStats{
				ViewType:   view,
				TimeArray:  []string{"2020-01", "2020-02", "2020-03"},
				EditsArray: []int{4, 0, 7},
			}, nil
		},
	}
}

func newRendererMock() *mocks.ChartRendererMock {
	return &mocks.ChartRendererMock{
		RenderPNGFunc: func(ctx context.Context, spec *model.ChartSpec, w io.Writer) error {
			_, err := w.Write(fakePNG)
			return err
		},
		RenderHTMLFunc: func(ctx context.Context, spec *model.ChartSpec, w io.Writer) error {
			_, err := io.WriteString(w, "<div id=\""+spec.ID.String()+"\"></div>")
			return err
		},
	}
}

func newUseCase(stats *mocks.StatsClientMock, opts ...usecase.DashboardOption) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(stats, newRendererMock(), repository.NewMemory(), model.DefaultDashboardConfig(), opts...)
}

func TestDashboardUseCase_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("loads all three panels", func(t *testing.T) {
		stats := newStatsMock()
		uc := newUseCase(stats)

		filter := model.Filter{Query: "wiki", Lang: "en", StartDate: "2020-01-01"}
		d, err := uc.Open(ctx, filter)
		gt.NoError(t, err).Required()

		gt.A(t, stats.TopProjectsCalls()).Length(1)
		gt.A(t, stats.TopUsersCalls()).Length(1)
		gt.A(t, stats.TimeStatsCalls()).Length(1)
		gt.Equal(t, stats.TopProjectsCalls()[0].Filter, filter)
		gt.Equal(t, stats.TimeStatsCalls()[0].View, types.ViewType(""))

		projects := d.Projects()
		gt.True(t, projects.Available())
		gt.Equal(t, projects.Spec.Labels, []string{"en.wikipedia.org", "commons.wikimedia.org"})
		gt.Equal(t, projects.Spec.Counts, []int{12, 5})
		gt.Equal(t, projects.Spec.Kind, model.ChartKindBar)
		gt.S(t, projects.Export.Href).Contains("data:image/png;base64,")
		gt.Equal(t, projects.Export.Filename, "projectsChart.png")

		users := d.Users()
		gt.Equal(t, users.Spec.Labels, []string{"Alice", "Bob"})
		gt.Equal(t, users.Spec.Counts, []int{9, 8})

		gt.Equal(t, d.Views.Active(), types.ViewTypeMonth)
		gt.True(t, d.Views.IsLoaded(types.ViewTypeMonth))
		timePanel, ok := d.TimePanel(types.ViewTypeMonth)
		gt.True(t, ok)
		gt.Equal(t, timePanel.Spec.Kind, model.ChartKindLine)
		gt.False(t, timePanel.Spec.MaintainAspectRatio)
		gt.Equal(t, timePanel.Export.Filename, "timeChart-month.png")

		stored, err := uc.Get(ctx, d.ID)
		gt.NoError(t, err)
		gt.Equal(t, stored.ID, d.ID)
	})

	t.Run("each page load opens a new session", func(t *testing.T) {
		uc := newUseCase(newStatsMock())

		d1, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)
		d2, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)
		gt.NotEqual(t, d1.ID, d2.ID)
	})

	t.Run("failing fetch only fails its own panel", func(t *testing.T) {
		stats := newStatsMock()
		stats.TopUsersFunc = func(ctx context.Context, filter model.Filter) (*model.UserStats, error) {
			return nil, goerr.Wrap(model.ErrBackendStatus, "boom")
		}
		uc := newUseCase(stats)

		d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)
		gt.True(t, d.Projects().Available())
		gt.False(t, d.Users().Available())
		gt.True(t, errors.Is(d.Users().Err, model.ErrBackendStatus))
	})

	t.Run("failing time series keeps the view unloaded", func(t *testing.T) {
		stats := newStatsMock()
		stats.TimeStatsFunc = func(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
			return nil, goerr.New("connection refused")
		}
		uc := newUseCase(stats)

		d, err := uc.Open(ctx, model.Filter{Query: "wiki", StartDate: "2020-01-01", EndDate: "2020-01-31"})
		gt.NoError(t, err)
		gt.Equal(t, d.Views.Active(), types.ViewTypeDay)
		gt.False(t, d.Views.IsLoaded(types.ViewTypeDay))

		p, ok := d.TimePanel(types.ViewTypeDay)
		gt.True(t, ok)
		gt.False(t, p.Available())
	})

	t.Run("backend without view type falls back to the date span", func(t *testing.T) {
		stats := newStatsMock()
		stats.TimeStatsFunc = func(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
			return &model.TimeStats{TimeArray: []string{"2015"}, EditsArray: []int{1}}, nil
		}
		uc := newUseCase(stats)

		d, err := uc.Open(ctx, model.Filter{Query: "wiki", StartDate: "2010-01-01", EndDate: "2020-01-01"})
		gt.NoError(t, err)
		gt.Equal(t, d.Views.Active(), types.ViewTypeYear)
	})

	t.Run("hashtag is required", func(t *testing.T) {
		uc := newUseCase(newStatsMock())
		_, err := uc.Open(ctx, model.Filter{})
		gt.True(t, errors.Is(err, model.ErrInvalidFilter))
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		stats := newStatsMock()
		uc := newUseCase(stats)
		_, err := uc.Open(ctx, model.Filter{Query: "wiki", StartDate: "01/01/2020"})
		gt.True(t, errors.Is(err, model.ErrInvalidFilter))
		gt.A(t, stats.TopProjectsCalls()).Length(0)
	})
}

func TestDashboardUseCase_SelectView(t *testing.T) {
	ctx := context.Background()

	t.Run("loaded view never re-fetches", func(t *testing.T) {
		stats := newStatsMock()
		uc := newUseCase(stats)
		d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := uc.SelectView(ctx, d.ID, types.ViewTypeMonth)
			gt.NoError(t, err)
		}
		gt.A(t, stats.TimeStatsCalls()).Length(1)
	})

	t.Run("unloaded view is fetched once with its view type", func(t *testing.T) {
		stats := newStatsMock()
		uc := newUseCase(stats)
		d, err := uc.Open(ctx, model.Filter{Query: "wiki", Lang: "en"})
		gt.NoError(t, err)

		_, err = uc.SelectView(ctx, d.ID, types.ViewTypeDay)
		gt.NoError(t, err)

		calls := stats.TimeStatsCalls()
		gt.A(t, calls).Length(2)
		gt.Equal(t, calls[1].View, types.ViewTypeDay)
		gt.Equal(t, calls[1].Filter.Lang, "en")
		gt.Equal(t, d.Views.Active(), types.ViewTypeDay)

		// toggling back and forth only swaps visibility
		_, err = uc.SelectView(ctx, d.ID, types.ViewTypeMonth)
		gt.NoError(t, err)
		_, err = uc.SelectView(ctx, d.ID, types.ViewTypeDay)
		gt.NoError(t, err)
		gt.A(t, stats.TimeStatsCalls()).Length(2)

		panels := d.TimePanels(uc.Views(d))
		gt.A(t, panels).Length(2)
		for _, p := range panels {
			gt.Equal(t, p.Visible, p.View == types.ViewTypeDay)
		}
	})

	t.Run("concurrent selections share one fetch", func(t *testing.T) {
		stats := newStatsMock()
		release := make(chan struct{})
		base := stats.TimeStatsFunc
		stats.TimeStatsFunc = func(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
			if view == types.ViewTypeWeek {
				<-release
			}
			return base(ctx, filter, view)
		}
		uc := newUseCase(stats)
		d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.SelectView(ctx, d.ID, types.ViewTypeWeek)
				gt.NoError(t, err)
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		weekCalls := 0
		for _, c := range stats.TimeStatsCalls() {
			if c.View == types.ViewTypeWeek {
				weekCalls++
			}
		}
		gt.Equal(t, weekCalls, 1)
		gt.Equal(t, d.Views.Active(), types.ViewTypeWeek)
	})

	t.Run("shared fetch survives the cancellation of one caller", func(t *testing.T) {
		stats := newStatsMock()
		release := make(chan struct{})
		started := make(chan struct{})
		base := stats.TimeStatsFunc
		stats.TimeStatsFunc = func(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
			if view == types.ViewTypeWeek {
				close(started)
				<-release
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			return base(ctx, filter, view)
		}
		uc := newUseCase(stats)
		d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)

		firstCtx, cancel := context.WithCancel(ctx)
		firstDone := make(chan error, 1)
		go func() {
			_, err := uc.SelectView(firstCtx, d.ID, types.ViewTypeWeek)
			firstDone <- err
		}()
		<-started

		secondDone := make(chan error, 1)
		go func() {
			_, err := uc.SelectView(ctx, d.ID, types.ViewTypeWeek)
			secondDone <- err
		}()
		time.Sleep(50 * time.Millisecond)

		cancel()
		gt.True(t, errors.Is(<-firstDone, context.Canceled))

		close(release)
		gt.NoError(t, <-secondDone)

		weekCalls := 0
		for _, c := range stats.TimeStatsCalls() {
			if c.View == types.ViewTypeWeek {
				weekCalls++
			}
		}
		gt.Equal(t, weekCalls, 1)
		gt.True(t, d.Views.IsLoaded(types.ViewTypeWeek))
		gt.Equal(t, d.Views.Active(), types.ViewTypeWeek)
	})

	t.Run("stale completion does not change the active view", func(t *testing.T) {
		stats := newStatsMock()
		release := make(chan struct{})
		started := make(chan struct{})
		base := stats.TimeStatsFunc
		stats.TimeStatsFunc = func(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
			if view == types.ViewTypeDay {
				close(started)
				<-release
			}
			return base(ctx, filter, view)
		}
		uc := newUseCase(stats)
		d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := uc.SelectView(ctx, d.ID, types.ViewTypeDay)
			gt.NoError(t, err)
		}()

		<-started
		_, err = uc.SelectView(ctx, d.ID, types.ViewTypeYear)
		gt.NoError(t, err)
		gt.Equal(t, d.Views.Active(), types.ViewTypeYear)

		close(release)
		<-done

		gt.Equal(t, d.Views.Active(), types.ViewTypeYear)
		gt.True(t, d.Views.IsLoaded(types.ViewTypeDay))
	})

	t.Run("failed fetch leaves view unloaded and active view unchanged", func(t *testing.T) {
		stats := newStatsMock()
		base := stats.TimeStatsFunc
		stats.TimeStatsFunc = func(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
			if view == types.ViewTypeWeek {
				return nil, goerr.Wrap(model.ErrBackendStatus, "unavailable")
			}
			return base(ctx, filter, view)
		}
		uc := newUseCase(stats)
		d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)

		_, err = uc.SelectView(ctx, d.ID, types.ViewTypeWeek)
		gt.True(t, errors.Is(err, model.ErrBackendStatus))
		gt.Equal(t, d.Views.Active(), types.ViewTypeMonth)
		gt.False(t, d.Views.IsLoaded(types.ViewTypeWeek))
	})

	t.Run("invalid view", func(t *testing.T) {
		uc := newUseCase(newStatsMock())
		d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)

		_, err = uc.SelectView(ctx, d.ID, types.ViewType("hour"))
		gt.True(t, errors.Is(err, model.ErrInvalidView))
	})

	t.Run("view disabled by configuration", func(t *testing.T) {
		cfg := model.DefaultDashboardConfig()
		cfg.Views = []types.ViewType{types.ViewTypeMonth, types.ViewTypeYear}
		uc := usecase.NewDashboardUseCase(newStatsMock(), newRendererMock(), repository.NewMemory(), cfg)
		d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
		gt.NoError(t, err)

		_, err = uc.SelectView(ctx, d.ID, types.ViewTypeWeek)
		gt.True(t, errors.Is(err, model.ErrInvalidView))
	})

	t.Run("unknown session", func(t *testing.T) {
		uc := newUseCase(newStatsMock())
		id, err := types.NewSessionID()
		gt.NoError(t, err)

		_, err = uc.SelectView(ctx, id, types.ViewTypeDay)
		gt.True(t, errors.Is(err, model.ErrSessionNotFound))
	})
}

func TestDashboardUseCase_Panels(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(newStatsMock())
	d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
	gt.NoError(t, err).Required()

	t.Run("time panel defaults to the active view", func(t *testing.T) {
		p, err := uc.Panel(ctx, d.ID, types.ChartIDTime, "")
		gt.NoError(t, err)
		gt.Equal(t, p.Spec.View, types.ViewTypeMonth)
	})

	t.Run("unloaded view is not found", func(t *testing.T) {
		_, err := uc.Panel(ctx, d.ID, types.ChartIDTime, types.ViewTypeWeek)
		gt.True(t, errors.Is(err, model.ErrPanelNotFound))
	})

	t.Run("html", func(t *testing.T) {
		html, err := uc.ChartHTML(ctx, d.ID, types.ChartIDUsers, "")
		gt.NoError(t, err)
		gt.S(t, string(html)).Contains("usersChart")
	})

	t.Run("csv", func(t *testing.T) {
		data, name, err := uc.ChartCSV(ctx, d.ID, types.ChartIDProjects, "")
		gt.NoError(t, err)
		gt.Equal(t, name, "projectsChart.csv")
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		gt.A(t, lines).Length(3)
		gt.Equal(t, lines[0], "Project,Edits")
		gt.Equal(t, lines[1], "en.wikipedia.org,12")
	})

	t.Run("unknown chart", func(t *testing.T) {
		_, err := uc.Panel(ctx, d.ID, types.ChartID("pieChart"), "")
		gt.True(t, errors.Is(err, model.ErrPanelNotFound))
	})
}

func TestDashboardUseCase_LoadViews(t *testing.T) {
	ctx := context.Background()
	stats := newStatsMock()
	uc := newUseCase(stats)

	d, err := uc.Build(ctx, model.Filter{Query: "wiki"})
	gt.NoError(t, err)
	gt.NoError(t, uc.LoadViews(ctx, d))

	// month came with the first load, the other three are fetched once each
	gt.A(t, stats.TimeStatsCalls()).Length(4)
	for _, v := range types.AllViewTypes() {
		gt.True(t, d.Views.IsLoaded(v))
	}
	gt.Equal(t, d.Views.Active(), types.ViewTypeMonth)

	// Build does not store the session
	_, err = uc.Get(ctx, d.ID)
	gt.True(t, errors.Is(err, model.ErrSessionNotFound))
}

func TestDashboardUseCase_LoadViewsPartialFailure(t *testing.T) {
	ctx := context.Background()
	stats := newStatsMock()
	base := stats.TimeStatsFunc
	stats.TimeStatsFunc = func(ctx context.Context, filter model.Filter, view types.ViewType) (*model.TimeStats, error) {
		if view == types.ViewTypeDay {
			return nil, goerr.Wrap(model.ErrBackendStatus, "unsupported granularity")
		}
		return base(ctx, filter, view)
	}
	uc := newUseCase(stats)

	d, err := uc.Build(ctx, model.Filter{Query: "wiki"})
	gt.NoError(t, err)

	err = uc.LoadViews(ctx, d)
	gt.True(t, errors.Is(err, model.ErrBackendStatus))

	// initial month load plus day, week and year
	gt.A(t, stats.TimeStatsCalls()).Length(4)
	gt.False(t, d.Views.IsLoaded(types.ViewTypeDay))
	gt.True(t, d.Views.IsLoaded(types.ViewTypeWeek))
	gt.True(t, d.Views.IsLoaded(types.ViewTypeYear))
	gt.A(t, d.TimePanels(uc.Views(d))).Length(3)
	gt.Equal(t, d.Views.Active(), types.ViewTypeMonth)
}

func TestDashboardUseCase_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	uc := newUseCase(newStatsMock(), usecase.WithSessionTTL(time.Hour), usecase.WithClock(clock))
	d, err := uc.Open(ctx, model.Filter{Query: "wiki"})
	gt.NoError(t, err)

	now = now.Add(30 * time.Minute)
	_, err = uc.Get(ctx, d.ID)
	gt.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = uc.Get(ctx, d.ID)
	gt.True(t, errors.Is(err, model.ErrSessionNotFound))

	d2, err := uc.Open(ctx, model.Filter{Query: "wiki"})
	gt.NoError(t, err)
	now = now.Add(2 * time.Hour)
	n, err := uc.Sweep(ctx)
	gt.NoError(t, err)
	gt.Equal(t, n, 1)
	_, err = uc.Get(ctx, d2.ID)
	gt.True(t, errors.Is(err, model.ErrSessionNotFound))
}
