package stats_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/hashtags-tool/hashdash/pkg/service/stats"
	"github.com/m-mizutani/gt"
)

type recordedRequest struct {
	path  string
	query url.Values
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	bodies   map[string]string
	status   int
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, recordedRequest{path: r.URL.Path, query: r.URL.Query()})
	b.mu.Unlock()

	if b.status != 0 {
		w.WriteHeader(b.status)
		_, _ = w.Write([]byte("backend exploded"))
		return
	}
	body, ok := b.bodies[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func newBackend(t *testing.T) (*fakeBackend, *stats.Client) {
	t.Helper()
	backend := &fakeBackend{
		bodies: map[string]string{
			"/api/top_project_stats/": `{"projects":["en.wikipedia.org","commons.wikimedia.org"],"edits_per_project":[10,2]}`,
			"/api/top_user_stats/":    `{"usernames":["Alice","Bob","Carol"],"edits_per_user":[6,4,2]}`,
			"/api/time_stats/":        `{"view_type":"day","time_array":["2020-01-01","2020-01-02"],"edits_array":[3,9]}`,
		},
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := stats.New(srv.URL, stats.WithTimeout(5*time.Second))
	gt.NoError(t, err).Required()
	return backend, client
}

func TestClient_TopProjects(t *testing.T) {
	backend, client := newBackend(t)
	filter := model.Filter{Query: "wiki", Lang: "en", StartDate: "2020-01-01", Project: "en.wikipedia.org"}

	result, err := client.TopProjects(context.Background(), filter)
	gt.NoError(t, err)
	gt.Equal(t, result.Projects, []string{"en.wikipedia.org", "commons.wikimedia.org"})
	gt.Equal(t, result.EditsPerProject, []int{10, 2})

	gt.A(t, backend.requests).Length(1)
	req := backend.requests[0]
	gt.Equal(t, req.path, "/api/top_project_stats/")
	gt.Equal(t, req.query.Get("query"), "wiki")
	gt.Equal(t, req.query.Get("lang"), "en")
	gt.Equal(t, req.query.Get("startdate"), "2020-01-01")
	gt.Equal(t, req.query.Get("project"), "en.wikipedia.org")
	gt.False(t, req.query.Has("view_type"))
}

func TestClient_TopUsers(t *testing.T) {
	_, client := newBackend(t)

	result, err := client.TopUsers(context.Background(), model.Filter{Query: "wiki"})
	gt.NoError(t, err)
	gt.Equal(t, result.Usernames, []string{"Alice", "Bob", "Carol"})
	gt.Equal(t, result.EditsPerUser, []int{6, 4, 2})
}

func TestClient_TimeStats(t *testing.T) {
	t.Run("view type is sent", func(t *testing.T) {
		backend, client := newBackend(t)

		result, err := client.TimeStats(context.Background(), model.Filter{Query: "wiki"}, types.ViewTypeDay)
		gt.NoError(t, err)
		gt.Equal(t, result.ViewType, types.ViewTypeDay)
		gt.Equal(t, result.TimeArray, []string{"2020-01-01", "2020-01-02"})
		gt.Equal(t, result.EditsArray, []int{3, 9})
		gt.Equal(t, backend.requests[0].query.Get("view_type"), "day")
	})

	t.Run("no view type lets the backend decide", func(t *testing.T) {
		backend, client := newBackend(t)

		_, err := client.TimeStats(context.Background(), model.Filter{Query: "wiki"}, "")
		gt.NoError(t, err)
		gt.False(t, backend.requests[0].query.Has("view_type"))
	})

	t.Run("unknown view type in response", func(t *testing.T) {
		backend, client := newBackend(t)
		backend.bodies["/api/time_stats/"] = `{"view_type":"hour","time_array":[],"edits_array":[]}`

		_, err := client.TimeStats(context.Background(), model.Filter{}, "")
		gt.True(t, errors.Is(err, model.ErrMalformedPayload))
	})
}

func TestClient_Errors(t *testing.T) {
	t.Run("error status", func(t *testing.T) {
		backend, client := newBackend(t)
		backend.status = http.StatusInternalServerError

		_, err := client.TopProjects(context.Background(), model.Filter{})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrBackendStatus))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		backend, client := newBackend(t)
		backend.bodies["/api/top_user_stats/"] = `{"usernames": [`

		_, err := client.TopUsers(context.Background(), model.Filter{})
		gt.True(t, errors.Is(err, model.ErrMalformedPayload))
	})

	t.Run("missing fields", func(t *testing.T) {
		backend, client := newBackend(t)
		backend.bodies["/api/top_user_stats/"] = `{"usernames":["Alice"]}`

		_, err := client.TopUsers(context.Background(), model.Filter{})
		gt.True(t, errors.Is(err, model.ErrMalformedPayload))
	})

	t.Run("cancelled context", func(t *testing.T) {
		_, client := newBackend(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.TopProjects(ctx, model.Filter{})
		gt.Error(t, err)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		client, err := stats.New(srv.URL)
		gt.NoError(t, err)
		_, err = client.TopProjects(context.Background(), model.Filter{})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrBackendUnreachable))
	})
}

func TestNew(t *testing.T) {
	t.Run("rejects non-http URL", func(t *testing.T) {
		_, err := stats.New("ftp://example.com")
		gt.Error(t, err)
	})

	t.Run("keeps a base path", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"projects":[],"edits_per_project":[]}`))
		}))
		defer srv.Close()

		client, err := stats.New(srv.URL + "/hashtags/")
		gt.NoError(t, err)
		_, err = client.TopProjects(context.Background(), model.Filter{})
		gt.NoError(t, err)
		gt.Equal(t, gotPath, "/hashtags/api/top_project_stats/")
	})
}

func TestClient_RateLimit(t *testing.T) {
	_, client := newBackend(t)
	limited, err := stats.New("http://127.0.0.1:1", stats.WithRateLimit(0.001, 1))
	gt.NoError(t, err)

	// The single burst token is spent by the first call; the second must give up
	// as soon as its context expires instead of waiting for a token.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _ = limited.TopProjects(ctx, model.Filter{})
	_, err = limited.TopProjects(ctx, model.Filter{})
	gt.Error(t, err)

	// An unlimited client is not affected
	_, err = client.TopProjects(context.Background(), model.Filter{})
	gt.NoError(t, err)
}
