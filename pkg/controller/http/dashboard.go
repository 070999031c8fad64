package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// tagParam returns the unescaped {tag} path segment
func tagParam(r *http.Request) (string, error) {
	tag := chi.URLParam(r, "tag")
	if r.URL.RawPath == "" {
		return tag, nil
	}
	unescaped, err := url.PathUnescape(tag)
	if err != nil {
		return "", goerr.Wrap(model.ErrInvalidFilter, "malformed hashtag", goerr.V("tag", tag))
	}
	return unescaped, nil
}

func sessionParam(r *http.Request) types.SessionID {
	return types.SessionID(chi.URLParam(r, "session"))
}

func viewParam(r *http.Request) (types.ViewType, error) {
	raw := r.URL.Query().Get("view_type")
	if raw == "" {
		return "", nil
	}
	view, err := types.ParseViewType(raw)
	if err != nil {
		return "", goerr.Wrap(model.ErrInvalidView, "invalid view_type", goerr.V("view_type", raw))
	}
	return view, nil
}

func (s *Server) showDashboard(w http.ResponseWriter, r *http.Request, d *model.Dashboard) {
	page := newDashboardPage(d, s.dashboardUC.Config(), s.dashboardUC.Views(d), GetBaseURL(r, s.baseURL))
	w.Header().Set("Cache-Control", "no-store")
	s.render(w, r, "dashboard.html", page)
}

// handleOpenDashboard opens a new dashboard session for every page load
func (s *Server) handleOpenDashboard(w http.ResponseWriter, r *http.Request) {
	tag, err := tagParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := model.FilterFromValues(r.URL.Query())
	filter.Query = model.NormalizeTag(tag)

	d, err := s.dashboardUC.Open(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.showDashboard(w, r, d)
}

func (s *Server) handleShowDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboardUC.Get(r.Context(), sessionParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.showDashboard(w, r, d)
}

// handleSelectView switches the time-series view and re-renders the page
func (s *Server) handleSelectView(w http.ResponseWriter, r *http.Request) {
	view, err := viewParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if view == "" {
		writeError(w, r, goerr.Wrap(model.ErrInvalidView, "view_type is required"))
		return
	}

	d, err := s.dashboardUC.SelectView(r.Context(), sessionParam(r), view)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.showDashboard(w, r, d)
}

// handleChart serves one panel as interactive HTML, PNG or CSV, chosen by
// the extension of the {chart} segment
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name, ext = name[:i], name[i:]
	}
	chartID := types.ChartID(name)

	view, err := viewParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	id := sessionParam(r)

	switch ext {
	case "":
		body, err := s.dashboardUC.ChartHTML(ctx, id, chartID, view)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)

	case ".png":
		panel, err := s.dashboardUC.Panel(ctx, id, chartID, view)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(panel.Image)))
		w.Header().Set("Content-Disposition", `attachment; filename="`+panel.Export.Filename+`"`)
		_, _ = w.Write(panel.Image)

	case ".csv":
		body, filename, err := s.dashboardUC.ChartCSV(ctx, id, chartID, view)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, _ = w.Write(body)

	default:
		writeError(w, r, goerr.Wrap(model.ErrPanelNotFound, "unknown chart format", goerr.V("ext", ext)))
	}
}
