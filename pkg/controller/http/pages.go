package http

import (
	"context"
	"errors"
	"html/template"
	"net/url"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
)

type indexPage struct {
	Filter model.Filter
}

type panelView struct {
	ID        types.ChartID
	// DOMID is unique on the page; time panels carry their view
	DOMID     string
	Title     string
	Available bool
	Error     string
	// ImageURL is the data URI of the export link; it is trusted since it is built from our own PNG
	ImageURL template.URL
	Filename string
	ChartURL string
	CSVURL   string
}

type buttonView struct {
	Label    string
	Selected bool
	URL      string
}

type timePanelView struct {
	View    types.ViewType
	Visible bool
	Panel   panelView
}

type dashboardPage struct {
	Tag        string
	Filter     model.Filter
	ShareURL   string
	Projects   panelView
	Users      panelView
	Buttons    []buttonView
	TimePanels []timePanelView
}

func chartPath(id types.SessionID, chart types.ChartID, view types.ViewType, ext string) string {
	p := "/dashboard/" + id.String() + "/charts/" + chart.String() + ext
	if view != "" {
		p += "?view_type=" + url.QueryEscape(view.String())
	}
	return p
}

func panelErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrBackendStatus):
		return "the stats service returned an error"
	case errors.Is(err, model.ErrBackendUnreachable):
		return "the stats service is unreachable"
	case errors.Is(err, model.ErrMalformedPayload):
		return "the stats service returned malformed data"
	case errors.Is(err, context.DeadlineExceeded):
		return "the stats service did not answer in time"
	case errors.Is(err, context.Canceled):
		return "the request was cancelled"
	default:
		return "failed to load data"
	}
}

func newPanelView(id types.SessionID, chart types.ChartID, title string, p *model.Panel) panelView {
	v := panelView{ID: chart, DOMID: chart.String(), Title: title}
	if !p.Available() {
		var err error
		if p != nil {
			err = p.Err
		}
		v.Error = panelErrorMessage(err)
		return v
	}

	v.Available = true
	v.Title = p.Spec.Title
	v.ImageURL = template.URL(p.Export.Href)
	v.Filename = p.Export.Filename
	v.ChartURL = chartPath(id, chart, p.Spec.View, "")
	v.CSVURL = chartPath(id, chart, p.Spec.View, ".csv")
	return v
}

func newDashboardPage(d *model.Dashboard, cfg *model.DashboardConfig, views []types.ViewType, baseURL string) *dashboardPage {
	page := &dashboardPage{
		Tag:      d.Tag,
		Filter:   d.Filter,
		ShareURL: baseURL + model.SearchPath(d.Tag, d.Filter),
		Projects: newPanelView(d.ID, types.ChartIDProjects, cfg.Titles.Projects, d.Projects()),
		Users:    newPanelView(d.ID, types.ChartIDUsers, cfg.Titles.Users, d.Users()),
	}

	for _, b := range d.ViewButtons(views) {
		page.Buttons = append(page.Buttons, buttonView{
			Label:    b.Label,
			Selected: b.Selected,
			URL:      "/dashboard/" + d.ID.String() + "/time?view_type=" + url.QueryEscape(b.View.String()),
		})
	}

	for _, tp := range d.TimePanels(views) {
		panel := newPanelView(d.ID, types.ChartIDTime, cfg.Titles.Time, tp.Panel)
		panel.DOMID = types.ChartIDTime.String() + "-" + tp.View.String()
		page.TimePanels = append(page.TimePanels, timePanelView{
			View:    tp.View,
			Visible: tp.Visible,
			Panel:   panel,
		})
	}

	return page
}
