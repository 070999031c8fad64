package model

import (
	"regexp"

	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DashboardConfig describes the dashboard layout
type DashboardConfig struct {
	// Views are the selectable time-series granularities, in button order
	Views       []types.ViewType `yaml:"views"`
	DefaultView types.ViewType   `yaml:"default_view"`
	Titles      ChartTitles      `yaml:"titles"`
	Style       ChartStyle       `yaml:"style"`
}

// ChartTitles holds the title of each panel
type ChartTitles struct {
	Projects string `yaml:"projects"`
	Users    string `yaml:"users"`
	Time     string `yaml:"time"`
}

// ChartStyle holds the image size and colors of rendered charts
type ChartStyle struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	LineHeight int    `yaml:"line_height"`
	Stroke     string `yaml:"stroke"`
	Fill       string `yaml:"fill"`
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultDashboardConfig returns the built-in layout
func DefaultDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		Views:       types.AllViewTypes(),
		DefaultView: types.ViewTypeMonth,
		Titles: ChartTitles{
			Projects: "Top projects",
			Users:    "Top users",
			Time:     "Edits over time",
		},
		Style: ChartStyle{
			Width:      800,
			Height:     400,
			LineHeight: 300,
			Stroke:     "#ff6384",
			Fill:       "#ffd8e0",
		},
	}
}

// ApplyDefaults fills unset fields from DefaultDashboardConfig
func (c *DashboardConfig) ApplyDefaults() {
	def := DefaultDashboardConfig()
	if len(c.Views) == 0 {
		c.Views = def.Views
	}
	if c.DefaultView == "" {
		c.DefaultView = c.Views[0]
	}
	if c.Titles.Projects == "" {
		c.Titles.Projects = def.Titles.Projects
	}
	if c.Titles.Users == "" {
		c.Titles.Users = def.Titles.Users
	}
	if c.Titles.Time == "" {
		c.Titles.Time = def.Titles.Time
	}
	if c.Style.Width == 0 {
		c.Style.Width = def.Style.Width
	}
	if c.Style.Height == 0 {
		c.Style.Height = def.Style.Height
	}
	if c.Style.LineHeight == 0 {
		c.Style.LineHeight = def.Style.LineHeight
	}
	if c.Style.Stroke == "" {
		c.Style.Stroke = def.Style.Stroke
	}
	if c.Style.Fill == "" {
		c.Style.Fill = def.Style.Fill
	}
}

// Validate validates the dashboard configuration
func (c *DashboardConfig) Validate() error {
	if len(c.Views) == 0 {
		return goerr.New("at least one view is required")
	}

	seen := make(map[types.ViewType]bool)
	for i, v := range c.Views {
		if !v.IsValid() {
			return goerr.New("invalid view type",
				goerr.V("index", i),
				goerr.V("view", v))
		}
		if seen[v] {
			return goerr.New("duplicate view type", goerr.V("view", v))
		}
		seen[v] = true
	}

	if !seen[c.DefaultView] {
		return goerr.New("default view must be one of views",
			goerr.V("default_view", c.DefaultView),
			goerr.V("views", c.Views))
	}

	if c.Style.Width <= 0 || c.Style.Height <= 0 || c.Style.LineHeight <= 0 {
		return goerr.New("chart sizes must be positive",
			goerr.V("width", c.Style.Width),
			goerr.V("height", c.Style.Height),
			goerr.V("line_height", c.Style.LineHeight))
	}

	for name, color := range map[string]string{"stroke": c.Style.Stroke, "fill": c.Style.Fill} {
		if !hexColorPattern.MatchString(color) {
			return goerr.New("color must be #rrggbb",
				goerr.V("field", name),
				goerr.V("value", color))
		}
	}

	return nil
}

// IsEnabledView checks if view is one of the configured views
func (c *DashboardConfig) IsEnabledView(view types.ViewType) bool {
	for _, v := range c.Views {
		if v == view {
			return true
		}
	}
	return false
}

// InitialView decides the first view when the backend does not report one
func (c *DashboardConfig) InitialView(f Filter) types.ViewType {
	start, end := f.DateRange()
	if start.IsZero() || end.IsZero() {
		return c.DefaultView
	}
	v := DefaultViewType(start, end)
	if c.IsEnabledView(v) {
		return v
	}
	return c.DefaultView
}
