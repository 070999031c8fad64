package model

import (
	"sync"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/types"
)

// Dashboard is the server-side state of one opened dashboard page
type Dashboard struct {
	ID        types.SessionID
	Tag       string
	Filter    Filter
	Views     *ViewState
	CreatedAt time.Time

	mu         sync.RWMutex
	projects   *Panel
	users      *Panel
	timePanels map[types.ViewType]*Panel
	lastAccess time.Time
}

// NewDashboard creates an empty dashboard session for filter
func NewDashboard(id types.SessionID, filter Filter, now time.Time) *Dashboard {
	return &Dashboard{
		ID:         id,
		Tag:        filter.Query,
		Filter:     filter,
		Views:      NewViewState(),
		CreatedAt:  now,
		timePanels: make(map[types.ViewType]*Panel),
		lastAccess: now,
	}
}

// SetProjects stores the top-projects panel
func (d *Dashboard) SetProjects(p *Panel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.projects = p
}

// SetUsers stores the top-users panel
func (d *Dashboard) SetUsers(p *Panel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = p
}

// SetTimePanel stores the time-series panel of one view
func (d *Dashboard) SetTimePanel(view types.ViewType, p *Panel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timePanels[view] = p
}

// Projects returns the top-projects panel
func (d *Dashboard) Projects() *Panel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.projects
}

// Users returns the top-users panel
func (d *Dashboard) Users() *Panel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.users
}

// TimePanel returns the time-series panel of view
func (d *Dashboard) TimePanel(view types.ViewType) (*Panel, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.timePanels[view]
	return p, ok
}

// Panel looks a panel up by chart id; view selects among time panels and
// defaults to the active one.
func (d *Dashboard) Panel(id types.ChartID, view types.ViewType) (*Panel, bool) {
	switch id {
	case types.ChartIDProjects:
		p := d.Projects()
		return p, p != nil
	case types.ChartIDUsers:
		p := d.Users()
		return p, p != nil
	case types.ChartIDTime:
		if view == "" {
			view = d.Views.Active()
		}
		return d.TimePanel(view)
	default:
		return nil, false
	}
}

// TimePanelView is a time panel together with its visibility
type TimePanelView struct {
	View    types.ViewType
	Panel   *Panel
	Visible bool
}

// TimePanels returns the loaded time panels in the order of views.
// Only the active view is visible.
func (d *Dashboard) TimePanels(views []types.ViewType) []TimePanelView {
	active := d.Views.Active()

	d.mu.RLock()
	defer d.mu.RUnlock()

	var result []TimePanelView
	for _, v := range views {
		p, ok := d.timePanels[v]
		if !ok {
			continue
		}
		result = append(result, TimePanelView{View: v, Panel: p, Visible: v == active})
	}
	return result
}

// ViewButton is one entry of the view selector
type ViewButton struct {
	View     types.ViewType
	Label    string
	Selected bool
	Loaded   bool
}

// ViewButtons returns the selector state for views
func (d *Dashboard) ViewButtons(views []types.ViewType) []ViewButton {
	active := d.Views.Active()
	buttons := make([]ViewButton, 0, len(views))
	for _, v := range views {
		buttons = append(buttons, ViewButton{
			View:     v,
			Label:    v.Label(),
			Selected: v == active,
			Loaded:   d.Views.IsLoaded(v),
		})
	}
	return buttons
}

// Touch records an access at now
func (d *Dashboard) Touch(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastAccess = now
}

// LastAccess returns the time of the last access
func (d *Dashboard) LastAccess() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastAccess
}

// IsExpired reports whether the dashboard has been idle longer than ttl
func (d *Dashboard) IsExpired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(d.LastAccess()) > ttl
}
