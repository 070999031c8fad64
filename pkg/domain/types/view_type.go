package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ViewType is the time-bucket granularity of the time-series chart
type ViewType string

const (
	ViewTypeDay   ViewType = "day"
	ViewTypeWeek  ViewType = "week"
	ViewTypeMonth ViewType = "month"
	ViewTypeYear  ViewType = "year"
)

// AllViewTypes lists view types from the finest to the coarsest granularity
func AllViewTypes() []ViewType {
	return []ViewType{ViewTypeDay, ViewTypeWeek, ViewTypeMonth, ViewTypeYear}
}

// String returns the string representation
func (v ViewType) String() string {
	return string(v)
}

// IsValid checks if the view type is known
func (v ViewType) IsValid() bool {
	switch v {
	case ViewTypeDay, ViewTypeWeek, ViewTypeMonth, ViewTypeYear:
		return true
	default:
		return false
	}
}

// Label returns a human readable name for buttons and titles
func (v ViewType) Label() string {
	switch v {
	case ViewTypeDay:
		return "Daily"
	case ViewTypeWeek:
		return "Weekly"
	case ViewTypeMonth:
		return "Monthly"
	case ViewTypeYear:
		return "Yearly"
	default:
		return string(v)
	}
}

// ParseViewType converts a query parameter into a ViewType
func ParseViewType(s string) (ViewType, error) {
	v := ViewType(s)
	if !v.IsValid() {
		return "", goerr.New("invalid view type", goerr.V("view_type", s))
	}
	return v, nil
}
