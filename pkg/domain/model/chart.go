package model

import (
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
)

// ChartKind selects how a series is drawn
type ChartKind string

const (
	ChartKindBar  ChartKind = "bar"
	ChartKindLine ChartKind = "line"
)

// DefaultSeriesName is the dataset label shown in legends and tooltips
const DefaultSeriesName = "Number of edits"

// maxYTicks bounds the number of y-axis ticks, the zero tick included
const maxYTicks = 6

// ChartSpec is a render instruction: everything a renderer needs to draw one chart
type ChartSpec struct {
	ID         types.ChartID
	Kind       ChartKind
	Title      string
	SeriesName string
	Labels     []string
	Counts     []int
	// View is set for time-series charts only
	View types.ViewType

	IntegerTicks        bool
	MaintainAspectRatio bool
}

// NewBarChartSpec builds the spec of a top-N bar chart
func NewBarChartSpec(id types.ChartID, title string, s Series) *ChartSpec {
	return &ChartSpec{
		ID:                  id,
		Kind:                ChartKindBar,
		Title:               title,
		SeriesName:          DefaultSeriesName,
		Labels:              s.Labels,
		Counts:              s.Counts,
		IntegerTicks:        true,
		MaintainAspectRatio: true,
	}
}

// NewLineChartSpec builds the spec of the time-series chart for one view.
// Line charts fill a variable-height container, so the aspect ratio is not locked.
func NewLineChartSpec(id types.ChartID, title string, view types.ViewType, s Series) *ChartSpec {
	return &ChartSpec{
		ID:                  id,
		Kind:                ChartKindLine,
		Title:               title,
		SeriesName:          DefaultSeriesName,
		Labels:              s.Labels,
		Counts:              s.Counts,
		View:                view,
		IntegerTicks:        true,
		MaintainAspectRatio: false,
	}
}

// Series returns the labels and counts of the spec
func (c *ChartSpec) Series() Series {
	return Series{Labels: c.Labels, Counts: c.Counts}
}

// IsEmpty reports whether there is nothing to plot
func (c *ChartSpec) IsEmpty() bool {
	return len(c.Labels) == 0
}

// YTicks returns the y-axis tick values, starting at zero
func (c *ChartSpec) YTicks() []int {
	return IntegerTicks(c.Series().Max())
}

// IntegerTicks returns evenly spaced whole-number ticks from 0 up to the first
// multiple of the step that is >= max. Edit counts are never fractional, so
// no tick ever lands between two integers.
func IntegerTicks(max int) []int {
	if max <= 0 {
		return []int{0, 1}
	}
	step := (max + maxYTicks - 2) / (maxYTicks - 1)
	if step < 1 {
		step = 1
	}
	top := ((max + step - 1) / step) * step

	ticks := make([]int, 0, top/step+1)
	for v := 0; v <= top; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}
