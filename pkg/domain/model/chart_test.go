package model_test

import (
	"testing"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestIntegerTicks(t *testing.T) {
	testCases := []struct {
		max      int
		expected []int
	}{
		{max: 0, expected: []int{0, 1}},
		{max: -3, expected: []int{0, 1}},
		{max: 1, expected: []int{0, 1}},
		{max: 3, expected: []int{0, 1, 2, 3}},
		{max: 5, expected: []int{0, 1, 2, 3, 4, 5}},
		{max: 7, expected: []int{0, 2, 4, 6, 8}},
		{max: 10, expected: []int{0, 2, 4, 6, 8, 10}},
		{max: 11, expected: []int{0, 3, 6, 9, 12}},
		{max: 1000, expected: []int{0, 200, 400, 600, 800, 1000}},
	}

	for _, tc := range testCases {
		ticks := model.IntegerTicks(tc.max)
		gt.Equal(t, ticks, tc.expected)
		gt.True(t, ticks[len(ticks)-1] >= tc.max)
	}
}

func TestNewBarChartSpec(t *testing.T) {
	stats := model.ProjectStats{
		Projects:        []string{"en.wikipedia.org", "de.wikipedia.org", "commons.wikimedia.org"},
		EditsPerProject: []int{40, 12, 9},
	}
	s, err := stats.Series()
	gt.NoError(t, err)

	spec := model.NewBarChartSpec(types.ChartIDProjects, "Top projects", s)
	gt.Equal(t, spec.ID, types.ChartIDProjects)
	gt.Equal(t, spec.Kind, model.ChartKindBar)
	gt.Equal(t, spec.SeriesName, model.DefaultSeriesName)
	gt.True(t, spec.IntegerTicks)
	gt.True(t, spec.MaintainAspectRatio)

	// Arrays are carried element for element, in order
	gt.Equal(t, spec.Labels, stats.Projects)
	gt.Equal(t, spec.Counts, stats.EditsPerProject)
	gt.False(t, spec.IsEmpty())
}

func TestNewLineChartSpec(t *testing.T) {
	stats := model.TimeStats{
		ViewType:   types.ViewTypeDay,
		TimeArray:  []string{"2020-01-01", "2020-01-02", "2020-01-03"},
		EditsArray: []int{1, 0, 4},
	}
	s, err := stats.Series()
	gt.NoError(t, err)

	spec := model.NewLineChartSpec(types.ChartIDTime, "Edits over time", types.ViewTypeDay, s)
	gt.Equal(t, spec.Kind, model.ChartKindLine)
	gt.Equal(t, spec.View, types.ViewTypeDay)
	gt.False(t, spec.MaintainAspectRatio)
	gt.Equal(t, spec.Labels, stats.TimeArray)
	gt.Equal(t, spec.Counts, stats.EditsArray)
	gt.Equal(t, spec.YTicks(), []int{0, 1, 2, 3, 4})
}
