package model

import (
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Series is an ordered sequence of (label, count) pairs
type Series struct {
	Labels []string
	Counts []int
}

// Len returns the number of points
func (s Series) Len() int {
	return len(s.Labels)
}

// Max returns the largest count, 0 for an empty series
func (s Series) Max() int {
	m := 0
	for _, c := range s.Counts {
		if c > m {
			m = c
		}
	}
	return m
}

// Total returns the sum of all counts
func (s Series) Total() int {
	total := 0
	for _, c := range s.Counts {
		total += c
	}
	return total
}

func newSeries(endpoint types.Endpoint, labels []string, counts []int) (Series, error) {
	if labels == nil || counts == nil {
		return Series{}, goerr.Wrap(ErrMalformedPayload, "missing series fields",
			goerr.V("endpoint", endpoint),
			goerr.V("has_labels", labels != nil),
			goerr.V("has_counts", counts != nil))
	}
	if len(labels) != len(counts) {
		return Series{}, goerr.Wrap(ErrMalformedPayload, "series length mismatch",
			goerr.V("endpoint", endpoint),
			goerr.V("labels", len(labels)),
			goerr.V("counts", len(counts)))
	}
	return Series{Labels: labels, Counts: counts}, nil
}

// ProjectStats is the payload of the top-projects endpoint
type ProjectStats struct {
	Projects        []string `json:"projects"`
	EditsPerProject []int    `json:"edits_per_project"`
}

// Series validates the payload and returns it as a series
func (s *ProjectStats) Series() (Series, error) {
	return newSeries(types.EndpointTopProjects, s.Projects, s.EditsPerProject)
}

// UserStats is the payload of the top-users endpoint
type UserStats struct {
	Usernames    []string `json:"usernames"`
	EditsPerUser []int    `json:"edits_per_user"`
}

// Series validates the payload and returns it as a series
func (s *UserStats) Series() (Series, error) {
	return newSeries(types.EndpointTopUsers, s.Usernames, s.EditsPerUser)
}

// TimeStats is the payload of the time-series endpoint
type TimeStats struct {
	ViewType   types.ViewType `json:"view_type,omitempty"`
	TimeArray  []string       `json:"time_array"`
	EditsArray []int          `json:"edits_array"`
}

// Series validates the payload and returns it as a series
func (s *TimeStats) Series() (Series, error) {
	return newSeries(types.EndpointTimeStats, s.TimeArray, s.EditsArray)
}
