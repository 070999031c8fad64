package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// SessionID identifies one opened dashboard page
type SessionID string

// String returns the string representation
func (id SessionID) String() string {
	return string(id)
}

// Validate checks that the ID is a well-formed UUID
func (id SessionID) Validate() error {
	if id == "" {
		return goerr.New("session ID is empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid session ID", goerr.V("id", id))
	}
	return nil
}

// NewSessionID creates a new SessionID using UUID v7
func NewSessionID() (SessionID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate session ID")
	}
	return SessionID(id.String()), nil
}

// ChartID identifies a chart panel. It doubles as the canvas element id on the page.
type ChartID string

const (
	ChartIDProjects ChartID = "projectsChart"
	ChartIDUsers    ChartID = "usersChart"
	ChartIDTime     ChartID = "timeChart"
)

// String returns the string representation
func (id ChartID) String() string {
	return string(id)
}

// IsValid checks if the chart ID is one of the known panels
func (id ChartID) IsValid() bool {
	switch id {
	case ChartIDProjects, ChartIDUsers, ChartIDTime:
		return true
	default:
		return false
	}
}

// Endpoint is a path of the backend stats API
type Endpoint string

const (
	EndpointTopProjects Endpoint = "/api/top_project_stats/"
	EndpointTopUsers    Endpoint = "/api/top_user_stats/"
	EndpointTimeStats   Endpoint = "/api/time_stats/"
)

// String returns the string representation
func (e Endpoint) String() string {
	return string(e)
}
