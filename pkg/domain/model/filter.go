package model

import (
	"net/url"
	"strings"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DateLayout is the layout of startdate and enddate parameters
const DateLayout = "2006-01-02"

// Filter holds the search form values. An empty field means unset.
type Filter struct {
	Query     string
	Lang      string
	StartDate string
	EndDate   string
	Project   string
	User      string
}

// FilterFromValues reads a filter from request query values
func FilterFromValues(v url.Values) Filter {
	return Filter{
		Query:     strings.TrimSpace(v.Get("query")),
		Lang:      strings.TrimSpace(v.Get("lang")),
		StartDate: strings.TrimSpace(v.Get("startdate")),
		EndDate:   strings.TrimSpace(v.Get("enddate")),
		Project:   strings.TrimSpace(v.Get("project")),
		User:      strings.TrimSpace(v.Get("user")),
	}
}

// Validate checks date fields. Everything else is free text.
func (f Filter) Validate() error {
	start, err := parseDate("startdate", f.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("enddate", f.EndDate)
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return goerr.Wrap(ErrInvalidFilter, "enddate is before startdate",
			goerr.V("startdate", f.StartDate),
			goerr.V("enddate", f.EndDate))
	}
	return nil
}

// DateRange returns the parsed dates; zero values for unset or unparsable fields
func (f Filter) DateRange() (time.Time, time.Time) {
	start, _ := parseDate("startdate", f.StartDate)
	end, _ := parseDate("enddate", f.EndDate)
	return start, end
}

func parseDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrInvalidFilter, "invalid date",
			goerr.V("field", name),
			goerr.V("value", value))
	}
	return t, nil
}

type queryParam struct {
	key   string
	value string
}

// buildQueryString joins the non-empty params in order. The first separator is "?".
func buildQueryString(params []queryParam) string {
	var b strings.Builder
	for _, p := range params {
		if p.value == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// SearchQueryString builds the query string carried by the search redirect:
// lang, startdate and enddate in that order, unset ones omitted.
func (f Filter) SearchQueryString() string {
	return buildQueryString([]queryParam{
		{"lang", f.Lang},
		{"startdate", f.StartDate},
		{"enddate", f.EndDate},
	})
}

// DashboardQueryString is SearchQueryString plus the project and user narrowing
func (f Filter) DashboardQueryString() string {
	return buildQueryString([]queryParam{
		{"lang", f.Lang},
		{"startdate", f.StartDate},
		{"enddate", f.EndDate},
		{"project", f.Project},
		{"user", f.User},
	})
}

// APIValues returns the parameters sent to the stats backend.
// view is only set for time-series requests.
func (f Filter) APIValues(view types.ViewType) url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("query", f.Query)
	set("lang", f.Lang)
	set("startdate", f.StartDate)
	set("enddate", f.EndDate)
	set("project", f.Project)
	set("user", f.User)
	set("view_type", view.String())
	return v
}

// NormalizeTag trims a search term and strips one leading '#'
func NormalizeTag(term string) string {
	term = strings.TrimSpace(term)
	return strings.TrimPrefix(term, "#")
}

// SearchPath returns the dashboard location for a search term
func SearchPath(term string, f Filter) string {
	return "/hashtags/search/" + url.PathEscape(NormalizeTag(term)) + f.SearchQueryString()
}

// DefaultViewType picks a granularity from the span of a date range:
// days below 90 days, months below 1095 days, years otherwise.
func DefaultViewType(start, end time.Time) types.ViewType {
	days := int(end.Sub(start).Hours() / 24)
	switch {
	case days < 90:
		return types.ViewTypeDay
	case days < 1095:
		return types.ViewTypeMonth
	default:
		return types.ViewTypeYear
	}
}
