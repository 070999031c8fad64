package usecase

import (
	"net/url"
	"strings"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
)

// SearchLocation returns where a search form submission redirects to:
// the dashboard of the hashtag with lang, startdate and enddate carried over
// as entered. A blank term leads back to the search page. Dates are checked
// when the dashboard is opened, not here.
func SearchLocation(form url.Values) string {
	raw := form.Get("search")
	if model.NormalizeTag(raw) == "" {
		return "/"
	}

	filter := model.Filter{
		Lang:      strings.TrimSpace(form.Get("lang")),
		StartDate: strings.TrimSpace(form.Get("startdate")),
		EndDate:   strings.TrimSpace(form.Get("enddate")),
	}
	return model.SearchPath(raw, filter)
}
