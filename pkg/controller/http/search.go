package http

import (
	"net/http"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/usecase"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index.html", &indexPage{Filter: model.Filter{}})
}

// handleSearch redirects a search form submission to the dashboard of the hashtag
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, usecase.SearchLocation(r.URL.Query()), http.StatusFound)
}
