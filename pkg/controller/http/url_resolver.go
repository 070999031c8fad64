package http

import (
	"net/http"
	"strings"
)

// GetBaseURL returns the public URL of the service.
// configuredURL wins when set; otherwise the URL is built from the request,
// honoring X-Forwarded-Proto and X-Forwarded-Host set by a reverse proxy.
func GetBaseURL(r *http.Request, configuredURL string) string {
	if configuredURL != "" {
		return strings.TrimRight(configuredURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	host := r.Host
	if forwardedHost := r.Header.Get("X-Forwarded-Host"); forwardedHost != "" {
		// X-Forwarded-Host may list several hosts; the first is the client's
		host = strings.TrimSpace(strings.Split(forwardedHost, ",")[0])
	}
	if host == "" {
		host = "localhost"
	}

	return scheme + "://" + host
}
