package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

// Handle logs an application error. Cancellations caused by the client going
// away are logged as warnings.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger := ctxlog.From(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Warn("request cancelled", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}

// StatusCode maps an application error to the HTTP status returned to clients
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrSessionNotFound), errors.Is(err, model.ErrPanelNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidFilter), errors.Is(err, model.ErrInvalidView):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrBackendStatus), errors.Is(err, model.ErrBackendUnreachable),
		errors.Is(err, model.ErrMalformedPayload):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
