package httpadapter

import (
	"net/http"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/usecase"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrSessionMismatch):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case domain.IsKind(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage picks the user-facing text. Client errors keep their
// detail; auth failures name the credential source without echoing the
// credential; everything else is generic unless the app runs in
// development mode.
func (rt *Router) errorMessage(status int, err error) string {
	switch {
	case status == http.StatusUnauthorized:
		if rt.cfg.APIKeyMode == usecase.KeyModeServer {
			return "Server API key invalid"
		}
		return "Invalid API key"
	case status == http.StatusTooManyRequests:
		return "Rate limit exceeded. Try again later."
	case status == http.StatusBadRequest:
		return err.Error()
	default:
		if rt.cfg.Development() {
			return err.Error()
		}
		return "Processing error occurred"
	}
}
