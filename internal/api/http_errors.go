package api

import (
	"errors"
	"net/http"

	"github.com/hugo-lorenzo-mato/quorum-hire/internal/core"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Category string `json:"category,omitempty"`
}

func httpStatusForDomainError(err error) (int, *core.DomainError) {
	var domErr *core.DomainError
	if !errors.As(err, &domErr) || domErr == nil {
		return http.StatusInternalServerError, nil
	}

	switch domErr.Category {
	case core.ErrCatValidation:
		return http.StatusBadRequest, domErr
	case core.ErrCatConfig:
		return http.StatusInternalServerError, domErr
	case core.ErrCatProvider:
		switch domErr.Code {
		case core.CodeRateLimitExceeded, core.CodeInsufficientQuota:
			return http.StatusTooManyRequests, domErr
		case core.CodeTimeout:
			return http.StatusGatewayTimeout, domErr
		default:
			return http.StatusBadGateway, domErr
		}
	default:
		return http.StatusInternalServerError, domErr
	}
}

func respondDomainError(s *Server, w http.ResponseWriter, err error) {
	status, domErr := httpStatusForDomainError(err)
	body := errorBody{Error: err.Error()}
	if domErr != nil {
		body.Code = domErr.Code
		body.Category = string(domErr.Category)
	}
	s.respondJSON(w, status, body)
}
