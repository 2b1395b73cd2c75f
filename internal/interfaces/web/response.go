package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-portal/internal/domain/fantasy"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "football-portal"
)

var errTooManyRequests = errors.New("too many requests")

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(_ context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := bannerMessage(err)
	if mapped.HTTPStatus == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "60")
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, fantasy.ErrInvalidSquadSize),
		errors.Is(err, fantasy.ErrExceededBudget),
		errors.Is(err, fantasy.ErrExceededTeamLimit),
		errors.Is(err, fantasy.ErrInsufficientFormation),
		errors.Is(err, fantasy.ErrUnknownPlayerPosition),
		errors.Is(err, fantasy.ErrDuplicatePlayerInSquad):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidSquad",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, errTooManyRequests):
		return mappedError{
			HTTPStatus: http.StatusTooManyRequests,
			Reason:     "rateLimitExceeded",
			Status:     "RESOURCE_EXHAUSTED",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return mappedError{
			HTTPStatus: http.StatusGatewayTimeout,
			Reason:     "deadlineExceeded",
			Status:     "DEADLINE_EXCEEDED",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}

// bannerMessage is the text shown to the user for err: the backend's own
// explanation when it sent one, otherwise a fixed message per error class.
func bannerMessage(err error) string {
	if err == nil {
		return ""
	}
	if hints := crerr.GetAllHints(err); len(hints) > 0 {
		if hint := strings.TrimSpace(hints[0]); hint != "" {
			return hint
		}
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		if detail := inputDetail(err); detail != "" {
			return detail
		}
		return "Please check the form and try again."
	case errors.Is(err, usecase.ErrUnauthorized):
		return "Please sign in to continue."
	case errors.Is(err, usecase.ErrNotFound):
		return "We couldn't find what you were looking for."
	case errors.Is(err, errTooManyRequests):
		return "Too many attempts. Please wait a minute and try again."
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return "Football data is unavailable right now. Please try again shortly."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "The request took too long. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// inputDetail returns the explanation attached to an invalid-input error,
// skipping raw validator output.
func inputDetail(err error) string {
	marker := usecase.ErrInvalidInput.Error() + ": "
	text := err.Error()
	i := strings.LastIndex(text, marker)
	if i < 0 {
		return ""
	}
	detail := strings.TrimSpace(text[i+len(marker):])
	if detail == "" || strings.Contains(detail, "Error:Field validation") {
		return ""
	}
	return strings.ToUpper(detail[:1]) + detail[1:]
}
