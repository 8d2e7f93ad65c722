package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/adapter/http/middleware"
	"github.com/iho/finbook/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeInternalError logs the cause and responds with a generic body. The
// underlying error never reaches the client.
func writeInternalError(w http.ResponseWriter, message string, err error) {
	log.Error().Err(err).Msg(message)
	writeError(w, http.StatusInternalServerError, message, "")
}

// respondError maps a use case error onto the response. Validation and
// not-found causes are echoed to the caller; everything else is surfaced
// generically and logged.
func respondError(w http.ResponseWriter, err error, message string) {
	status := mapDomainError(err)
	if status == http.StatusInternalServerError {
		writeInternalError(w, message, err)
		return
	}

	writeError(w, status, message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReminderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTitleRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDueDateRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCategoryNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrYearRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// ownerID extracts the authenticated owner from the request context. A
// missing owner means the auth middleware did not run; treated as
// unauthorized.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetOwnerFromContext(r.Context())
	if !ok || id == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return "", false
	}
	return id, true
}
