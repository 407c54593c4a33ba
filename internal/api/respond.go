package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/centsplit/centsplit/internal/auth"
	"github.com/centsplit/centsplit/internal/money"
	"github.com/centsplit/centsplit/internal/service"
	"github.com/centsplit/centsplit/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses: validation to 400,
// dangling references to 422, missing resources to 404, authorization
// to 401/403, conflicts to 409.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var unknownUser *service.UnknownUserError
	var unknownParticipant *service.UnknownParticipantError
	var unknownGroup *service.UnknownGroupError
	var duplicateSplit *service.DuplicateSplitUserError

	switch {
	case errors.Is(err, service.ErrInvalidGroupName),
		errors.Is(err, service.ErrNonPositiveAmount),
		errors.Is(err, service.ErrEmptySplits),
		errors.Is(err, service.ErrInvalidSplitSum),
		errors.Is(err, service.ErrSelfSettlement),
		errors.Is(err, service.ErrMissingFields),
		errors.As(err, &duplicateSplit),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest

	case errors.As(err, &unknownUser),
		errors.As(err, &unknownParticipant),
		errors.As(err, &unknownGroup):
		status = http.StatusUnprocessableEntity

	case errors.Is(err, storage.ErrGroupNotFound),
		errors.Is(err, storage.ErrExpenseNotFound):
		status = http.StatusNotFound

	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized

	case errors.Is(err, service.ErrNotAGroupMember),
		errors.Is(err, service.ErrNotGroupAdmin),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrCreatorRemoval):
		status = http.StatusForbidden

	case errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, service.ErrGroupHasExpenses):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("Internal error", "error", err)
		message = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
