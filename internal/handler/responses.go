package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/GridClash_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgEncounterNotFoundError = "Encounter not found"
	ErrMsgEncounterOverError     = "Encounter is already over"
	ErrMsgCreatureNotFoundError  = "Creature not found"
	ErrMsgCreatureDeadError      = "That creature is dead"
	ErrMsgNotCurrentTurnError    = "It is not that creature's turn"
	ErrMsgOutOfRangeError        = "Target is out of range"
	ErrMsgInvalidPositionError   = "Position is outside the grid"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgUnusableItemError      = "That item cannot be used"
	ErrMsgEmptyTurnOrderError    = "No creatures left in the turn order"
	ErrMsgEntityNotFoundError    = "Entity not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses without leaking internals.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrEncounterNotFound):
		return http.StatusNotFound, ErrMsgEncounterNotFoundError
	case errors.Is(err, domain.ErrEncounterOver):
		return http.StatusConflict, ErrMsgEncounterOverError
	case errors.Is(err, domain.ErrCreatureNotFound):
		return http.StatusNotFound, ErrMsgCreatureNotFoundError
	case errors.Is(err, domain.ErrCreatureDead):
		return http.StatusConflict, ErrMsgCreatureDeadError
	case errors.Is(err, domain.ErrNotCurrentTurn):
		return http.StatusConflict, ErrMsgNotCurrentTurnError
	case errors.Is(err, domain.ErrOutOfRange):
		return http.StatusBadRequest, ErrMsgOutOfRangeError
	case errors.Is(err, domain.ErrInvalidPosition):
		return http.StatusBadRequest, ErrMsgInvalidPositionError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrUnusableItem):
		return http.StatusBadRequest, ErrMsgUnusableItemError
	case errors.Is(err, domain.ErrEmptyTurnOrder):
		return http.StatusConflict, ErrMsgEmptyTurnOrderError
	case errors.Is(err, domain.ErrEntityNotFound):
		return http.StatusNotFound, ErrMsgEntityNotFoundError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps a service error onto an HTTP error response
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
