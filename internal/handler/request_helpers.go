package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/GridClash_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and
// returns appropriate errors. If this function returns an error, the HTTP
// response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// URLParamUUID parses a UUID path parameter. If parsing fails, the HTTP
// response has already been written and the handler should return.
func URLParamUUID(r *http.Request, w http.ResponseWriter, paramName string) (uuid.UUID, bool) {
	log := logger.FromContext(r.Context())

	raw := chi.URLParam(r, paramName)
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Warn("Invalid UUID path parameter", "param", paramName, "value", raw)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidID, paramName))
		return uuid.Nil, false
	}
	return id, true
}

// parseBodyUUID parses a UUID field taken from a request body. If parsing
// fails, the HTTP response has already been written.
func parseBodyUUID(w http.ResponseWriter, r *http.Request, raw, fieldName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid UUID field", "field", fieldName, "value", raw)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidID, fieldName))
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDPair parses two UUID body fields in one go.
func parseUUIDPair(w http.ResponseWriter, r *http.Request, rawA, rawB string) (uuid.UUID, uuid.UUID, bool) {
	a, err := uuid.Parse(rawA)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return uuid.Nil, uuid.Nil, false
	}
	b, err := uuid.Parse(rawB)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return uuid.Nil, uuid.Nil, false
	}
	return a, b, true
}
