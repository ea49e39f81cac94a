package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body into req and validates it.
// On failure the response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetQueryParam retrieves a required query parameter.
// If it is missing the response has already been written and ok is false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(LogMsgMissingParam, "param", paramName)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetInt64QueryParam retrieves a required positive integer query parameter.
func GetInt64QueryParam(r *http.Request, w http.ResponseWriter, paramName string) (int64, bool) {
	raw, ok := GetQueryParam(r, w, paramName)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, paramName))
		return 0, false
	}
	return n, true
}

// GetOptionalIntQueryParam returns defaultValue when the parameter is absent.
// A present but malformed or negative value writes a 400 and returns ok false.
func GetOptionalIntQueryParam(r *http.Request, w http.ResponseWriter, paramName string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, paramName))
		return 0, false
	}
	return n, true
}

// GetInt64PathParam parses a positive integer chi URL parameter.
func GetInt64PathParam(r *http.Request, w http.ResponseWriter, paramName string) (int64, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, paramName), 10, 64)
	if err != nil || n <= 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathParam, paramName))
		return 0, false
	}
	return n, true
}
