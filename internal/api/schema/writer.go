package schema

import (
	"encoding/json"
	"net/http"
)

// Writer helps writing unified API responses
type Writer struct {
	InternalErrorHook func(err error)
}

// WriteJSONCode writes the JSON representation of value to the given response writer using the given HTTP status code
func (writer *Writer) WriteJSONCode(rw http.ResponseWriter, code int, value interface{}) {
	val, _ := json.Marshal(value)
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	rw.Write(val)
}

// WriteJSON writes the JSON representation of value to the given response writer.
// This method sends 200 OK as the HTTP status code; use WriteJSONCode to use a different one.
func (writer *Writer) WriteJSON(rw http.ResponseWriter, value interface{}) {
	writer.WriteJSONCode(rw, http.StatusOK, value)
}

// WriteError sends an error response carrying a single human-readable message
func (writer *Writer) WriteError(rw http.ResponseWriter, code int, message string) {
	writer.WriteJSONCode(rw, code, &ErrorResponse{Error: message})
}

// WriteValidationFailed sends the aggregated per-field validation failure response
func (writer *Writer) WriteValidationFailed(rw http.ResponseWriter, messages map[string][]string) {
	writer.WriteJSONCode(rw, http.StatusBadRequest, &ErrorResponse{
		Error:    "Validation failed",
		Messages: messages,
	})
}

// WriteInternalError processes an internal server error and writes it to the response
func (writer *Writer) WriteInternalError(rw http.ResponseWriter, err error) {
	writer.InternalErrorHook(err)
	writer.WriteError(rw, http.StatusInternalServerError, "Internal server error")
}
