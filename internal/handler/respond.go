package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sportivo/platform/internal/domain"
)

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondSuccess writes a 200 success envelope, merging extra fields into it.
func RespondSuccess(w http.ResponseWriter, message string, extra map[string]interface{}) {
	payload := map[string]interface{}{"success": true}
	if message != "" {
		payload["message"] = message
	}
	for k, v := range extra {
		payload[k] = v
	}
	RespondJSON(w, http.StatusOK, payload)
}

// RespondError writes the failure envelope. AppErrors map deterministically
// to their status; anything else is flattened to a generic 500 so internal
// error text never reaches the client.
func RespondError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*domain.AppError); ok {
		RespondJSON(w, appErr.Status, map[string]interface{}{
			"success": false,
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}
	RespondJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"code":    "INTERNAL_ERROR",
		"message": "internal server error",
	})
}

// DecodeJSON reads and decodes a JSON request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
