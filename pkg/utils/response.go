package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK writes a success envelope, merging extra payload fields.
func OK(w http.ResponseWriter, payload map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	JSON(w, http.StatusOK, body)
}

// Error writes a failure envelope with an "error" field.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]interface{}{"success": false, "error": msg})
}

// Message writes a failure envelope with a "message" field. Some endpoints
// use this key instead of "error"; the clients read both.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]interface{}{"success": false, "message": msg})
}
