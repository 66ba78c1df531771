package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TimestampLayout is the ISO-8601 layout with millisecond precision used in
// every JSON body that carries a timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in UTC using [TimestampLayout].
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json; charset=utf-8" and
// writes the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.PingResponse{Timestamp: utils.Timestamp(time.Now())}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
