package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mathboard/internal/config"
)

// ParseJSON decodes JSON from the request body into dest. The body size
// is capped; requests here carry a few numbers and IDs. Unknown fields
// are rejected so typos surface as 400s instead of silently-ignored input.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
