package transport

import (
	"encoding/json"
	"net/http"

	"github.com/crymall/canteen-service/pkg/api"
)

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteAPIError writes an APIError response using its embedded status
// code and flat {"error": ...} body.
func WriteAPIError(w http.ResponseWriter, apiErr *api.APIError) {
	WriteJSON(w, apiErr.Status, apiErr)
}
