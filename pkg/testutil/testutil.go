// Package testutil provides helpers shared by the client and store tests,
// chief among them an in-process fake of the remote e-commerce API.
package testutil

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteJSON encodes v onto a test handler's response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeBody unmarshals a request body in a test handler, failing the test
// on malformed JSON.
func DecodeBody[T any](t *testing.T, r *http.Request) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r.Body).Decode(&v), "decode request body")
	return v
}
