package handlers

import (
	"net/http"

	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/httpserver/deps"
)

// Locations returns the fixed region list clients can watch.
func Locations(_ deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{
			"locations": domain.Locations,
		})
	}
}
