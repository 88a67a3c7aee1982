package handlers

import (
	"net/http"
	"time"

	"github.com/seojun-dev/danwatch/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	Backend       string `json:"backend,omitempty"`
	ActiveWatches *int   `json:"active_watches,omitempty"`
	Epoch         string `json:"epoch,omitempty"`
	DefaultChats  *int   `json:"default_chats,omitempty"`
}

type infraResponse struct {
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the watch subsystem components.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := d.Registry.Count()
		chats := len(d.DefaultChatIDs)

		components := map[string]componentStatus{
			"ledger": {
				OK:      true,
				Backend: d.LedgerBackend,
			},
			"registry": {
				OK:            true,
				ActiveWatches: &active,
				Epoch:         d.Epoch.Format(time.RFC3339),
			},
			"telegram": {
				OK:           chats > 0,
				DefaultChats: &chats,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{Components: components})
	}
}
