package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/httpserver/deps"
)

type notifyTestRequest struct {
	ChatIDs []string `json:"chat_ids"`
	Text    string   `json:"text"`
}

type notifyTestResponse struct {
	Status           string                  `json:"status"`
	Detail           string                  `json:"detail,omitempty"`
	TelegramResponse []domain.DeliveryResult `json:"telegram_response,omitempty"`
}

// NotifyTest sends a message through the real transport so operators
// can verify bot token and chat IDs without waiting for a listing.
func NotifyTest(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req notifyTestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}

		results, err := d.Notifier.Send(r.Context(), req.ChatIDs, req.Text)
		if err != nil {
			writeJSON(w, http.StatusOK, notifyTestResponse{
				Status: "failed",
				Detail: err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, notifyTestResponse{
			Status:           "success",
			TelegramResponse: results,
		})
	}
}
