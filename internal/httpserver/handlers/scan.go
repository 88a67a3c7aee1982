package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seojun-dev/danwatch/internal/httpserver/deps"
	"github.com/seojun-dev/danwatch/internal/logger"
)

type scanRequest struct {
	watchRequest
	Days int `json:"days"`
}

type scanResponse struct {
	Status    string   `json:"status"`
	SentCount int      `json:"sent_count"`
	SentIDs   []string `json:"sent_ids"`
}

// Scan runs a one-shot, non-deduplicated notification sweep over the
// lookback window.
func Scan(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := scanRequest{Days: 1}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		if detail := req.validate(); detail != "" {
			writeBadRequest(w, detail)
			return
		}
		if req.Days <= 0 {
			writeBadRequest(w, "days must be positive")
			return
		}

		result, err := d.Scanner.Scan(r.Context(), req.filter(), req.Days)
		if err != nil {
			d.Logger.Error("scan failed",
				logger.String("filter", req.filter().Key()),
				logger.Error(err))
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "error",
				"detail": err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, scanResponse{
			Status:    "success",
			SentCount: result.SentCount,
			SentIDs:   result.SentIDs,
		})
	}
}
