package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seojun-dev/danwatch/internal/domain"
	"github.com/seojun-dev/danwatch/internal/httpserver/deps"
	"github.com/seojun-dev/danwatch/internal/logger"
)

type watchRequest struct {
	Location string `json:"location"`
	Keyword  string `json:"keyword"`
	MinPrice *int   `json:"min_price"`
	MaxPrice *int   `json:"max_price"`
}

func (req watchRequest) filter() domain.Filter {
	return domain.Filter{
		Location: req.Location,
		Keyword:  req.Keyword,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}
}

func (req watchRequest) validate() string {
	if req.Location == "" {
		return "location is required"
	}
	if req.Keyword == "" {
		return "keyword is required"
	}
	return ""
}

type watchResponse struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Keyword  string `json:"keyword"`
	MinPrice *int   `json:"min_price"`
	MaxPrice *int   `json:"max_price"`
}

// StartWatch spawns a monitor for the requested filter. Monitors live
// on the process context, not the request's.
func StartWatch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req watchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		if detail := req.validate(); detail != "" {
			writeBadRequest(w, detail)
			return
		}

		result := d.Registry.Start(d.BaseCtx, req.filter())
		d.Logger.Info("watch requested",
			logger.String("filter", req.filter().Key()),
			logger.String("result", string(result)))

		writeJSON(w, http.StatusOK, watchResponse{
			Status:   string(result),
			Location: req.Location,
			Keyword:  req.Keyword,
			MinPrice: req.MinPrice,
			MaxPrice: req.MaxPrice,
		})
	}
}

// StopWatch requests cancellation of the filter's monitor.
func StopWatch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req watchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		if detail := req.validate(); detail != "" {
			writeBadRequest(w, detail)
			return
		}

		result := d.Registry.Stop(req.filter())
		writeJSON(w, http.StatusOK, map[string]string{"status": string(result)})
	}
}

// ActiveWatches enumerates live monitors keyed by filter key.
func ActiveWatches(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Registry.Active())
	}
}
