package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seojun-dev/danwatch/internal/httpserver/deps"
	"github.com/seojun-dev/danwatch/internal/httpserver/handlers"
)

func init() { Register(registerWatch) }

func registerWatch(r chi.Router, d deps.Deps) {
	r.Post("/watch", handlers.StartWatch(d))
	r.Post("/stop", handlers.StopWatch(d))
	r.Get("/active", handlers.ActiveWatches(d))
}
