package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seojun-dev/danwatch/internal/httpserver/deps"
	"github.com/seojun-dev/danwatch/internal/httpserver/handlers"
)

func init() { Register(registerScan) }

func registerScan(r chi.Router, d deps.Deps) {
	r.Post("/scan", handlers.Scan(d))
	r.Post("/test/telegram", handlers.NotifyTest(d))
}
