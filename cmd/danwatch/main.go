package main

import (
	"log"

	"github.com/seojun-dev/danwatch/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ danwatch failed to start: %v", err)
	}
}
