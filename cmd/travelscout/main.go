package main

import (
	"log"

	"github.com/asifrahman/travelscout/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ travelscout failed to start: %v", err)
	}
}
