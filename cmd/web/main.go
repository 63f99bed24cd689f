package main

import (
	"log"

	"yamdb_backend/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
