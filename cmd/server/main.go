// Package main implements the entry point for the careboard API server,
// which manages patient records and the collaborative task board backing
// the care teams.
package main

import (
	"log"
)

// main loads configuration, wires the application and runs the HTTP server
// until a shutdown signal arrives.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
