package main

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"morghi/server"
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	var cfg server.Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	s := server.New(cfg)
	if err := s.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
