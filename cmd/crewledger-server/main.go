package main

import (
	"log"
	"os"

	"github.com/solarwork/crewledger/internal/config"
	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := os.Getenv("CREWLEDGER_DB")
	if dbPath == "" {
		dbPath = cfg.DBPath()
	}

	logCfg := logger.DefaultConfig()
	logCfg.Console = true
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to init logging: %v", err)
	}
	defer logger.Close()

	srv, err := server.New(dbPath, os.Getenv("CREWLEDGER_API_TOKEN"))
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("CrewLedger server starting on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
