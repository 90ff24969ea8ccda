package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/config"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/repository/postgres"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	fmt.Printf("Connecting to database at %s:%d...\n", cfg.Database.Host, cfg.Database.Port)

	db, err := postgres.NewDB(context.Background(), cfg.Database)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	defer db.Close()

	files, err := filepath.Glob("migrations/*.up.sql")
	if err != nil {
		panic(err)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Printf("Applying migration: %s\n", file)
		content, err := os.ReadFile(file)
		if err != nil {
			panic(err)
		}

		if _, err := db.Pool.Exec(context.Background(), string(content)); err != nil {
			// Migrations use IF NOT EXISTS so re-runs are harmless.
			fmt.Printf("Error applying %s: %v\n", file, err)
		} else {
			fmt.Printf("%s applied successfully\n", file)
		}
	}
}
