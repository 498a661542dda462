// Command migrate applies the database schema.
package main

import (
	"fmt"
	"log"

	"tapestry/internal/config"
	"tapestry/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	log.Println("schema applied")
	return nil
}
