// Command seed populates the database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"tapestry/internal/config"
	"tapestry/internal/database"
	"tapestry/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.NumUsers, "users", opts.NumUsers, "number of users to create")
	flag.IntVar(&opts.NumThreads, "threads", opts.NumThreads, "number of top-level threads to create")
	flag.IntVar(&opts.NumReplies, "replies", opts.NumReplies, "number of replies to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := seed.Run(context.Background(), db, opts); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d users, %d threads, %d replies", opts.NumUsers, opts.NumThreads, opts.NumReplies)
}
