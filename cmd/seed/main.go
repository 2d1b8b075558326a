// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"log"

	"spotlight/internal/config"
	"spotlight/internal/database"
	"spotlight/internal/seed"
)

func main() {
	users := flag.Int("users", 12, "number of users to create")
	posts := flag.Int("posts", 4, "posts per user")
	maxDays := flag.Int("max-days", 60, "spread timestamps over this many days")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		Users:        *users,
		PostsPerUser: *posts,
		MaxDays:      *maxDays,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
