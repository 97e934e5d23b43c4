// Command main seeds the development database with demo data.
package main

import (
	"flag"
	"log"

	"chirp/internal/bootstrap"
	"chirp/internal/config"
	"chirp/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	postsPerUser := flag.Int("posts", 8, "posts per user")
	maxDays := flag.Int("days", 60, "spread post timestamps over this many days")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		Users:        *users,
		PostsPerUser: *postsPerUser,
		MaxDays:      *maxDays,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
