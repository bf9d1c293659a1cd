// Command main runs the database seeder for Ladle.
package main

import (
	"flag"
	"log"

	"ladle/internal/config"
	"ladle/internal/database"
	"ladle/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 10, "Number of users to create")
	recipesPerUser := flag.Int("recipes", 8, "Number of recipes per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "Load deterministic data from a YAML fixture file instead of generating")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *fixtures != "" {
		log.Printf("Loading fixtures from %s", *fixtures)
		if err := seed.LoadFixtures(db, *fixtures); err != nil {
			log.Fatalf("Fixture loading failed: %v", err)
		}
		log.Println("Fixtures loaded.")
		return
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:       *numUsers,
		RecipesPerUser: *recipesPerUser,
		ShouldClean:    *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
