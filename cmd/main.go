package main

import (
	"context"
	"log"
	"os"

	"github.com/krazyjakee/uk-booking-calendar/res/schedule"
	"github.com/krazyjakee/uk-booking-calendar/res/store/postgresql"

	"github.com/joho/godotenv"
)

var logger = log.New(os.Stdout, "(cmd/main.go)", log.LstdFlags|log.LUTC|log.Llongfile)

func main() {
	// Load .env file in development
	// Try multiple locations: current dir, uk-booking-calendar/, parent dir
	err := godotenv.Load()
	if err != nil {
		err = godotenv.Load("uk-booking-calendar/.env")
	}
	if err != nil {
		err = godotenv.Load(".env")
	}
	if err != nil {
		logger.Printf("Note: .env file not found, using system environment variables")
	}

	dbURL := readRequiredEnvVar("DATABASE_POSTGRES_URL")
	storeInstance, err := postgresql.Connect(dbURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	seeded, err := storeInstance.SeedUkPublicHolidays(ctx)
	if err != nil {
		logger.Fatalf("Failed to seed public holidays: %v", err)
	}
	logger.Printf("Public holiday seed complete: %d rows added", seeded)

	// Provision a default Mon-Fri schedule when BOOTSTRAP_TRADESMAN_ID is set
	if tradesmanID := os.Getenv("BOOTSTRAP_TRADESMAN_ID"); tradesmanID != "" {
		coordinator := schedule.NewCoordinator(schedule.CoordinatorConfig{
			Store:  storeInstance,
			Logger: logger,
		})
		if _, err := coordinator.UpdateProfile(ctx, tradesmanID, schedule.UpdateProfileInput{}); err != nil {
			logger.Fatalf("Failed to ensure profile for %s: %v", tradesmanID, err)
		}
		if err := storeInstance.EnsureDefaultWorkingHours(ctx, tradesmanID); err != nil {
			logger.Fatalf("Failed to ensure default working hours for %s: %v", tradesmanID, err)
		}
		logger.Printf("Checked default working hours for tradesman %s", tradesmanID)
	}
}

func readRequiredEnvVar(name string) string {
	val, ok := os.LookupEnv(name)
	if !ok {
		logger.Fatalf("Env variable not set: %s", name)
	}
	return val
}
