package main

import (
	"accident-alert-service/internal/adapters/facilities"
	"accident-alert-service/internal/adapters/repositories"
	"accident-alert-service/internal/adapters/seed"
	"accident-alert-service/internal/config"
	"accident-alert-service/internal/platform/db"
	"accident-alert-service/internal/platform/logger"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// dbtool prepares a headquarters store: it creates the Postgres schema and
// loads the seed file into FACILITY_BACKEND (postgres or redis).
func main() {
	envErr := godotenv.Load()
	logger.Setup(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	seedPath := config.Get("SEED_PATH", "data/seeds/headquarters.yaml")
	hqs, err := seed.LoadFile(seedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load seed file")
	}

	backend := config.Get("FACILITY_BACKEND", "postgres")
	switch backend {
	case "postgres":
		err = seedPostgres(ctx, config.Get("DATABASE_URL", ""), hqs)
	case "redis":
		err = seedRedis(ctx, config.Get("REDIS_ADDR", "localhost:6379"), config.Get("REDIS_PREFIX", "hq"), hqs)
	default:
		err = fmt.Errorf("unsupported backend %q (want postgres or redis)", backend)
	}
	if err != nil {
		log.Fatal().Err(err).Str("backend", backend).Msg("Seeding failed")
	}

	log.Info().Str("backend", backend).Int("headquarters", len(hqs)).Msg("Seeding complete")
}

func seedPostgres(ctx context.Context, databaseURL string, hqs []seed.Headquarter) error {
	if strings.TrimSpace(databaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	database, err := db.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Info().Msg("Initializing database schema...")
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	log.Info().Msg("Seeding database...")
	return repositories.SeedHeadquarters(ctx, database, hqs)
}

func seedRedis(ctx context.Context, addr, prefix string, hqs []seed.Headquarter) error {
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return facilities.NewRedisFacilityStore(client, prefix).PutHeadquarters(ctx, hqs)
}
