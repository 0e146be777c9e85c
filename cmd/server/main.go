package main

import (
	"accident-alert-service/internal/adapters/cache"
	"accident-alert-service/internal/adapters/facilities"
	"accident-alert-service/internal/adapters/geocode"
	"accident-alert-service/internal/adapters/repositories"
	"accident-alert-service/internal/adapters/seed"
	"accident-alert-service/internal/api"
	"accident-alert-service/internal/platform/db"
	"accident-alert-service/internal/platform/logger"
	"accident-alert-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Addr         string        `short:"a" long:"addr"          env:"LISTEN_ADDRESS"   description:"Address to listen on"                  default:"0.0.0.0"`
	Port         int           `short:"p" long:"port"          env:"PORT"             description:"Port to listen on"                     default:"8080"`
	Backend      string        `short:"b" long:"backend"       env:"FACILITY_BACKEND" description:"Headquarters store"                    default:"postgres" choice:"postgres" choice:"redis" choice:"memory"`
	DatabaseURL  string        `long:"database-url"            env:"DATABASE_URL"     description:"Postgres connection string"`
	RedisAddr    string        `long:"redis-addr"              env:"REDIS_ADDR"       description:"Redis address"                         default:"localhost:6379"`
	RedisPrefix  string        `long:"redis-prefix"            env:"REDIS_PREFIX"     description:"Key prefix for headquarters hashes"    default:"hq"`
	SeedPath     string        `long:"seed"                    env:"SEED_PATH"        description:"Headquarters seed file (memory backend)" default:"data/seeds/headquarters.yaml"`
	ORSKey       string        `long:"ors-api-key"             env:"ORS_API_KEY"      description:"OpenRouteService key for reverse geocoding"`
	GeocodeCache string        `long:"geocode-cache"           env:"GEOCODE_CACHE"    description:"Reverse geocode cache"                 default:"none" choice:"none" choice:"postgres" choice:"redis"`
	GeocodeTTL   time.Duration `long:"geocode-cache-ttl"       env:"GEOCODE_CACHE_TTL" description:"Expiry of redis reverse geocode entries" default:"168h"`
	FetchTimeout time.Duration `long:"fetch-timeout"           env:"FETCH_TIMEOUT"    description:"Timeout for each headquarters read"    default:"10s"`
	LogLevel     string        `long:"log-level"               env:"LOG_LEVEL"        description:"Log level"                             default:"info"`
	LogFormat    string        `long:"log-format"              env:"LOG_FORMAT"       description:"Log format"                            default:"json" choice:"json" choice:"console"`
}

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger.Setup(opts.LogLevel, opts.LogFormat)
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	ctx := context.Background()

	var database *sql.DB
	if strings.TrimSpace(opts.DatabaseURL) != "" {
		var err error
		database, err = db.Open(ctx, opts.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open database")
		}
		defer database.Close()

		if err := repositories.InitSchema(ctx, database); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize schema")
		}
	}

	store, err := buildFacilityStore(ctx, opts, database)
	if err != nil {
		log.Fatal().Err(err).Str("backend", opts.Backend).Msg("Failed to set up headquarters store")
	}

	var reports ports.ReportRepository
	if database != nil {
		reports = repositories.NewPostgresReportRepository(database)
	} else {
		log.Warn().Msg("DATABASE_URL not set, reports are kept in memory")
		reports = repositories.NewMemoryReportRepository()
	}

	geocoder, err := buildGeocoder(ctx, opts, database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up reverse geocoder")
	}

	router := api.NewRouter(api.Deps{
		Store:    facilities.WithTimeout(store, opts.FetchTimeout),
		Reports:  reports,
		Geocoder: geocoder,
	})

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("backend", opts.Backend).
		Bool("geocoding", geocoder != nil).
		Msg("Server listening")

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func buildFacilityStore(ctx context.Context, opts Options, database *sql.DB) (ports.FacilityStore, error) {
	switch opts.Backend {
	case "postgres":
		if database == nil {
			return nil, errors.New("DATABASE_URL is required for the postgres backend")
		}
		return repositories.NewPostgresFacilityStore(database), nil

	case "redis":
		client, err := openRedis(ctx, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		return facilities.NewRedisFacilityStore(client, opts.RedisPrefix), nil

	case "memory":
		store := facilities.NewMemoryFacilityStore()
		hqs, err := seed.LoadFile(opts.SeedPath)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", opts.SeedPath).Msg("Seed file not found, starting with no headquarters")
			return store, nil
		}
		if err != nil {
			return nil, err
		}
		if err := store.AddHeadquarters(hqs); err != nil {
			return nil, err
		}
		log.Info().Int("headquarters", len(hqs)).Str("path", opts.SeedPath).Msg("Loaded seed headquarters")
		return store, nil
	}

	return nil, fmt.Errorf("unknown backend %q", opts.Backend)
}

// buildGeocoder returns nil when no ORS key is configured.
func buildGeocoder(ctx context.Context, opts Options, database *sql.DB) (ports.ReverseGeocoder, error) {
	if strings.TrimSpace(opts.ORSKey) == "" {
		log.Warn().Msg("ORS_API_KEY not set, alerts without an area label are reported as unknown")
		return nil, nil
	}

	ors, err := geocode.NewORSReverseGeocoder(opts.ORSKey)
	if err != nil {
		return nil, err
	}

	switch opts.GeocodeCache {
	case "postgres":
		if database == nil {
			return nil, errors.New("DATABASE_URL is required for the postgres geocode cache")
		}
		return geocode.NewCachedReverseGeocoder(ors, cache.NewSQLReverseGeocodeCache(database)), nil

	case "redis":
		client, err := openRedis(ctx, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		return geocode.NewCachedReverseGeocoder(ors, cache.NewRedisReverseGeocodeCache(client, "", opts.GeocodeTTL)), nil
	}

	return ors, nil
}

func openRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
