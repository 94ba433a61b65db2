package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	RunAddress     string        // address and port the server binds to
	DatabaseURI    string        // database connection URI
	AgencyAddress  string        // delivery agency tracking API base URL
	AgencyAPIToken string        // delivery agency API token
	JWTSecret      string        // JWT signing secret
	JWTTokenTTL    time.Duration // JWT token lifetime
	LogLevel       string        // logging level

	// Worker pool settings
	WorkerPoolSize     int           // number of reconciliation workers
	WorkerQueueSize    int           // open-shipment queue size
	WorkerScanInterval time.Duration // interval between open-shipment scans

	// Validation
	MinPasswordLength int // minimum staff password length
}

// Load reads the configuration from a .env file, flags and environment
// variables. Precedence: env vars > flags > defaults.
func Load() (*Config, error) {
	// best effort, env vars win anyway
	godotenv.Load()

	cfg := &Config{
		JWTTokenTTL:        24 * time.Hour,
		LogLevel:           "info",
		WorkerPoolSize:     3,
		WorkerQueueSize:    100,
		WorkerScanInterval: 10 * time.Second,
		MinPasswordLength:  6,
	}

	flag.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.AgencyAddress, "r", "", "delivery agency address")
	flag.Parse()

	if envRunAddr, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.RunAddress = envRunAddr
	}

	if envDBURI, ok := os.LookupEnv("DATABASE_URI"); ok {
		cfg.DatabaseURI = envDBURI
	}

	if envAgencyAddr, ok := os.LookupEnv("AGENCY_ADDRESS"); ok {
		cfg.AgencyAddress = envAgencyAddr
	}

	// token and secret come from env only, never from flags
	cfg.AgencyAPIToken = os.Getenv("AGENCY_API_TOKEN")

	if envJWTSecret, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.JWTSecret = envJWTSecret
	} else {
		cfg.JWTSecret = "default-secret-key-change-in-production"
	}

	if envLogLevel, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = envLogLevel
	}

	if envWorkerPoolSize, ok := os.LookupEnv("WORKER_POOL_SIZE"); ok {
		if size, err := strconv.Atoi(envWorkerPoolSize); err == nil && size > 0 {
			cfg.WorkerPoolSize = size
		}
	}

	if envWorkerQueueSize, ok := os.LookupEnv("WORKER_QUEUE_SIZE"); ok {
		if size, err := strconv.Atoi(envWorkerQueueSize); err == nil && size > 0 {
			cfg.WorkerQueueSize = size
		}
	}

	if envScanInterval, ok := os.LookupEnv("WORKER_SCAN_INTERVAL"); ok {
		if interval, err := time.ParseDuration(envScanInterval); err == nil && interval > 0 {
			cfg.WorkerScanInterval = interval
		}
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
	}

	if cfg.AgencyAddress == "" {
		return nil, fmt.Errorf("agency address is required (use -r flag or AGENCY_ADDRESS env)")
	}

	return cfg, nil
}
