package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Snapshot backends selectable with SNAPSHOT_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendR2       = "r2"
)

type Config struct {
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	MigrationsAuto bool

	ServerPort string

	RedisURL           string
	LeaderboardWorkers int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2Prefix          string

	SnapshotBackend string
	SnapshotFile    string

	LogFile string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	workers, err := strconv.Atoi(os.Getenv("LEADERBOARD_WORKERS"))
	if err != nil || workers <= 0 {
		workers = 2
	}

	migrationsAuto, err := strconv.ParseBool(os.Getenv("MIGRATIONS_AUTO"))
	if err != nil {
		migrationsAuto = true
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "require"
	}

	backend := os.Getenv("SNAPSHOT_BACKEND")
	if backend == "" {
		backend = BackendFile
	}

	snapshotFile := os.Getenv("SNAPSHOT_FILE")
	if snapshotFile == "" {
		snapshotFile = "data/platform.snap"
	}

	r2Prefix := os.Getenv("R2_PREFIX")
	if r2Prefix == "" {
		r2Prefix = "snapshots"
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      os.Getenv("DB_PORT"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSSLMode:   sslMode,

		MigrationsAuto: migrationsAuto,

		ServerPort: serverPort,

		RedisURL:           os.Getenv("REDIS_URL"),
		LeaderboardWorkers: workers,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2Prefix:          r2Prefix,

		SnapshotBackend: backend,
		SnapshotFile:    snapshotFile,

		LogFile: os.Getenv("LOG_FILE"),
	}, nil
}

// HasDatabase reports whether enough settings are present to open Postgres.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}
