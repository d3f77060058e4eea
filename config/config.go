package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Catalog backends
const (
	BackendMemory    = "memory"
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	InstanceID    string
	// Catalog Gateway
	CatalogBackend string
	GatewayTimeout time.Duration
	SeedCatalog    bool
	// DB Config
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Firestore
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirestoreCollection      string
	// Sessions
	SessionSecret          string
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration
	// Kafka (catalog change fan-out between instances)
	KafkaBrokers []string
	KafkaTopic   string
	// R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	// Upload Configuration
	MaxUploadSizeMB int64
	R2UploadTimeout time.Duration
	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int
	// Business Rules
	MaxCartLines int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		InstanceID:    getEnv("INSTANCE_ID", ""),

		CatalogBackend: strings.ToLower(getEnv("CATALOG_BACKEND", BackendMemory)),
		GatewayTimeout: getDurationEnv("GATEWAY_TIMEOUT", 10*time.Second),
		SeedCatalog:    getBoolEnv("SEED_CATALOG", false),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		FirestoreProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
		FirestoreCredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),
		FirestoreCollection:      getEnv("FIRESTORE_COLLECTION", "Products"),

		SessionSecret:          getEnv("SESSION_SECRET", "default_secret_CHANGE_ME"),
		SessionTTL:             getDurationEnv("SESSION_TTL", 2*time.Hour),
		SessionCleanupInterval: getDurationEnv("SESSION_CLEANUP_INTERVAL", 10*time.Minute),

		KafkaBrokers: getListEnv("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "catalog-events"),

		// R2 Storage
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),

		// Upload defaults: 10MB max, 30s timeout
		MaxUploadSizeMB: getInt64Env("MAX_UPLOAD_SIZE_MB", 10),
		R2UploadTimeout: getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),

		// 50 req/s, burst 100
		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		MaxCartLines: getIntEnv("MAX_CART_LINES", 100),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	switch c.CatalogBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBUrl == "" {
			log.Fatal("CRITICAL: DB_DSN environment variable is required for the postgres catalog backend")
		}
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			log.Fatal("CRITICAL: FIRESTORE_PROJECT_ID is required for the firestore catalog backend")
		}
	default:
		log.Fatalf("CRITICAL: unknown CATALOG_BACKEND %q", c.CatalogBackend)
	}
	if c.SessionSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default session secret. Setting up for failure in production.")
	}
}

// UploadsEnabled reports whether image uploads to R2 are configured.
func (c *Config) UploadsEnabled() bool {
	return c.R2AccountID != "" && c.R2BucketName != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
