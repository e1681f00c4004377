package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DatabaseURL string

	// Secrets
	AdminKey   string
	IPHashSalt string

	// Optional object storage for candidate images
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Optional leaderboard cache
	RedisAddr     string
	RedisPassword string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("vote-server", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin API key (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for attempt-log IP hashing (prefer env)")

	// Object storage (optional; uploads disabled when unset)
	fs.StringVar(&cfg.MinioEndpoint, "minio-endpoint", "", "MinIO/S3 endpoint")
	fs.StringVar(&cfg.MinioBucket, "minio-bucket", "", "MinIO bucket for candidate images")

	// Cache (optional; leaderboard computed per request when unset)
	fs.StringVar(&cfg.RedisAddr, "redis-addr", "", "Redis address for leaderboard cache")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8311 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	// Object storage - all-or-nothing group
	if cfg.MinioEndpoint == "" {
		cfg.MinioEndpoint = os.Getenv("MINIO_ENDPOINT")
	}
	if cfg.MinioEndpoint != "" {
		cfg.MinioAccessKey = os.Getenv("MINIO_ACCESS_KEY")
		cfg.MinioSecretKey = os.Getenv("MINIO_SECRET_KEY")
		if cfg.MinioBucket == "" {
			cfg.MinioBucket = os.Getenv("MINIO_BUCKET")
		}
		if cfg.MinioBucket == "" {
			cfg.MinioBucket = "candidate-images"
		}
		if useSSL := os.Getenv("MINIO_USE_SSL"); useSSL != "" {
			b, err := strconv.ParseBool(useSSL)
			if err != nil {
				return Config{}, errors.New("invalid MINIO_USE_SSL env variable")
			}
			cfg.MinioUseSSL = b
		}
		if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" {
			return Config{}, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY required when MINIO_ENDPOINT is set")
		}
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}
	if cfg.RedisAddr != "" {
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	}

	return cfg, nil
}
