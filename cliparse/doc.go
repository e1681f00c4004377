// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8311)
  - DatabaseURL: PostgreSQL connection string (required)
  - AdminKey: Secret for the admin API surface (required)
  - IPHashSalt: Salt for attempt-log IP hashing (required)
  - MinioEndpoint/AccessKey/SecretKey/Bucket/UseSSL: object storage (optional)
  - RedisAddr/RedisPassword: leaderboard cache (optional)

# CLI Flags

	-p               Server port
	-d               Database URL
	-admin-key       Admin API key
	-ip-salt         IP hash salt
	-minio-endpoint  MinIO/S3 endpoint
	-minio-bucket    MinIO bucket
	-redis-addr      Redis address

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	ADMIN_KEY         → -admin-key
	IP_HASH_SALT      → -ip-salt
	MINIO_ENDPOINT    → -minio-endpoint
	MINIO_ACCESS_KEY, MINIO_SECRET_KEY, MINIO_BUCKET, MINIO_USE_SSL
	REDIS_ADDR, REDIS_PASSWORD

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_KEY must be provided
  - IP_HASH_SALT must be provided
  - MINIO_ACCESS_KEY/MINIO_SECRET_KEY must accompany MINIO_ENDPOINT

MinIO and Redis are optional groups: the server runs without them, with
image uploads disabled and the leaderboard computed per request.
*/
package cliparse
