package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/assal-community/vote-server/cache"
	"github.com/assal-community/vote-server/cliparse"
	"github.com/assal-community/vote-server/db"
	"github.com/assal-community/vote-server/logging"
	"github.com/assal-community/vote-server/middleware"
	"github.com/assal-community/vote-server/router"
	"github.com/assal-community/vote-server/storage"
)

// leaderboardTTL keeps the public results board at most this stale.
const leaderboardTTL = 30 * time.Second

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	logging.Setup()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Optional object storage for candidate images
	var store storage.ImageStore
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			slog.Error("object storage setup failed", "error", err)
			os.Exit(1)
		}
		store = minioStore
		slog.Info("Image uploads enabled", "bucket", cfg.MinioBucket)
	}

	// Optional leaderboard cache
	var lb *cache.Leaderboard
	if cfg.RedisAddr != "" {
		lb = cache.NewLeaderboard(cfg.RedisAddr, cfg.RedisPassword, leaderboardTTL)
		defer lb.Close()
		slog.Info("Leaderboard cache enabled", "addr", cfg.RedisAddr)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, store, lb)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
