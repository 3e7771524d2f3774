package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/printa-vendors/internal/config"
	"github.com/georgemunganga/printa-vendors/internal/httpserver"
	"github.com/georgemunganga/printa-vendors/internal/modules/health"
	"github.com/georgemunganga/printa-vendors/internal/modules/vendor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	configPath := flag.String("config", "", "Path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	vendorRepo, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(httpserver.CORS(cfg.App.AllowedOrigins))

	health.NewHandler(vendorRepo).RegisterRoutes(router)

	vendorService := vendor.NewService(vendorRepo)
	vendor.NewHandler(vendorService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	fmt.Printf("Vendor API server starting on :%s (store: %s)\n", cfg.App.Port, cfg.Store.Driver)
	if err := httpserver.Run(ctx, "vendor api", ":"+cfg.App.Port, router, cfg.App.ShutdownTimeout); err != nil {
		log.Fatal(err)
	}
}

// openStore connects the configured vendor store and returns a function that
// releases it.
func openStore(ctx context.Context, cfg config.StoreConfig) (vendor.Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Printf("mongo disconnect: %v", err)
			}
		}
		repo := vendor.NewMongoRepository(client.Database(cfg.MongoDatabase), cfg.MongoCollection)
		if err := repo.Ping(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		fmt.Println("Connected to MongoDB successfully")
		return repo, closeFn, nil

	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { db.Close() }
		if err := db.PingContext(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		if err := vendor.EnsurePostgresSchema(ctx, db); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("create vendors table: %w", err)
		}
		fmt.Println("Successfully connected to the database!")
		return vendor.NewPostgresRepository(db), closeFn, nil

	case config.DriverMemory:
		log.Println("Using in-memory vendor store; data is lost on restart")
		return vendor.NewMemoryRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
