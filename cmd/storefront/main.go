package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ArsemaYemiru/ak-storefront/internal/checkout"
	"github.com/ArsemaYemiru/ak-storefront/internal/cms"
	storehttp "github.com/ArsemaYemiru/ak-storefront/internal/http"
	"github.com/ArsemaYemiru/ak-storefront/internal/persist"
	"github.com/ArsemaYemiru/ak-storefront/internal/session"
)

type Config struct {
	HTTPPort        string
	CMSURL          string
	CMSTimeout      time.Duration
	PersistBackend  string
	RedisAddr       string
	RedisPassword   string
	MongoURI        string
	MongoDBName     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CMSURL:          getEnv("CMS_URL", "http://localhost:1337"),
		CMSTimeout:      15 * time.Second,
		PersistBackend:  getEnv("PERSIST_BACKEND", "redis"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := loadConfig()
	ctx := context.Background()

	// Durable session-state backend
	var ps persist.Store
	switch cfg.PersistBackend {
	case "mongo":
		db, err := persist.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer db.Client().Disconnect(ctx)

		mongoStore := persist.NewMongoStore(db)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		ps = mongoStore
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		ps = persist.NewRedisStore(redisClient)
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)
	default:
		log.Fatalf("Unknown persist backend %q", cfg.PersistBackend)
	}

	client := cms.NewClient(cfg.CMSURL, cfg.CMSTimeout)
	log.Printf("Using CMS at %s", cfg.CMSURL)

	manager := session.NewManager(ps)
	defer manager.Close()

	checkoutService := checkout.NewService(client)
	router := storehttp.NewRouter(manager, client, checkoutService, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
