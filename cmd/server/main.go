package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nickatkani/kani-hampers/internal/cache"
	"github.com/nickatkani/kani-hampers/internal/httpapi"
	"github.com/nickatkani/kani-hampers/internal/payment"
	"github.com/nickatkani/kani-hampers/internal/photos"
	"github.com/nickatkani/kani-hampers/internal/publisher"
	"github.com/nickatkani/kani-hampers/internal/repository"
	"github.com/nickatkani/kani-hampers/internal/service"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	PostgresHost    string
	PostgresPort    int
	PostgresUser    string
	PostgresPass    string
	PostgresDB      string
	MigrationsPath  string
	KafkaBrokers    []string
	UploadEndpoint  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "kani-hampers"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		PostgresHost:    getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:    getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:    getEnv("POSTGRES_USER", "postgres"),
		PostgresPass:    getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:      getEnv("POSTGRES_DB", "orders"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		UploadEndpoint:  getEnv("UPLOAD_ENDPOINT", "http://localhost:9000/upload"),
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// MongoDB holds the catalog collections and cart sessions
	mongoDB, err := repository.ConnectMongoDB(ctx, repository.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Postgres holds orders and their outbox
	cred := &repository.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPass,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.MigrationsPath,
	}
	ordersRepo, err := repository.NewOrdersRepository(cred)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer ordersRepo.Close()
	if err := ordersRepo.RunMigrations(cred); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Connected to Postgres at %s:%d", cfg.PostgresHost, cfg.PostgresPort)

	cartRepo := repository.NewCartMongoRepository(mongoDB)
	catalogRepo := repository.NewCatalogMongoRepository(mongoDB)

	gate := photos.NewGate()
	uploader := photos.NewHTTPUploader(cfg.UploadEndpoint)

	catalogSvc := service.NewCatalogService(catalogRepo, cache.NewRedisCatalogCache(redisClient))
	cartSvc := service.NewCartService(
		cartRepo,
		cache.NewRedisCache(redisClient),
		catalogSvc,
		gate,
		uploader,
	)
	orderSvc := service.NewOrderService(ordersRepo)
	checkoutSvc := service.NewCheckoutService(cartSvc, catalogSvc, ordersRepo, payment.NewSimulatedProvider())

	// Outbox poller drains order events into Kafka
	pollerCtx, stopPoller := context.WithCancel(ctx)
	poller := publisher.NewOutboxPoller(ordersRepo, cfg.KafkaBrokers...)
	go poller.Run(pollerCtx)

	router := httpapi.NewRouter(httpapi.Handlers{
		Catalog:  httpapi.NewCatalogHandler(catalogSvc),
		Cart:     httpapi.NewCartHandler(cartSvc, catalogSvc),
		Checkout: httpapi.NewCheckoutHandler(checkoutSvc),
		Orders:   httpapi.NewOrdersHandler(orderSvc),
		Upload:   httpapi.NewUploadHandler(gate, uploader),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Hamper store API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()
	poller.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}
	log.Println("server stopped")
}
