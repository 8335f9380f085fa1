package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"travelbudgeter/internal/booking"
	"travelbudgeter/internal/cache"
	"travelbudgeter/internal/handler"
	"travelbudgeter/internal/ratelimit"
	"travelbudgeter/internal/search"
	"travelbudgeter/internal/token"
	"travelbudgeter/internal/upstream"
)

type Config struct {
	Port            string
	BackendURL      string
	UpstreamTimeout time.Duration
	CacheEnabled    bool
	RedisHost       string
	RedisPort       string
	RedisTTL        time.Duration
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.New(ratelimit.DefaultLimit(), map[string]ratelimit.Limit{
		upstream.EndpointFlightOffers: {RequestsPerSecond: 10, Burst: 20},
		upstream.EndpointBestOptions:  {RequestsPerSecond: 5, Burst: 10},
		"book-flight":                 {RequestsPerSecond: 2, Burst: 5},
	})

	tokens := token.NewMemoryStore()
	client := upstream.New(upstream.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.UpstreamTimeout,
		Limiter: rateLimiter,
	}, tokens)

	var offerCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		offerCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		offerCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	controller := search.NewController(client, offerCache)
	sessions := booking.NewSessionManager(client)

	searchHandler := handler.NewSearchHandler(controller)
	bookingHandler := handler.NewBookingHandler(controller, sessions, client)
	authHandler := handler.NewAuthHandler(client)

	api := e.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/me", authHandler.Me)
	api.POST("/flights/search", searchHandler.Search)
	api.POST("/flights/recommendations", searchHandler.Recommendations)
	api.POST("/flights/:id/toggle", bookingHandler.Toggle)
	api.POST("/flights/book", bookingHandler.Book)
	api.GET("/bookings", bookingHandler.List)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting travel gateway on port %s (backend: %s)", cfg.Port, cfg.BackendURL)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:8000"),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		CacheEnabled:    getEnvBool("CACHE_ENABLED", true),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisTTL:        getEnvDuration("REDIS_TTL", 10*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
