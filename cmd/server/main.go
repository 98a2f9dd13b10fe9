// Package main is the entry point for the gateway server. It wires the
// database, cache, processor client and services together and starts the
// HTTP server.
package main

import (
	"context"
	"log"
	"time"

	"payflow/internal/config"
	"payflow/internal/handlers"
	"payflow/internal/middleware"
	"payflow/internal/processor/mangopay"
	"payflow/internal/repositories"
	"payflow/internal/repositories/cache"
	"payflow/internal/services/auth"
	"payflow/internal/services/payin"
	"payflow/internal/services/paymentmethod"
	"payflow/internal/services/registration"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	gatewayCfg := config.LoadGatewayConfig()

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	cacheService := cache.NewCacheService(redisClient, 30*time.Minute)
	defer cacheService.Close()

	if err := cacheService.FlushAll(context.Background()); err != nil {
		log.Printf("failed to flush cache on startup: %v", err)
	}

	var clientOpts []mangopay.Option
	if gatewayCfg.BaseURL != "" {
		clientOpts = append(clientOpts, mangopay.WithBaseURL(gatewayCfg.BaseURL))
	}
	processorClient := mangopay.NewClient(gatewayCfg.Mode, gatewayCfg.ClientID, gatewayCfg.ClientSecret, clientOpts...)

	userRepo := repositories.NewUserRepository(db)
	methodRepo := repositories.NewPaymentMethodRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	authService := auth.NewService(userRepo)
	registrationService := registration.NewService(processorClient, userRepo, gatewayCfg)
	methodService := paymentmethod.NewService(methodRepo, userRepo, cacheService, gatewayCfg)
	payinService := payin.NewService(processorClient, paymentRepo, methodService, gatewayCfg)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/register", "/api/login", "/api/gateway/preregister-card"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        10,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	handlers.SetupRoutes(app, handlers.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Registration:  handlers.NewRegistrationHandler(registrationService),
		PaymentMethod: handlers.NewPaymentMethodHandler(methodService),
		PayIn:         handlers.NewPayInHandler(payinService),
		Settings:      handlers.NewSettingsHandler(gatewayCfg, processorClient),
		AuthMW:        middleware.NewAuthMiddleware(authService),
	})

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
