package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"supchaissac_backend/internals/configs"
	database "supchaissac_backend/internals/databases"
	middlewares "supchaissac_backend/internals/middlewares"
	routes "supchaissac_backend/internals/route"
	"supchaissac_backend/pkg/logger"
)

func main() {
	configs.LoadEnv()

	zapLog, err := logger.New(&logger.Config{
		Level:  configs.GetEnv("LOG_LEVEL", "info"),
		Format: configs.GetEnv("LOG_FORMAT", "json"),
		Output: configs.GetEnv("LOG_OUTPUT", "stdout"),
	}, logger.DefaultServiceName)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		BodyLimit:             12 << 20, // attachments cap at 10 MiB + multipart overhead
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	middlewares.SetupMiddlewares(app, zapLog)

	// 🔌 DB connect + pool + migrations + warm-up
	database.ConnectDB()
	database.TunePool()
	database.Migrate()
	database.WarmUpQueries()

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, zapLog)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
