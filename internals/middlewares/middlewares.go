package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SetupMiddlewares wires the base middleware chain. Order matters:
// recover first so a panic in any later handler still yields a 500.
func SetupMiddlewares(app *fiber.App, log *zap.Logger) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(RequestLogger(log))
}
