package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attachmentRoute "supchaissac_backend/internals/features/attachments/route"
	notificationRoute "supchaissac_backend/internals/features/notifications/route"
	reportRoute "supchaissac_backend/internals/features/reports/route"
	sessionRoute "supchaissac_backend/internals/features/sessions/route"
	settingsRoute "supchaissac_backend/internals/features/settings/route"
	userRoute "supchaissac_backend/internals/features/users/route"
	authMw "supchaissac_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	startTime = time.Now()

	BaseRoutes(app)

	// Public surface: login endpoints plus the token-bound auth ops.
	public := app.Group("/api")
	userRoute.AuthRoutes(public, db)

	// Everything else requires a valid, non-blacklisted token.
	api := app.Group("/api", authMw.AuthMiddleware(db))

	sessionRoute.SessionRoutes(api, db, log)
	attachmentRoute.AttachmentRoutes(api, db)
	notificationRoute.NotificationRoutes(api, db)
	settingsRoute.SettingsRoutes(api, db)
	reportRoute.ReportRoutes(api, db)
	userRoute.UserAdminRoutes(api, db)
}
