package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/notifications/controller"
	"supchaissac_backend/internals/features/notifications/service"
)

// NotificationRoutes mounts the in-app notification endpoints. Rows are
// always scoped to the caller, so no role gate is needed beyond auth.
func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(service.NewNotificationService(db))

	notifications := api.Group("/notifications")
	notifications.Get("/", ctrl.List)
	notifications.Patch("/read-all", ctrl.MarkAllRead)
	notifications.Patch("/:id/read", ctrl.MarkRead)
}
