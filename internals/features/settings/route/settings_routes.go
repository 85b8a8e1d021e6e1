package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"supchaissac_backend/internals/constants"
	"supchaissac_backend/internals/features/settings/controller"
	"supchaissac_backend/internals/features/settings/service"
	authMw "supchaissac_backend/internals/middlewares/auth"
)

// SettingsRoutes mounts the system settings endpoints. Staff can read the
// effective values; only admins change them.
func SettingsRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSettingsController(service.NewSettingsService(db))

	settings := api.Group("/settings")
	settings.Get("/", authMw.OnlyRoles(constants.RoleErrorStaff("les paramètres"), constants.StaffRoles...), ctrl.List)
	settings.Put("/:key", authMw.OnlyRoles(constants.RoleErrorAdmin("les paramètres"), constants.AdminOnly...), ctrl.Update)
}
