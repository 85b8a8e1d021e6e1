package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"supchaissac_backend/internals/configs"
	"supchaissac_backend/internals/constants"
	"supchaissac_backend/internals/features/attachments/controller"
	"supchaissac_backend/internals/features/attachments/service"
	"supchaissac_backend/internals/middlewares"
	authMw "supchaissac_backend/internals/middlewares/auth"
)

// AttachmentRoutes mounts the supporting-document endpoints.
func AttachmentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttachmentController(db, service.NewAttachmentService(db, configs.AttachmentDir))

	// Nested under the owning session.
	api.Post("/sessions/:id/attachments", middlewares.UploadRateLimiter(), ctrl.Upload)
	api.Get("/sessions/:id/attachments", ctrl.List)

	attachments := api.Group("/attachments")
	attachments.Get("/:id/file", ctrl.Download)
	attachments.Delete("/:id", ctrl.Archive)

	// Verification is a staff act.
	staffOnly := authMw.OnlyRoles(constants.RoleErrorStaff("la vérification des pièces jointes"), constants.StaffRoles...)
	attachments.Patch("/:id/verify", staffOnly, ctrl.Verify)
}
