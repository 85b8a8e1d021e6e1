package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"supchaissac_backend/internals/constants"
	"supchaissac_backend/internals/features/reports/controller"
	authMw "supchaissac_backend/internals/middlewares/auth"
)

// ReportRoutes mounts the staff reporting endpoints.
func ReportRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReportController(db)

	reports := api.Group("/reports",
		authMw.OnlyRoles(constants.RoleErrorStaff("les rapports"), constants.StaffRoles...),
	)
	reports.Get("/summary", ctrl.Summary)
	reports.Get("/monthly", ctrl.Monthly)
	reports.Get("/teachers", ctrl.ByTeacher)
}
