package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"supchaissac_backend/internals/configs"
	"supchaissac_backend/internals/constants"
	attachService "supchaissac_backend/internals/features/attachments/service"
	notifService "supchaissac_backend/internals/features/notifications/service"
	"supchaissac_backend/internals/features/sessions/controller"
	"supchaissac_backend/internals/features/sessions/repository"
	"supchaissac_backend/internals/features/sessions/service"
	settingsService "supchaissac_backend/internals/features/settings/service"
	userModel "supchaissac_backend/internals/features/users/model"
	authMw "supchaissac_backend/internals/middlewares/auth"
)

func buildController(db *gorm.DB, log *zap.Logger) *controller.SessionController {
	svc := service.NewSessionService(
		repository.NewGormSessionRepository(db),
		notifService.NewNotificationService(db),
		attachService.NewAttachmentService(db, configs.AttachmentDir),
		settingsService.NewSettingsService(db),
		log,
	)
	return controller.NewSessionController(svc, &userModel.UserLookup{DB: db})
}

// SessionRoutes mounts the claim endpoints. Everything is behind auth;
// writes that belong to teachers are additionally role-gated, and the
// status transition endpoint checks the actor role in the lifecycle table
// itself, so staff routes only gate on "not a teacher-only surface".
func SessionRoutes(api fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctrl := buildController(db, log)

	sessions := api.Group("/sessions")

	// Reads: every authenticated role; teachers are pinned to their own rows
	// inside the handlers.
	sessions.Get("/", ctrl.List)
	sessions.Get("/:id", ctrl.GetByID)
	sessions.Get("/:id/actions", ctrl.Actions)

	// Declaration and self-edits: teachers only.
	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("la déclaration de séances"), constants.RoleTeacher)
	sessions.Post("/", teacherOnly, ctrl.Create)
	sessions.Patch("/:id", teacherOnly, ctrl.Update)
	sessions.Delete("/:id", teacherOnly, ctrl.Delete)

	// Status transitions: any role may call, the transition table decides.
	sessions.Patch("/:id/status", ctrl.TransitionStatus)
}
