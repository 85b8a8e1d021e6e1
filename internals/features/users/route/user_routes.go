package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"supchaissac_backend/internals/constants"
	"supchaissac_backend/internals/features/users/controller"
	"supchaissac_backend/internals/middlewares"
	authMw "supchaissac_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public login endpoints plus the token-bound ones.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login-google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)

	requireAuth := authMw.AuthMiddleware(db)
	auth.Post("/logout", requireAuth, ctrl.Logout)
	auth.Get("/me", requireAuth, ctrl.Me)
}

// UserAdminRoutes mounts account management, admins only.
func UserAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	users := api.Group("/users",
		authMw.OnlyRoles(constants.RoleErrorAdmin("la gestion des comptes"), constants.AdminOnly...),
	)
	users.Get("/", ctrl.List)
	users.Post("/", ctrl.Create)
	users.Patch("/:id", ctrl.Update)
}
