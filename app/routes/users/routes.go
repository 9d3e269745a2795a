package users

import (
	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupUsersRoutes registers the user management endpoints.
func SetupUsersRoutes(app *fiber.App) {
	usersAPI := app.Group("/api/users")
	usersAPI.Use(auth.AuthMiddleware)

	usersAPI.Get("/stats", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetUserStatsAPI(c, config.GetDB())
	})

	usersAPI.Get("/profs", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetProfesseursAPI(c, config.GetDB())
	})

	usersAPI.Get("/available-teachers", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetAvailableTeachersAPI(c, config.GetDB())
	})

	usersAPI.Get("/", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetUsersAPI(c, config.GetDB())
	})

	usersAPI.Get("/:id", auth.CheckOwnership, func(c *fiber.Ctx) error {
		return GetUserByIDAPI(c, config.GetDB())
	})

	usersAPI.Post("/", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return CreateUserAPI(c, config.GetDB())
	})

	usersAPI.Put("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return UpdateUserAPI(c, config.GetDB())
	})

	usersAPI.Patch("/:id/toggle", auth.RequireRoles(models.RoleAdmin), func(c *fiber.Ctx) error {
		return ToggleUserAPI(c, config.GetDB())
	})

	usersAPI.Delete("/:id", auth.RequireRoles(models.RoleAdmin), func(c *fiber.Ctx) error {
		return DeleteUserAPI(c, config.GetDB())
	})
}
