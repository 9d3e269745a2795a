package salles

import (
	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupSallesRoutes registers the room endpoints.
func SetupSallesRoutes(app *fiber.App) {
	sallesAPI := app.Group("/api/salles")
	sallesAPI.Use(auth.AuthMiddleware)

	sallesAPI.Get("/disponibles", func(c *fiber.Ctx) error {
		return GetSallesDisponiblesAPI(c, config.GetDB())
	})

	sallesAPI.Get("/stats", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetSalleStatsAPI(c, config.GetDB())
	})

	sallesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetSallesAPI(c, config.GetDB())
	})

	sallesAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetSalleByIDAPI(c, config.GetDB())
	})

	sallesAPI.Get("/:id/occupation", func(c *fiber.Ctx) error {
		return GetSalleOccupationAPI(c, config.GetDB())
	})

	sallesAPI.Post("/", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return CreateSalleAPI(c, config.GetDB())
	})

	sallesAPI.Put("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return UpdateSalleAPI(c, config.GetDB())
	})

	sallesAPI.Delete("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return DeleteSalleAPI(c, config.GetDB())
	})
}
