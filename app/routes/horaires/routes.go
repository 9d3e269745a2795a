package horaires

import (
	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupHorairesRoutes registers the time window and weekday endpoints.
func SetupHorairesRoutes(app *fiber.App) {
	joursAPI := app.Group("/api/jours")
	joursAPI.Use(auth.AuthMiddleware)
	joursAPI.Get("/", func(c *fiber.Ctx) error {
		return GetJoursAPI(c, config.GetDB())
	})

	horairesAPI := app.Group("/api/horaires")
	horairesAPI.Use(auth.AuthMiddleware)

	horairesAPI.Get("/disponibles", func(c *fiber.Ctx) error {
		return GetHorairesDisponiblesAPI(c, config.GetDB())
	})

	horairesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetHorairesAPI(c, config.GetDB())
	})

	horairesAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetHoraireByIDAPI(c, config.GetDB())
	})

	horairesAPI.Post("/", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return CreateHoraireAPI(c, config.GetDB())
	})

	horairesAPI.Put("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return UpdateHoraireAPI(c, config.GetDB())
	})

	horairesAPI.Delete("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return DeleteHoraireAPI(c, config.GetDB())
	})
}
