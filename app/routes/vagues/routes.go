package vagues

import (
	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupVaguesRoutes registers the vague endpoints.
func SetupVaguesRoutes(app *fiber.App) {
	vaguesAPI := app.Group("/api/vagues")
	vaguesAPI.Use(auth.AuthMiddleware)

	vaguesAPI.Get("/planning", func(c *fiber.Ctx) error {
		return GetPlanningAPI(c, config.GetDB())
	})

	vaguesAPI.Get("/enseignant/:id/planning", func(c *fiber.Ctx) error {
		return GetEnseignantPlanningAPI(c, config.GetDB())
	})

	vaguesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetVaguesAPI(c, config.GetDB())
	})

	vaguesAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetVagueByIDAPI(c, config.GetDB())
	})

	vaguesAPI.Get("/:id/capacite", func(c *fiber.Ctx) error {
		return CheckCapaciteAPI(c, config.GetDB())
	})

	vaguesAPI.Post("/", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return CreateVagueAPI(c, config.GetDB())
	})

	vaguesAPI.Put("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return UpdateVagueAPI(c, config.GetDB())
	})

	vaguesAPI.Delete("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return DeleteVagueAPI(c, config.GetDB())
	})
}
