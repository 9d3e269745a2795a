package niveaux

import (
	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupNiveauxRoutes registers the course level endpoints.
func SetupNiveauxRoutes(app *fiber.App) {
	niveauxAPI := app.Group("/api/niveaux")
	niveauxAPI.Use(auth.AuthMiddleware)

	niveauxAPI.Get("/", func(c *fiber.Ctx) error {
		return GetNiveauxAPI(c, config.GetDB())
	})

	niveauxAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetNiveauByIDAPI(c, config.GetDB())
	})

	niveauxAPI.Post("/", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return CreateNiveauAPI(c, config.GetDB())
	})

	niveauxAPI.Put("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return UpdateNiveauAPI(c, config.GetDB())
	})

	niveauxAPI.Delete("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return DeleteNiveauAPI(c, config.GetDB())
	})
}
