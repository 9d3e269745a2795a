package inscriptions

import (
	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupInscriptionsRoutes registers the enrollment endpoints.
func SetupInscriptionsRoutes(app *fiber.App) {
	inscriptionsAPI := app.Group("/api/inscriptions")
	inscriptionsAPI.Use(auth.AuthMiddleware)

	inscriptionsAPI.Get("/stats", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetInscriptionStatsAPI(c, config.GetDB())
	})

	inscriptionsAPI.Get("/etudiant/:id", auth.CheckOwnership, func(c *fiber.Ctx) error {
		return GetInscriptionsByEtudiantAPI(c, config.GetDB())
	})

	inscriptionsAPI.Get("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetInscriptionByIDAPI(c, config.GetDB())
	})

	inscriptionsAPI.Post("/", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return CreateInscriptionAPI(c, config.GetDB())
	})

	inscriptionsAPI.Delete("/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return CancelInscriptionAPI(c, config.GetDB())
	})
}
