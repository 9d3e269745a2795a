package finances

import (
	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupFinancesRoutes registers the ledger and payment endpoints.
func SetupFinancesRoutes(app *fiber.App) {
	financesAPI := app.Group("/api/finances")
	financesAPI.Use(auth.AuthMiddleware)

	financesAPI.Get("/stats", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetFinanceStatsAPI(c, config.GetDB())
	})

	financesAPI.Get("/rapport", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetRapportFinancierAPI(c, config.GetDB())
	})

	financesAPI.Get("/etudiant/:id", auth.CheckOwnership, func(c *fiber.Ctx) error {
		return GetEcolagesByEtudiantAPI(c, config.GetDB())
	})

	financesAPI.Get("/ecolages", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetEcolagesAPI(c, config.GetDB())
	})

	financesAPI.Get("/ecolages/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return GetEcolageByIDAPI(c, config.GetDB())
	})

	financesAPI.Post("/paiements", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return EnregistrerPaiementAPI(c, config.GetDB())
	})

	financesAPI.Delete("/paiements/:id", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return AnnulerPaiementAPI(c, config.GetDB())
	})
}
