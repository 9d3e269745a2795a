package main

import (
	"log"

	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/SafidyRakotonirina/blessing/app/routes/finances"
	"github.com/SafidyRakotonirina/blessing/app/routes/horaires"
	"github.com/SafidyRakotonirina/blessing/app/routes/inscriptions"
	"github.com/SafidyRakotonirina/blessing/app/routes/niveaux"
	"github.com/SafidyRakotonirina/blessing/app/routes/salles"
	"github.com/SafidyRakotonirina/blessing/app/routes/users"
	"github.com/SafidyRakotonirina/blessing/app/routes/vagues"
	"github.com/SafidyRakotonirina/blessing/app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return utils.HandleError(c, err)
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		if err := config.GetDB().Ping(); err != nil {
			return utils.Error(c, fiber.StatusServiceUnavailable, "Base de données injoignable", nil)
		}
		return utils.Success(c, fiber.StatusOK, fiber.Map{"status": "ok"}, "Service opérationnel")
	})

	// Routes
	auth.SetupAuthRoutes(app)
	users.SetupUsersRoutes(app)
	niveaux.SetupNiveauxRoutes(app)
	salles.SetupSallesRoutes(app)
	horaires.SetupHorairesRoutes(app)
	vagues.SetupVaguesRoutes(app)
	inscriptions.SetupInscriptionsRoutes(app)
	finances.SetupFinancesRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Ressource introuvable")
	})

	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
