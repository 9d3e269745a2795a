package auth

import (
	"strings"

	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the session lifecycle endpoints.
func SetupAuthRoutes(app *fiber.App) {
	authAPI := app.Group("/api/auth")

	// Public routes
	authAPI.Post("/register", RegisterAPI)
	authAPI.Post("/login", LoginAPI)
	authAPI.Post("/refresh", RefreshAPI)

	// Protected routes
	authAPI.Use(AuthMiddleware)
	authAPI.Post("/logout", LogoutAPI)
	authAPI.Get("/me", MeAPI)
	authAPI.Put("/profile", UpdateProfileAPI)
	authAPI.Put("/change-password", ChangePasswordAPI)
}

// AuthMiddleware verifies the bearer token and stores the identity in the
// request context.
func AuthMiddleware(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return utils.Error(c, fiber.StatusUnauthorized, "Token non fourni", nil)
	}

	claims, err := ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Token invalide ou expiré", nil)
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)
	return c.Next()
}

// RequireRoles allows the request through only when the verified role is
// one of the given roles.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return utils.Error(c, fiber.StatusForbidden, "Vous n'avez pas les permissions nécessaires", nil)
	}
}

// RequireStaff restricts a route to admin and secretaire.
func RequireStaff() fiber.Handler {
	return RequireRoles(models.RoleAdmin, models.RoleSecretaire)
}

// CheckOwnership lets staff through unconditionally and everyone else only
// when the :id parameter is their own user id.
func CheckOwnership(c *fiber.Ctx) error {
	role, _ := c.Locals("user_role").(string)
	if role == models.RoleAdmin || role == models.RoleSecretaire {
		return c.Next()
	}
	if c.Params("id") != c.Locals("user_id") {
		return utils.Error(c, fiber.StatusForbidden, "Accès non autorisé à ces données", nil)
	}
	return c.Next()
}
