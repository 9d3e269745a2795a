package auth

import (
	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Nom       string `json:"nom" validate:"required"`
	Prenom    string `json:"prenom" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role"`
}

func RegisterAPI(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return utils.HandleError(c, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleEtudiant
	}

	user := &models.User{
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Email:     &req.Email,
		Telephone: req.Telephone,
		Password:  hashed,
		Role:      role,
	}
	if err := database.CreateUser(config.GetDB(), user); err != nil {
		return utils.HandleError(c, err)
	}

	accessToken, refreshToken, err := GenerateTokens(user)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := database.SaveRefreshToken(config.GetDB(), user.ID, refreshToken); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Inscription réussie")
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func LoginAPI(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Email ou mot de passe incorrect", nil)
	}
	if !user.Actif {
		return utils.Error(c, fiber.StatusForbidden, "Votre compte a été désactivé", nil)
	}
	if user.Password == "" || !CheckPasswordHash(req.Password, user.Password) {
		return utils.Error(c, fiber.StatusUnauthorized, "Email ou mot de passe incorrect", nil)
	}

	accessToken, refreshToken, err := GenerateTokens(user)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := database.SaveRefreshToken(config.GetDB(), user.ID, refreshToken); err != nil {
		return utils.HandleError(c, err)
	}

	user.Password = ""
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Connexion réussie")
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func RefreshAPI(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	claims, err := ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Refresh token invalide ou expiré", nil)
	}

	// The token must still be the one on record, so logout and password
	// changes revoke it.
	valid, err := database.VerifyRefreshToken(config.GetDB(), claims.UserID, req.RefreshToken)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if !valid {
		return utils.Error(c, fiber.StatusUnauthorized, "Refresh token invalide", nil)
	}

	user, err := database.GetUserByID(config.GetDB(), claims.UserID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if !user.Actif {
		return utils.Error(c, fiber.StatusForbidden, "Votre compte a été désactivé", nil)
	}

	accessToken, refreshToken, err := GenerateTokens(user)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := database.SaveRefreshToken(config.GetDB(), user.ID, refreshToken); err != nil {
		return utils.HandleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Token rafraîchi avec succès")
}

func LogoutAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	if err := database.RemoveRefreshToken(config.GetDB(), userID); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Déconnexion réussie")
}

func MeAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user, "Profil récupéré avec succès")
}

type UpdateProfileRequest struct {
	Nom       *string `json:"nom"`
	Prenom    *string `json:"prenom"`
	Telephone *string `json:"telephone"`
	PhotoURL  *string `json:"photo_url"`
}

func UpdateProfileAPI(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}

	userID := c.Locals("user_id").(string)
	patch := &models.UserUpdate{
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Telephone: req.Telephone,
		PhotoURL:  req.PhotoURL,
	}
	if err := database.UpdateUser(config.GetDB(), userID, patch); err != nil {
		return utils.HandleError(c, err)
	}

	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user, "Profil mis à jour avec succès")
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	email := c.Locals("user_email").(string)
	user, err := database.GetUserByEmail(config.GetDB(), email)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return utils.Error(c, fiber.StatusUnauthorized, "Mot de passe actuel incorrect", nil)
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return utils.HandleError(c, err)
	}

	// UpdateUserPassword also clears the refresh token, revoking every
	// session.
	if err := database.UpdateUserPassword(config.GetDB(), user.ID, hashed); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Mot de passe changé avec succès")
}
