package users

import (
	"database/sql"
	"strconv"

	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/routes/auth"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
)

// GetUsersAPI lists users with optional role, actif and search filters.
func GetUsersAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.UserFilters{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}
	if actif := c.Query("actif"); actif != "" {
		v, err := strconv.ParseBool(actif)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "Paramètre actif invalide", nil)
		}
		filters.Actif = &v
	}

	page := database.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	users, total, err := database.ListUsers(db, filters, page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return utils.Paginated(c, users, page.Page, page.Limit, total, "Utilisateurs récupérés avec succès")
}

func GetUserByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	user, err := database.GetUserByID(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user, "Utilisateur récupéré avec succès")
}

type CreateUserRequest struct {
	Nom       string `json:"nom" validate:"required"`
	Prenom    string `json:"prenom" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	Role      string `json:"role" validate:"required"`
}

// CreateUserAPI creates a user. Students can be created without email or
// password since they never log in by themselves.
func CreateUserAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}
	if req.Role != models.RoleEtudiant && (req.Email == "" || req.Password == "") {
		return utils.Error(c, fiber.StatusBadRequest, "Email et mot de passe requis pour ce rôle", nil)
	}

	user := &models.User{
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Telephone: req.Telephone,
		Role:      req.Role,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return utils.HandleError(c, err)
		}
		user.Password = hashed
	}

	if err := database.CreateUser(db, user); err != nil {
		return utils.HandleError(c, err)
	}
	user.Password = ""
	return utils.Success(c, fiber.StatusCreated, user, "Utilisateur créé avec succès")
}

func UpdateUserAPI(c *fiber.Ctx, db *sql.DB) error {
	var patch models.UserUpdate
	if err := c.BodyParser(&patch); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}

	id := c.Params("id")
	if err := database.UpdateUser(db, id, &patch); err != nil {
		return utils.HandleError(c, err)
	}

	user, err := database.GetUserByID(db, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user, "Utilisateur mis à jour avec succès")
}

// ToggleUserAPI flips the actif flag on a user account.
func ToggleUserAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if err := database.ToggleUserActive(db, id); err != nil {
		return utils.HandleError(c, err)
	}
	user, err := database.GetUserByID(db, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user, "Statut de l'utilisateur modifié avec succès")
}

// DeleteUserAPI removes a user, or deactivates it when enrollments, vagues
// or payments still reference it.
func DeleteUserAPI(c *fiber.Ctx, db *sql.DB) error {
	if c.Params("id") == c.Locals("user_id") {
		return utils.Error(c, fiber.StatusBadRequest, "Vous ne pouvez pas supprimer votre propre compte", nil)
	}
	if err := database.DeleteUser(db, c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Utilisateur supprimé avec succès")
}

func GetUserStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetUserStats(db)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats, "Statistiques récupérées avec succès")
}

func GetProfesseursAPI(c *fiber.Ctx, db *sql.DB) error {
	profs, err := database.GetProfesseurs(db)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if profs == nil {
		profs = []*models.User{}
	}
	return utils.Success(c, fiber.StatusOK, profs, "Professeurs récupérés avec succès")
}

// GetAvailableTeachersAPI lists teachers free on a given (jour, horaire)
// slot, optionally ignoring one vague when editing it.
func GetAvailableTeachersAPI(c *fiber.Ctx, db *sql.DB) error {
	jourID := c.Query("jour_id")
	horaireID := c.Query("horaire_id")
	if jourID == "" || horaireID == "" {
		return utils.Error(c, fiber.StatusBadRequest, "jour_id et horaire_id sont requis", nil)
	}

	var excludeVagueID *string
	if v := c.Query("exclude_vague_id"); v != "" {
		excludeVagueID = &v
	}

	teachers, err := database.GetAvailableTeachers(db, jourID, horaireID, excludeVagueID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if teachers == nil {
		teachers = []*models.User{}
	}
	return utils.Success(c, fiber.StatusOK, teachers, "Enseignants disponibles récupérés avec succès")
}
