package salles

import (
	"database/sql"
	"strconv"

	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
)

func GetSallesAPI(c *fiber.Ctx, db *sql.DB) error {
	var actif *bool
	if v := c.Query("actif"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "Paramètre actif invalide", nil)
		}
		actif = &parsed
	}

	salles, err := database.ListSalles(db, actif)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if salles == nil {
		salles = []*models.Salle{}
	}
	return utils.Success(c, fiber.StatusOK, salles, "Salles récupérées avec succès")
}

func GetSalleByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	salle, err := database.GetSalleByID(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, salle, "Salle récupérée avec succès")
}

type CreateSalleRequest struct {
	Nom         string  `json:"nom" validate:"required"`
	Capacite    int     `json:"capacite" validate:"required,gt=0"`
	Equipements *string `json:"equipements"`
}

func CreateSalleAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateSalleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	salle := &models.Salle{
		Nom:         req.Nom,
		Capacite:    req.Capacite,
		Equipements: req.Equipements,
	}
	if err := database.CreateSalle(db, salle); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, salle, "Salle créée avec succès")
}

func UpdateSalleAPI(c *fiber.Ctx, db *sql.DB) error {
	var patch models.SalleUpdate
	if err := c.BodyParser(&patch); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}

	id := c.Params("id")
	if err := database.UpdateSalle(db, id, &patch); err != nil {
		return utils.HandleError(c, err)
	}

	salle, err := database.GetSalleByID(db, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, salle, "Salle mise à jour avec succès")
}

func DeleteSalleAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteSalle(db, c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Salle supprimée avec succès")
}

// GetSallesDisponiblesAPI lists active rooms free at a (jour, horaire) slot.
func GetSallesDisponiblesAPI(c *fiber.Ctx, db *sql.DB) error {
	jourID := c.Query("jour_id")
	horaireID := c.Query("horaire_id")
	if jourID == "" || horaireID == "" {
		return utils.Error(c, fiber.StatusBadRequest, "jour_id et horaire_id sont requis", nil)
	}

	var capaciteMin *int
	if v := c.Query("capacite_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return utils.Error(c, fiber.StatusBadRequest, "capacite_min invalide", nil)
		}
		capaciteMin = &n
	}

	salles, err := database.GetSallesDisponibles(db, jourID, horaireID, capaciteMin)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if salles == nil {
		salles = []*models.Salle{}
	}
	return utils.Success(c, fiber.StatusOK, salles, "Salles disponibles récupérées avec succès")
}

// GetSalleOccupationAPI returns the occupancy grid data for one room.
func GetSalleOccupationAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := database.GetSalleByID(db, id); err != nil {
		return utils.HandleError(c, err)
	}

	occupation, err := database.GetSalleOccupation(db, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, occupation, "Occupation de la salle récupérée avec succès")
}

func GetSalleStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetSalleStats(db)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats, "Statistiques récupérées avec succès")
}
