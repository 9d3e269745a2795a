package horaires

import (
	"database/sql"
	"strconv"

	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
)

func GetJoursAPI(c *fiber.Ctx, db *sql.DB) error {
	jours, err := database.ListJours(db)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if jours == nil {
		jours = []models.Jour{}
	}
	return utils.Success(c, fiber.StatusOK, jours, "Jours récupérés avec succès")
}

func GetHorairesAPI(c *fiber.Ctx, db *sql.DB) error {
	var actif *bool
	if v := c.Query("actif"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "Paramètre actif invalide", nil)
		}
		actif = &parsed
	}

	horaires, err := database.ListHoraires(db, actif)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if horaires == nil {
		horaires = []models.Horaire{}
	}
	return utils.Success(c, fiber.StatusOK, horaires, "Horaires récupérés avec succès")
}

func GetHoraireByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	horaire, err := database.GetHoraireByID(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, horaire, "Horaire récupéré avec succès")
}

type CreateHoraireRequest struct {
	HeureDebut string  `json:"heure_debut" validate:"required"`
	HeureFin   string  `json:"heure_fin" validate:"required"`
	Libelle    *string `json:"libelle"`
}

func CreateHoraireAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateHoraireRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	horaire := &models.Horaire{
		HeureDebut: req.HeureDebut,
		HeureFin:   req.HeureFin,
		Libelle:    req.Libelle,
	}
	if err := database.CreateHoraire(db, horaire); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, horaire, "Horaire créé avec succès")
}

func UpdateHoraireAPI(c *fiber.Ctx, db *sql.DB) error {
	var patch models.HoraireUpdate
	if err := c.BodyParser(&patch); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}

	id := c.Params("id")
	if err := database.UpdateHoraire(db, id, &patch); err != nil {
		return utils.HandleError(c, err)
	}

	horaire, err := database.GetHoraireByID(db, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, horaire, "Horaire mis à jour avec succès")
}

func DeleteHoraireAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteHoraire(db, c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Horaire supprimé avec succès")
}

// GetHorairesDisponiblesAPI lists time windows during which a room is free
// on a given day.
func GetHorairesDisponiblesAPI(c *fiber.Ctx, db *sql.DB) error {
	jourID := c.Query("jour_id")
	salleID := c.Query("salle_id")
	if jourID == "" || salleID == "" {
		return utils.Error(c, fiber.StatusBadRequest, "jour_id et salle_id sont requis", nil)
	}

	var excludeVagueID *string
	if v := c.Query("exclude_vague_id"); v != "" {
		excludeVagueID = &v
	}

	horaires, err := database.GetHorairesDisponibles(db, jourID, salleID, excludeVagueID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if horaires == nil {
		horaires = []models.Horaire{}
	}
	return utils.Success(c, fiber.StatusOK, horaires, "Horaires disponibles récupérés avec succès")
}
