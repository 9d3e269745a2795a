package vagues

import (
	"database/sql"
	"time"

	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
)

// parseDate accepts plain dates and full timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func GetVaguesAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.VagueFilters{
		Statut:       c.Query("statut"),
		NiveauID:     c.Query("niveau_id"),
		EnseignantID: c.Query("enseignant_id"),
		SalleID:      c.Query("salle_id"),
		Search:       c.Query("search"),
	}

	page := database.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	vagues, total, err := database.ListVagues(db, filters, page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if vagues == nil {
		vagues = []*models.Vague{}
	}
	return utils.Paginated(c, vagues, page.Page, page.Limit, total, "Vagues récupérées avec succès")
}

func GetVagueByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	vague, err := database.GetVagueByID(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, vague, "Vague récupérée avec succès")
}

type CreateVagueRequest struct {
	Nom          string           `json:"nom" validate:"required"`
	NiveauID     string           `json:"niveau_id" validate:"required"`
	EnseignantID *string          `json:"enseignant_id"`
	SalleID      *string          `json:"salle_id"`
	DateDebut    string           `json:"date_debut" validate:"required"`
	DateFin      string           `json:"date_fin" validate:"required"`
	CapaciteMax  int              `json:"capacite_max"`
	Statut       string           `json:"statut"`
	Horaires     []models.SlotRef `json:"horaires" validate:"required,min=1,dive"`
}

func CreateVagueAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateVagueRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	dateDebut, err := parseDate(req.DateDebut)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "date_debut invalide", nil)
	}
	dateFin, err := parseDate(req.DateFin)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "date_fin invalide", nil)
	}

	vague := &models.Vague{
		Nom:          req.Nom,
		NiveauID:     req.NiveauID,
		EnseignantID: req.EnseignantID,
		SalleID:      req.SalleID,
		DateDebut:    dateDebut,
		DateFin:      dateFin,
		CapaciteMax:  req.CapaciteMax,
		Statut:       req.Statut,
	}
	if err := database.CreateVague(db, vague, req.Horaires); err != nil {
		return utils.HandleError(c, err)
	}

	created, err := database.GetVagueByID(db, vague.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, created, "Vague créée avec succès")
}

type UpdateVagueRequest struct {
	Nom          *string          `json:"nom"`
	NiveauID     *string          `json:"niveau_id"`
	EnseignantID *string          `json:"enseignant_id"`
	SalleID      *string          `json:"salle_id"`
	DateDebut    *string          `json:"date_debut"`
	DateFin      *string          `json:"date_fin"`
	Statut       *string          `json:"statut"`
	Horaires     []models.SlotRef `json:"horaires"`
}

func UpdateVagueAPI(c *fiber.Ctx, db *sql.DB) error {
	var req UpdateVagueRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}

	patch := &models.VagueUpdate{
		Nom:          req.Nom,
		NiveauID:     req.NiveauID,
		EnseignantID: req.EnseignantID,
		SalleID:      req.SalleID,
		Statut:       req.Statut,
		Horaires:     req.Horaires,
	}
	if req.DateDebut != nil {
		t, err := parseDate(*req.DateDebut)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "date_debut invalide", nil)
		}
		patch.DateDebut = &t
	}
	if req.DateFin != nil {
		t, err := parseDate(*req.DateFin)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "date_fin invalide", nil)
		}
		patch.DateFin = &t
	}

	id := c.Params("id")
	if err := database.UpdateVague(db, id, patch); err != nil {
		return utils.HandleError(c, err)
	}

	vague, err := database.GetVagueByID(db, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, vague, "Vague mise à jour avec succès")
}

func DeleteVagueAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteVague(db, c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Vague supprimée avec succès")
}

// CheckCapaciteAPI reports remaining seats for a vague.
func CheckCapaciteAPI(c *fiber.Ctx, db *sql.DB) error {
	capaciteMax, nbInscrits, disponible, err := database.CheckCapacite(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"capacite_max":     capaciteMax,
		"nb_inscrits":      nbInscrits,
		"places_restantes": capaciteMax - nbInscrits,
		"disponible":       disponible,
	}, "Capacité récupérée avec succès")
}

// GetPlanningAPI returns the active vagues with their weekly slots,
// optionally filtered by salle or enseignant.
func GetPlanningAPI(c *fiber.Ctx, db *sql.DB) error {
	vagues, err := database.GetPlanning(db, c.Query("salle_id"), c.Query("enseignant_id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	if vagues == nil {
		vagues = []*models.Vague{}
	}
	return utils.Success(c, fiber.StatusOK, vagues, "Planning récupéré avec succès")
}

// GetEnseignantPlanningAPI returns the planning of one teacher.
func GetEnseignantPlanningAPI(c *fiber.Ctx, db *sql.DB) error {
	vagues, err := database.GetPlanning(db, "", c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	if vagues == nil {
		vagues = []*models.Vague{}
	}
	return utils.Success(c, fiber.StatusOK, vagues, "Planning de l'enseignant récupéré avec succès")
}
