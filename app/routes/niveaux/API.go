package niveaux

import (
	"database/sql"
	"strconv"

	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func GetNiveauxAPI(c *fiber.Ctx, db *sql.DB) error {
	var actif *bool
	if v := c.Query("actif"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "Paramètre actif invalide", nil)
		}
		actif = &parsed
	}

	niveaux, err := database.ListNiveaux(db, actif)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if niveaux == nil {
		niveaux = []*models.Niveau{}
	}
	return utils.Success(c, fiber.StatusOK, niveaux, "Niveaux récupérés avec succès")
}

func GetNiveauByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	niveau, err := database.GetNiveauByID(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, niveau, "Niveau récupéré avec succès")
}

type CreateNiveauRequest struct {
	Code             string          `json:"code" validate:"required"`
	Nom              string          `json:"nom" validate:"required"`
	FraisInscription decimal.Decimal `json:"frais_inscription"`
	FraisEcolage     decimal.Decimal `json:"frais_ecolage"`
	FraisLivre       decimal.Decimal `json:"frais_livre"`
	DureeSemaines    int             `json:"duree_semaines" validate:"gte=0"`
}

func CreateNiveauAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateNiveauRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}
	if req.FraisInscription.IsNegative() || req.FraisEcolage.IsNegative() || req.FraisLivre.IsNegative() {
		return utils.Error(c, fiber.StatusBadRequest, "Les frais ne peuvent pas être négatifs", nil)
	}

	niveau := &models.Niveau{
		Code:             req.Code,
		Nom:              req.Nom,
		FraisInscription: req.FraisInscription,
		FraisEcolage:     req.FraisEcolage,
		FraisLivre:       req.FraisLivre,
		DureeSemaines:    req.DureeSemaines,
	}
	if err := database.CreateNiveau(db, niveau); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, niveau, "Niveau créé avec succès")
}

func UpdateNiveauAPI(c *fiber.Ctx, db *sql.DB) error {
	var patch models.NiveauUpdate
	if err := c.BodyParser(&patch); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}

	id := c.Params("id")
	if err := database.UpdateNiveau(db, id, &patch); err != nil {
		return utils.HandleError(c, err)
	}

	niveau, err := database.GetNiveauByID(db, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, niveau, "Niveau mis à jour avec succès")
}

func DeleteNiveauAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteNiveau(db, c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Niveau supprimé avec succès")
}
