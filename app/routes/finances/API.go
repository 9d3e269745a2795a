package finances

import (
	"database/sql"
	"time"

	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func GetEcolagesAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.EcolageFilters{
		Statut:        c.Query("statut"),
		InscriptionID: c.Query("inscription_id"),
		Search:        c.Query("search"),
	}

	page := database.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))
	ecolages, total, err := database.ListEcolages(db, filters, page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if ecolages == nil {
		ecolages = []*models.Ecolage{}
	}
	return utils.Paginated(c, ecolages, page.Page, page.Limit, total, "Écolages récupérés avec succès")
}

func GetEcolageByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	ecolage, err := database.GetEcolageByID(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	ecolage.Paiements, err = database.GetPaiementsByEcolage(db, ecolage.ID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, ecolage, "Écolage récupéré avec succès")
}

// GetEcolagesByEtudiantAPI returns the ledgers of one student with their
// payment history.
func GetEcolagesByEtudiantAPI(c *fiber.Ctx, db *sql.DB) error {
	ecolages, err := database.GetEcolagesByEtudiant(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	if ecolages == nil {
		ecolages = []*models.Ecolage{}
	}
	return utils.Success(c, fiber.StatusOK, ecolages, "Écolages récupérés avec succès")
}

type PaiementRequest struct {
	EcolageID       string          `json:"ecolage_id" validate:"required"`
	Montant         decimal.Decimal `json:"montant" validate:"required"`
	DatePaiement    string          `json:"date_paiement"`
	MethodePaiement string          `json:"methode_paiement" validate:"required"`
	TypeFrais       string          `json:"type_frais" validate:"required"`
	Reference       *string         `json:"reference"`
	Remarques       *string         `json:"remarques"`
}

// EnregistrerPaiementAPI records a payment against a ledger. The operator
// taking the payment is read from the token.
func EnregistrerPaiementAPI(c *fiber.Ctx, db *sql.DB) error {
	var req PaiementRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	paiement := &models.Paiement{
		EcolageID:       req.EcolageID,
		Montant:         req.Montant,
		MethodePaiement: req.MethodePaiement,
		TypeFrais:       req.TypeFrais,
		Reference:       req.Reference,
		Remarques:       req.Remarques,
	}
	if req.DatePaiement != "" {
		t, err := time.Parse("2006-01-02", req.DatePaiement)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "date_paiement invalide", nil)
		}
		paiement.DatePaiement = t
	}
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		paiement.UtilisateurID = &userID
	}

	if err := database.EnregistrerPaiement(db, paiement); err != nil {
		return utils.HandleError(c, err)
	}

	ecolage, err := database.GetEcolageByID(db, paiement.EcolageID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"paiement": paiement,
		"ecolage":  ecolage,
	}, "Paiement enregistré avec succès")
}

// AnnulerPaiementAPI voids a payment and reverses its ledger effect. The
// row stays on record with statut annule.
func AnnulerPaiementAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.AnnulerPaiement(db, c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Paiement annulé avec succès")
}

// parseDateRange reads the optional date_debut/date_fin query parameters.
func parseDateRange(c *fiber.Ctx) (dateDebut, dateFin *time.Time, err error) {
	if v := c.Query("date_debut"); v != "" {
		t, parseErr := time.Parse("2006-01-02", v)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		dateDebut = &t
	}
	if v := c.Query("date_fin"); v != "" {
		t, parseErr := time.Parse("2006-01-02", v)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		dateFin = &t
	}
	return dateDebut, dateFin, nil
}

func GetFinanceStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	dateDebut, dateFin, err := parseDateRange(c)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Plage de dates invalide", nil)
	}

	stats, err := database.GetFinanceStats(db, dateDebut, dateFin)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats, "Statistiques financières récupérées avec succès")
}

// GetRapportFinancierAPI returns the per-day payment report over the
// optional date range.
func GetRapportFinancierAPI(c *fiber.Ctx, db *sql.DB) error {
	dateDebut, dateFin, err := parseDateRange(c)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Plage de dates invalide", nil)
	}

	rapport, err := database.GetRapportFinancier(db, dateDebut, dateFin)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if rapport == nil {
		rapport = []models.RapportLigne{}
	}
	return utils.Success(c, fiber.StatusOK, rapport, "Rapport financier récupéré avec succès")
}
