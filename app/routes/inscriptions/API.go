package inscriptions

import (
	"database/sql"
	"time"

	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/SafidyRakotonirina/blessing/app/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CompleteInscriptionRequest struct {
	EtudiantID        *string `json:"etudiant_id"`
	EtudiantNom       string  `json:"etudiant_nom"`
	EtudiantPrenom    string  `json:"etudiant_prenom"`
	EtudiantTelephone string  `json:"etudiant_telephone"`
	EtudiantEmail     *string `json:"etudiant_email"`

	VagueID         string  `json:"vague_id" validate:"required"`
	DateInscription string  `json:"date_inscription"`
	Remarques       *string `json:"remarques"`

	FraisInscriptionPaye  bool            `json:"frais_inscription_paye"`
	MontantEcolageInitial decimal.Decimal `json:"montant_ecolage_initial"`
	FraisLivrePaye        bool            `json:"frais_livre_paye"`
}

// CreateInscriptionAPI enrolls a student, creating the student row when no
// etudiant_id is given, and opens the ecolage ledger, all in one
// transaction.
func CreateInscriptionAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CompleteInscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Requête invalide", nil)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, err)
	}

	dateInscription := time.Now()
	if req.DateInscription != "" {
		t, err := time.Parse("2006-01-02", req.DateInscription)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "date_inscription invalide", nil)
		}
		dateInscription = t
	}

	in := &database.CompleteInscription{
		EtudiantID:            req.EtudiantID,
		EtudiantNom:           req.EtudiantNom,
		EtudiantPrenom:        req.EtudiantPrenom,
		EtudiantTelephone:     req.EtudiantTelephone,
		EtudiantEmail:         req.EtudiantEmail,
		VagueID:               req.VagueID,
		DateInscription:       dateInscription,
		Remarques:             req.Remarques,
		FraisInscriptionPaye:  req.FraisInscriptionPaye,
		MontantEcolageInitial: req.MontantEcolageInitial,
		FraisLivrePaye:        req.FraisLivrePaye,
	}
	inscriptionID, _, err := database.CreateCompleteInscription(db, in)
	if err != nil {
		return utils.HandleError(c, err)
	}

	inscription, err := database.GetInscriptionByID(db, inscriptionID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, inscription, "Inscription créée avec succès")
}

func GetInscriptionByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	inscription, err := database.GetInscriptionByID(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, inscription, "Inscription récupérée avec succès")
}

// GetInscriptionsByEtudiantAPI lists every inscription of one student.
func GetInscriptionsByEtudiantAPI(c *fiber.Ctx, db *sql.DB) error {
	inscriptions, err := database.GetInscriptionsByEtudiant(db, c.Params("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	if inscriptions == nil {
		inscriptions = []*models.Inscription{}
	}
	return utils.Success(c, fiber.StatusOK, inscriptions, "Inscriptions récupérées avec succès")
}

// CancelInscriptionAPI marks an active inscription annule, freeing its
// seat.
func CancelInscriptionAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.CancelInscription(db, c.Params("id")); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil, "Inscription annulée avec succès")
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

func GetInscriptionStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	dateDebut, dateFin, err := parseDateRange(c)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Plage de dates invalide", nil)
	}

	stats, err := database.GetInscriptionStats(db, dateDebut, dateFin)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats, "Statistiques récupérées avec succès")
}
