package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/google/uuid"
)

// EcolageFilters narrows ListEcolages.
type EcolageFilters struct {
	Statut        string
	InscriptionID string
	Search        string
}

const ecolageSelect = `
	SELECT ec.id, ec.inscription_id, ec.montant_total, ec.montant_paye, ec.montant_restant,
	       ec.frais_inscription_paye, ec.frais_livre_paye, ec.statut,
	       u.nom, u.prenom, v.nom, n.code
	FROM ecolages ec
	JOIN inscriptions i ON ec.inscription_id = i.id
	JOIN utilisateurs u ON i.etudiant_id = u.id
	JOIN vagues v ON i.vague_id = v.id
	JOIN niveaux n ON v.niveau_id = n.id`

func scanEcolage(scanner interface{ Scan(...interface{}) error }) (*models.Ecolage, error) {
	ec := &models.Ecolage{}
	err := scanner.Scan(&ec.ID, &ec.InscriptionID, &ec.MontantTotal, &ec.MontantPaye,
		&ec.MontantRestant, &ec.FraisInscriptionPaye, &ec.FraisLivrePaye, &ec.Statut,
		&ec.EtudiantNom, &ec.EtudiantPrenom, &ec.VagueNom, &ec.NiveauCode)
	if err != nil {
		return nil, err
	}
	return ec, nil
}

// ListEcolages returns one page of ledgers with student and vague labels.
func ListEcolages(db *sql.DB, filters EcolageFilters, page Page) ([]*models.Ecolage, int, error) {
	where := " WHERE 1=1"
	var args []interface{}

	if filters.Statut != "" {
		args = append(args, filters.Statut)
		where += fmt.Sprintf(" AND ec.statut = $%d", len(args))
	}
	if filters.InscriptionID != "" {
		args = append(args, filters.InscriptionID)
		where += fmt.Sprintf(" AND ec.inscription_id = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (u.nom ILIKE $%d OR u.prenom ILIKE $%d OR v.nom ILIKE $%d)", n, n, n)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM ecolages ec
		JOIN inscriptions i ON ec.inscription_id = i.id
		JOIN utilisateurs u ON i.etudiant_id = u.id
		JOIN vagues v ON i.vague_id = v.id
		JOIN niveaux n ON v.niveau_id = n.id` + where

	var total int
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, page.Limit, page.Offset())
	query := ecolageSelect + where +
		fmt.Sprintf(" ORDER BY u.nom, u.prenom LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ecolages []*models.Ecolage
	for rows.Next() {
		ec, err := scanEcolage(rows)
		if err != nil {
			return nil, 0, err
		}
		ecolages = append(ecolages, ec)
	}
	return ecolages, total, rows.Err()
}

// GetEcolageByID fetches one ledger with its labels.
func GetEcolageByID(db *sql.DB, id string) (*models.Ecolage, error) {
	ec, err := scanEcolage(db.QueryRow(ecolageSelect+` WHERE ec.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, NotFoundf("écolage introuvable")
	}
	if err != nil {
		return nil, err
	}
	return ec, nil
}

// GetPaiementsByEcolage returns the full payment history, voided entries
// included, newest first.
func GetPaiementsByEcolage(db *sql.DB, ecolageID string) ([]models.Paiement, error) {
	rows, err := db.Query(`
		SELECT id, ecolage_id, montant, date_paiement, methode_paiement, type_frais,
		       reference, remarques, utilisateur_id, statut, created_at
		FROM paiements
		WHERE ecolage_id = $1
		ORDER BY date_paiement DESC, created_at DESC`,
		ecolageID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paiements []models.Paiement
	for rows.Next() {
		var p models.Paiement
		err := rows.Scan(&p.ID, &p.EcolageID, &p.Montant, &p.DatePaiement,
			&p.MethodePaiement, &p.TypeFrais, &p.Reference, &p.Remarques,
			&p.UtilisateurID, &p.Statut, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		paiements = append(paiements, p)
	}
	return paiements, rows.Err()
}

// GetEcolagesByEtudiant returns the ledgers of one student.
func GetEcolagesByEtudiant(db *sql.DB, etudiantID string) ([]*models.Ecolage, error) {
	rows, err := db.Query(ecolageSelect+` WHERE i.etudiant_id = $1 ORDER BY i.date_inscription DESC`, etudiantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ecolages []*models.Ecolage
	for rows.Next() {
		ec, err := scanEcolage(rows)
		if err != nil {
			return nil, err
		}
		ecolages = append(ecolages, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, ec := range ecolages {
		if ec.Paiements, err = GetPaiementsByEcolage(db, ec.ID); err != nil {
			return nil, err
		}
	}
	return ecolages, nil
}

// EnregistrerPaiement records a payment and applies it to the ledger as one
// transaction. The ledger increment is a conditional update guarded by
// montant_restant >= montant, so two concurrent payments can never drive the
// ledger negative or lose an update.
func EnregistrerPaiement(db *sql.DB, p *models.Paiement) error {
	if !p.Montant.IsPositive() {
		return Validationf("le montant doit être positif")
	}
	if !models.ValidTypeFrais(p.TypeFrais) {
		return Validationf("type de frais inconnu: %s", p.TypeFrais)
	}
	if p.DatePaiement.IsZero() {
		p.DatePaiement = time.Now()
	}
	if p.Reference == nil {
		ref := uuid.NewString()
		p.Reference = &ref
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var restant string
	err = tx.QueryRow(`SELECT montant_restant FROM ecolages WHERE id = $1`, p.EcolageID).Scan(&restant)
	if err == sql.ErrNoRows {
		return NotFoundf("écolage introuvable")
	}
	if err != nil {
		return err
	}

	err = tx.QueryRow(
		`INSERT INTO paiements (ecolage_id, montant, date_paiement, methode_paiement, type_frais, reference, remarques, utilisateur_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, statut, created_at`,
		p.EcolageID, p.Montant, p.DatePaiement, p.MethodePaiement, p.TypeFrais,
		p.Reference, p.Remarques, p.UtilisateurID,
	).Scan(&p.ID, &p.Statut, &p.CreatedAt)
	if err != nil {
		return err
	}

	result, err := tx.Exec(
		`UPDATE ecolages
		 SET montant_paye = montant_paye + $1,
		     montant_restant = montant_restant - $1
		 WHERE id = $2 AND montant_restant >= $1`,
		p.Montant, p.EcolageID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return Validationf("le montant dépasse le restant dû")
	}

	switch p.TypeFrais {
	case models.TypeFraisInscription:
		if _, err := tx.Exec(`UPDATE ecolages SET frais_inscription_paye = true WHERE id = $1`, p.EcolageID); err != nil {
			return err
		}
	case models.TypeFraisLivre:
		if _, err := tx.Exec(`UPDATE ecolages SET frais_livre_paye = true WHERE id = $1`, p.EcolageID); err != nil {
			return err
		}
	}

	if err := recomputeEcolageStatut(tx, p.EcolageID); err != nil {
		return err
	}

	return tx.Commit()
}

// AnnulerPaiement voids a payment in place and reverses its ledger effect.
// The payment row stays on record with statut annule. The registration and
// book flags are un-flipped only when no other valid payment of that fee
// type remains, so flags set by the opening enrollment payment survive.
func AnnulerPaiement(db *sql.DB, paiementID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var ecolageID, typeFrais, statut string
	var montant string
	err = tx.QueryRow(
		`SELECT ecolage_id, montant, type_frais, statut FROM paiements WHERE id = $1 FOR UPDATE`,
		paiementID,
	).Scan(&ecolageID, &montant, &typeFrais, &statut)
	if err == sql.ErrNoRows {
		return NotFoundf("paiement introuvable")
	}
	if err != nil {
		return err
	}
	if statut == models.PaiementStatutAnnule {
		return Conflictf("paiement déjà annulé")
	}

	if _, err := tx.Exec(`UPDATE paiements SET statut = 'annule' WHERE id = $1`, paiementID); err != nil {
		return err
	}

	result, err := tx.Exec(
		`UPDATE ecolages
		 SET montant_paye = montant_paye - $1,
		     montant_restant = montant_restant + $1
		 WHERE id = $2 AND montant_paye >= $1`,
		montant, ecolageID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return Conflictf("le paiement ne peut pas être annulé: montant payé insuffisant")
	}

	if typeFrais == models.TypeFraisInscription || typeFrais == models.TypeFraisLivre {
		var remaining int
		err := tx.QueryRow(
			`SELECT COUNT(*) FROM paiements
			 WHERE ecolage_id = $1 AND type_frais = $2 AND statut = 'valide' AND id != $3`,
			ecolageID, typeFrais, paiementID,
		).Scan(&remaining)
		if err != nil {
			return err
		}
		if remaining == 0 {
			column := "frais_inscription_paye"
			if typeFrais == models.TypeFraisLivre {
				column = "frais_livre_paye"
			}
			if _, err := tx.Exec(`UPDATE ecolages SET `+column+` = false WHERE id = $1`, ecolageID); err != nil {
				return err
			}
		}
	}

	if err := recomputeEcolageStatut(tx, ecolageID); err != nil {
		return err
	}

	return tx.Commit()
}

// recomputeEcolageStatut persists the derived status from the current
// amounts. Runs after every ledger mutation, inside the same transaction.
func recomputeEcolageStatut(tx *sql.Tx, ecolageID string) error {
	_, err := tx.Exec(
		`UPDATE ecolages
		 SET statut = CASE
		     WHEN montant_paye >= montant_total THEN 'paye'
		     WHEN montant_paye > 0 THEN 'partiel'
		     ELSE 'non_paye'
		 END
		 WHERE id = $1`,
		ecolageID,
	)
	return err
}

// GetFinanceStats aggregates ledgers and payments, the payment figures
// restricted to the optional date range.
func GetFinanceStats(db *sql.DB, dateDebut, dateFin *time.Time) (*models.FinanceStats, error) {
	stats := &models.FinanceStats{}
	err := db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(CASE WHEN statut = 'paye' THEN 1 END),
		       COUNT(CASE WHEN statut = 'partiel' THEN 1 END),
		       COUNT(CASE WHEN statut = 'non_paye' THEN 1 END),
		       COALESCE(SUM(montant_total), 0),
		       COALESCE(SUM(montant_paye), 0),
		       COALESCE(SUM(montant_restant), 0)
		FROM ecolages`,
	).Scan(&stats.TotalEcolages, &stats.Payes, &stats.Partiels, &stats.NonPayes,
		&stats.MontantAttendu, &stats.MontantCollecte, &stats.MontantRestant)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT COUNT(*), COALESCE(SUM(montant), 0)
		FROM paiements
		WHERE statut = 'valide'`
	var args []interface{}
	if dateDebut != nil {
		args = append(args, *dateDebut)
		query += fmt.Sprintf(" AND date_paiement >= $%d", len(args))
	}
	if dateFin != nil {
		args = append(args, *dateFin)
		query += fmt.Sprintf(" AND date_paiement <= $%d", len(args))
	}

	if err := db.QueryRow(query, args...).Scan(&stats.NbPaiements, &stats.TotalPaiements); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetRapportFinancier returns one line per day of valid payments in the
// optional date range, oldest first.
func GetRapportFinancier(db *sql.DB, dateDebut, dateFin *time.Time) ([]models.RapportLigne, error) {
	query := `
		SELECT TO_CHAR(date_paiement, 'YYYY-MM-DD'), COUNT(*), COALESCE(SUM(montant), 0)
		FROM paiements
		WHERE statut = 'valide'`
	var args []interface{}
	if dateDebut != nil {
		args = append(args, *dateDebut)
		query += fmt.Sprintf(" AND date_paiement >= $%d", len(args))
	}
	if dateFin != nil {
		args = append(args, *dateFin)
		query += fmt.Sprintf(" AND date_paiement <= $%d", len(args))
	}
	query += " GROUP BY date_paiement ORDER BY date_paiement"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rapport []models.RapportLigne
	for rows.Next() {
		var l models.RapportLigne
		if err := rows.Scan(&l.Date, &l.NbPaiements, &l.TotalPaiements); err != nil {
			return nil, err
		}
		rapport = append(rapport, l)
	}
	return rapport, rows.Err()
}
