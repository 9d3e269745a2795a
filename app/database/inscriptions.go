package database

import (
	"database/sql"
	"time"

	"github.com/SafidyRakotonirina/blessing/app/models"
	"github.com/shopspring/decimal"
)

// CompleteInscription carries everything needed to enroll a student:
// either an existing student id or the identity of a new one, the target
// vague, and the initial payment taken at the desk.
type CompleteInscription struct {
	EtudiantID        *string
	EtudiantNom       string
	EtudiantPrenom    string
	EtudiantTelephone string
	EtudiantEmail     *string

	VagueID         string
	DateInscription time.Time
	Remarques       *string

	FraisInscriptionPaye  bool
	MontantEcolageInitial decimal.Decimal
	FraisLivrePaye        bool
}

// CreateCompleteInscription creates the student (when new), the
// inscription and the opening ecolage as one transaction. Any failure
// rolls everything back, the student row included.
func CreateCompleteInscription(db *sql.DB, in *CompleteInscription) (inscriptionID, etudiantID string, err error) {
	if in.MontantEcolageInitial.IsNegative() {
		return "", "", Validationf("le montant initial ne peut pas être négatif")
	}

	tx, err := db.Begin()
	if err != nil {
		return "", "", err
	}
	defer tx.Rollback()

	niveau := &models.Niveau{}
	var capaciteMax, nbInscrits int
	err = tx.QueryRow(
		`SELECT n.frais_inscription, n.frais_ecolage, n.frais_livre, v.capacite_max,
		        (SELECT COUNT(*) FROM inscriptions WHERE vague_id = v.id AND statut = 'actif')
		 FROM vagues v
		 JOIN niveaux n ON v.niveau_id = n.id
		 WHERE v.id = $1`,
		in.VagueID,
	).Scan(&niveau.FraisInscription, &niveau.FraisEcolage, &niveau.FraisLivre,
		&capaciteMax, &nbInscrits)
	if err == sql.ErrNoRows {
		return "", "", NotFoundf("vague ou niveau introuvable")
	}
	if err != nil {
		return "", "", err
	}
	if nbInscrits >= capaciteMax {
		return "", "", Conflictf("la vague a atteint sa capacité maximale")
	}

	total, paye, restant, statut := models.OpenLedgerAmounts(
		niveau, in.FraisInscriptionPaye, in.MontantEcolageInitial, in.FraisLivrePaye)
	if paye.GreaterThan(total) {
		return "", "", Validationf("le paiement initial dépasse le montant total")
	}

	if in.EtudiantID != nil {
		etudiantID = *in.EtudiantID
	} else {
		if in.EtudiantNom == "" || in.EtudiantPrenom == "" {
			return "", "", Validationf("nom et prénom de l'étudiant requis")
		}
		err = tx.QueryRow(
			`INSERT INTO utilisateurs (nom, prenom, telephone, email, role)
			 VALUES ($1, $2, $3, $4, 'etudiant')
			 RETURNING id`,
			in.EtudiantNom, in.EtudiantPrenom, in.EtudiantTelephone, in.EtudiantEmail,
		).Scan(&etudiantID)
		if IsUniqueViolation(err) {
			return "", "", Conflictf("cet email est déjà utilisé")
		}
		if err != nil {
			return "", "", err
		}
	}

	err = tx.QueryRow(
		`INSERT INTO inscriptions (etudiant_id, vague_id, date_inscription, remarques)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		etudiantID, in.VagueID, in.DateInscription, in.Remarques,
	).Scan(&inscriptionID)
	if IsForeignKeyViolation(err) {
		return "", "", NotFoundf("étudiant introuvable")
	}
	if err != nil {
		return "", "", err
	}

	_, err = tx.Exec(
		`INSERT INTO ecolages (inscription_id, montant_total, montant_paye, montant_restant, frais_inscription_paye, frais_livre_paye, statut)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inscriptionID, total, paye, restant,
		in.FraisInscriptionPaye, in.FraisLivrePaye, statut,
	)
	if err != nil {
		return "", "", err
	}

	if err := tx.Commit(); err != nil {
		return "", "", err
	}
	return inscriptionID, etudiantID, nil
}

// GetInscriptionByID returns the inscription with student, vague and
// ledger details plus the payment history.
func GetInscriptionByID(db *sql.DB, id string) (*models.Inscription, error) {
	i := &models.Inscription{}
	ec := &models.Ecolage{}
	var ecolageID sql.NullString
	err := db.QueryRow(`
		SELECT i.id, i.etudiant_id, i.vague_id, i.date_inscription, i.remarques, i.statut,
		       u.nom, u.prenom, u.email, u.telephone,
		       v.nom, n.code, n.nom,
		       ec.id, ec.montant_total, ec.montant_paye, ec.montant_restant,
		       ec.frais_inscription_paye, ec.frais_livre_paye, ec.statut
		FROM inscriptions i
		JOIN utilisateurs u ON i.etudiant_id = u.id
		JOIN vagues v ON i.vague_id = v.id
		JOIN niveaux n ON v.niveau_id = n.id
		LEFT JOIN ecolages ec ON i.id = ec.inscription_id
		WHERE i.id = $1`,
		id,
	).Scan(&i.ID, &i.EtudiantID, &i.VagueID, &i.DateInscription, &i.Remarques, &i.Statut,
		&i.EtudiantNom, &i.EtudiantPrenom, &i.EtudiantEmail, &i.EtudiantTelephone,
		&i.VagueNom, &i.NiveauCode, &i.NiveauNom,
		&ecolageID, &ec.MontantTotal, &ec.MontantPaye, &ec.MontantRestant,
		&ec.FraisInscriptionPaye, &ec.FraisLivrePaye, &ec.Statut)
	if err == sql.ErrNoRows {
		return nil, NotFoundf("inscription introuvable")
	}
	if err != nil {
		return nil, err
	}

	if ecolageID.Valid {
		ec.ID = ecolageID.String
		ec.InscriptionID = i.ID
		ec.Paiements, err = GetPaiementsByEcolage(db, ec.ID)
		if err != nil {
			return nil, err
		}
		i.Ecolage = ec
	}
	return i, nil
}

// GetInscriptionsByEtudiant returns every inscription of one student with
// vague and ledger summaries.
func GetInscriptionsByEtudiant(db *sql.DB, etudiantID string) ([]*models.Inscription, error) {
	rows, err := db.Query(`
		SELECT i.id, i.etudiant_id, i.vague_id, i.date_inscription, i.remarques, i.statut,
		       v.nom, n.code, n.nom,
		       ec.id, ec.montant_total, ec.montant_paye, ec.montant_restant,
		       ec.frais_inscription_paye, ec.frais_livre_paye, ec.statut
		FROM inscriptions i
		JOIN vagues v ON i.vague_id = v.id
		JOIN niveaux n ON v.niveau_id = n.id
		LEFT JOIN ecolages ec ON i.id = ec.inscription_id
		WHERE i.etudiant_id = $1
		ORDER BY i.date_inscription DESC`,
		etudiantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inscriptions []*models.Inscription
	for rows.Next() {
		i := &models.Inscription{}
		ec := &models.Ecolage{}
		var ecolageID sql.NullString
		err := rows.Scan(&i.ID, &i.EtudiantID, &i.VagueID, &i.DateInscription, &i.Remarques, &i.Statut,
			&i.VagueNom, &i.NiveauCode, &i.NiveauNom,
			&ecolageID, &ec.MontantTotal, &ec.MontantPaye, &ec.MontantRestant,
			&ec.FraisInscriptionPaye, &ec.FraisLivrePaye, &ec.Statut)
		if err != nil {
			return nil, err
		}
		if ecolageID.Valid {
			ec.ID = ecolageID.String
			ec.InscriptionID = i.ID
			i.Ecolage = ec
		}
		inscriptions = append(inscriptions, i)
	}
	return inscriptions, rows.Err()
}

// CancelInscription marks the inscription annule, freeing its seat.
func CancelInscription(db *sql.DB, id string) error {
	result, err := db.Exec(
		`UPDATE inscriptions SET statut = 'annule' WHERE id = $1 AND statut = 'actif'`,
		id,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("inscription active introuvable")
	}
	return nil
}

// GetInscriptionStats counts inscriptions over an optional date range.
func GetInscriptionStats(db *sql.DB, dateDebut, dateFin *time.Time) (*models.InscriptionStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(CASE WHEN statut = 'actif' THEN 1 END),
		       COUNT(CASE WHEN statut = 'annule' THEN 1 END)
		FROM inscriptions
		WHERE 1=1`
	var args []interface{}

	if dateDebut != nil {
		args = append(args, *dateDebut)
		query += " AND date_inscription >= $1"
	}
	if dateFin != nil {
		args = append(args, *dateFin)
		if len(args) == 1 {
			query += " AND date_inscription <= $1"
		} else {
			query += " AND date_inscription <= $2"
		}
	}

	stats := &models.InscriptionStats{}
	err := db.QueryRow(query, args...).Scan(&stats.Total, &stats.Actifs, &stats.Annules)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
