package database

import (
	"database/sql"
	"fmt"

	"github.com/SafidyRakotonirina/blessing/app/models"
)

// CreateNiveau inserts a course level with its fee schedule.
func CreateNiveau(db *sql.DB, n *models.Niveau) error {
	err := db.QueryRow(
		`INSERT INTO niveaux (code, nom, frais_inscription, frais_ecolage, frais_livre, duree_semaines)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, actif`,
		n.Code, n.Nom, n.FraisInscription, n.FraisEcolage, n.FraisLivre, n.DureeSemaines,
	).Scan(&n.ID, &n.Actif)
	if IsUniqueViolation(err) {
		return Conflictf("un niveau avec le code %s existe déjà", n.Code)
	}
	return err
}

// GetNiveauByID fetches one niveau.
func GetNiveauByID(db *sql.DB, id string) (*models.Niveau, error) {
	n := &models.Niveau{}
	err := db.QueryRow(
		`SELECT id, code, nom, frais_inscription, frais_ecolage, frais_livre, duree_semaines, actif
		 FROM niveaux WHERE id = $1`,
		id,
	).Scan(&n.ID, &n.Code, &n.Nom, &n.FraisInscription, &n.FraisEcolage,
		&n.FraisLivre, &n.DureeSemaines, &n.Actif)
	if err == sql.ErrNoRows {
		return nil, NotFoundf("niveau introuvable")
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListNiveaux returns levels, optionally only active ones.
func ListNiveaux(db *sql.DB, actif *bool) ([]*models.Niveau, error) {
	query := `SELECT id, code, nom, frais_inscription, frais_ecolage, frais_livre, duree_semaines, actif
	          FROM niveaux WHERE 1=1`
	var args []interface{}
	if actif != nil {
		args = append(args, *actif)
		query += fmt.Sprintf(" AND actif = $%d", len(args))
	}
	query += " ORDER BY code"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var niveaux []*models.Niveau
	for rows.Next() {
		n := &models.Niveau{}
		err := rows.Scan(&n.ID, &n.Code, &n.Nom, &n.FraisInscription,
			&n.FraisEcolage, &n.FraisLivre, &n.DureeSemaines, &n.Actif)
		if err != nil {
			return nil, err
		}
		niveaux = append(niveaux, n)
	}
	return niveaux, rows.Err()
}

// UpdateNiveau applies the non-nil fields of the patch.
func UpdateNiveau(db *sql.DB, id string, patch *models.NiveauUpdate) error {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Code != nil {
		add("code", *patch.Code)
	}
	if patch.Nom != nil {
		add("nom", *patch.Nom)
	}
	if patch.FraisInscription != nil {
		add("frais_inscription", *patch.FraisInscription)
	}
	if patch.FraisEcolage != nil {
		add("frais_ecolage", *patch.FraisEcolage)
	}
	if patch.FraisLivre != nil {
		add("frais_livre", *patch.FraisLivre)
	}
	if patch.DureeSemaines != nil {
		add("duree_semaines", *patch.DureeSemaines)
	}
	if patch.Actif != nil {
		add("actif", *patch.Actif)
	}

	if len(sets) == 0 {
		return Validationf("aucun champ à mettre à jour")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE niveaux SET %s WHERE id = $%d", joinSets(sets), len(args))

	result, err := db.Exec(query, args...)
	if IsUniqueViolation(err) {
		return Conflictf("un niveau avec ce code existe déjà")
	}
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("niveau introuvable")
	}
	return nil
}

// NiveauIsUsed reports whether any vague references the level.
func NiveauIsUsed(db *sql.DB, id string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM vagues WHERE niveau_id = $1`, id).Scan(&count)
	return count > 0, err
}

// DeleteNiveau removes an unreferenced level.
func DeleteNiveau(db *sql.DB, id string) error {
	used, err := NiveauIsUsed(db, id)
	if err != nil {
		return err
	}
	if used {
		return Conflictf("niveau utilisé par des vagues")
	}

	result, err := db.Exec(`DELETE FROM niveaux WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("niveau introuvable")
	}
	return nil
}
