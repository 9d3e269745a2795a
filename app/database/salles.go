package database

import (
	"database/sql"
	"fmt"

	"github.com/SafidyRakotonirina/blessing/app/models"
)

// CreateSalle inserts a room.
func CreateSalle(db *sql.DB, s *models.Salle) error {
	if s.Capacite <= 0 {
		return Validationf("la capacité doit être positive")
	}
	return db.QueryRow(
		`INSERT INTO salles (nom, capacite, equipements) VALUES ($1, $2, $3)
		 RETURNING id, actif`,
		s.Nom, s.Capacite, s.Equipements,
	).Scan(&s.ID, &s.Actif)
}

// GetSalleByID fetches one room.
func GetSalleByID(db *sql.DB, id string) (*models.Salle, error) {
	s := &models.Salle{}
	err := db.QueryRow(
		`SELECT id, nom, capacite, equipements, actif FROM salles WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Nom, &s.Capacite, &s.Equipements, &s.Actif)
	if err == sql.ErrNoRows {
		return nil, NotFoundf("salle introuvable")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListSalles returns rooms with their active vague count.
func ListSalles(db *sql.DB, actif *bool) ([]*models.Salle, error) {
	query := `
		SELECT s.id, s.nom, s.capacite, s.equipements, s.actif,
		       (SELECT COUNT(DISTINCT v.id) FROM vagues v
		        WHERE v.salle_id = s.id AND v.statut IN ('planifie', 'en_cours')) AS nb_vagues_actives
		FROM salles s
		WHERE 1=1`
	var args []interface{}
	if actif != nil {
		args = append(args, *actif)
		query += fmt.Sprintf(" AND s.actif = $%d", len(args))
	}
	query += " ORDER BY s.nom"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var salles []*models.Salle
	for rows.Next() {
		s := &models.Salle{}
		err := rows.Scan(&s.ID, &s.Nom, &s.Capacite, &s.Equipements, &s.Actif, &s.NbVaguesActives)
		if err != nil {
			return nil, err
		}
		salles = append(salles, s)
	}
	return salles, rows.Err()
}

// UpdateSalle applies the non-nil fields of the patch.
func UpdateSalle(db *sql.DB, id string, patch *models.SalleUpdate) error {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Nom != nil {
		add("nom", *patch.Nom)
	}
	if patch.Capacite != nil {
		if *patch.Capacite <= 0 {
			return Validationf("la capacité doit être positive")
		}
		add("capacite", *patch.Capacite)
	}
	if patch.Equipements != nil {
		add("equipements", *patch.Equipements)
	}
	if patch.Actif != nil {
		add("actif", *patch.Actif)
	}

	if len(sets) == 0 {
		return Validationf("aucun champ à mettre à jour")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE salles SET %s WHERE id = $%d", joinSets(sets), len(args))

	result, err := db.Exec(query, args...)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("salle introuvable")
	}
	return nil
}

// SalleIsUsed reports whether any vague references the room.
func SalleIsUsed(db *sql.DB, id string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM vagues WHERE salle_id = $1`, id).Scan(&count)
	return count > 0, err
}

// DeleteSalle soft-deletes an unused room.
func DeleteSalle(db *sql.DB, id string) error {
	used, err := SalleIsUsed(db, id)
	if err != nil {
		return err
	}
	if used {
		return Conflictf("salle utilisée par des vagues")
	}

	result, err := db.Exec(`UPDATE salles SET actif = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("salle introuvable")
	}
	return nil
}

// GetSallesDisponibles returns active rooms free at the (jour, horaire)
// slot, optionally with a minimum capacity.
func GetSallesDisponibles(db *sql.DB, jourID, horaireID string, capaciteMin *int) ([]*models.Salle, error) {
	query := `
		SELECT s.id, s.nom, s.capacite, s.equipements, s.actif, 0
		FROM salles s
		WHERE s.actif = true
		  AND s.id NOT IN (
			SELECT DISTINCT v.salle_id
			FROM vagues v
			JOIN vague_horaires vh ON v.id = vh.vague_id
			WHERE vh.jour_id = $1
			  AND vh.horaire_id = $2
			  AND v.statut IN ('planifie', 'en_cours')
			  AND v.salle_id IS NOT NULL
		  )`
	args := []interface{}{jourID, horaireID}

	if capaciteMin != nil {
		args = append(args, *capaciteMin)
		query += fmt.Sprintf(" AND s.capacite >= $%d", len(args))
	}
	query += " ORDER BY s.capacite DESC, s.nom"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var salles []*models.Salle
	for rows.Next() {
		s := &models.Salle{}
		err := rows.Scan(&s.ID, &s.Nom, &s.Capacite, &s.Equipements, &s.Actif, &s.NbVaguesActives)
		if err != nil {
			return nil, err
		}
		salles = append(salles, s)
	}
	return salles, rows.Err()
}

// SalleEstDisponible reports whether the room is free at the slot,
// ignoring excludeVagueID when editing in place.
func SalleEstDisponible(db *sql.DB, salleID, jourID, horaireID string, excludeVagueID *string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM vague_horaires vh
		JOIN vagues v ON vh.vague_id = v.id
		WHERE v.salle_id = $1
		  AND vh.jour_id = $2
		  AND vh.horaire_id = $3
		  AND v.statut IN ('planifie', 'en_cours')`
	args := []interface{}{salleID, jourID, horaireID}

	if excludeVagueID != nil {
		args = append(args, *excludeVagueID)
		query += fmt.Sprintf(" AND v.id != $%d", len(args))
	}

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// GetSalleOccupation returns the active vagues holding the room with their
// slots, plus the full jour and horaire catalogs for grid rendering.
func GetSalleOccupation(db *sql.DB, salleID string) (map[string]interface{}, error) {
	rows, err := db.Query(`
		SELECT v.id, v.nom, v.statut, n.code, u.nom, u.prenom
		FROM vagues v
		JOIN niveaux n ON v.niveau_id = n.id
		LEFT JOIN utilisateurs u ON v.enseignant_id = u.id
		WHERE v.salle_id = $1 AND v.statut IN ('planifie', 'en_cours')`,
		salleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type occupation struct {
		ID               string                `json:"id"`
		Nom              string                `json:"nom"`
		Statut           string                `json:"statut"`
		NiveauCode       string                `json:"niveau_code"`
		EnseignantNom    *string               `json:"enseignant_nom"`
		EnseignantPrenom *string               `json:"enseignant_prenom"`
		Horaires         []models.VagueHoraire `json:"horaires"`
	}

	var vagues []occupation
	for rows.Next() {
		var o occupation
		err := rows.Scan(&o.ID, &o.Nom, &o.Statut, &o.NiveauCode, &o.EnseignantNom, &o.EnseignantPrenom)
		if err != nil {
			return nil, err
		}
		vagues = append(vagues, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range vagues {
		horaires, err := getVagueHoraires(db, vagues[i].ID)
		if err != nil {
			return nil, err
		}
		vagues[i].Horaires = horaires
	}

	jours, err := ListJours(db)
	if err != nil {
		return nil, err
	}
	horaires, err := ListHoraires(db, boolPtr(true))
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"vagues":   vagues,
		"jours":    jours,
		"horaires": horaires,
	}, nil
}

// GetSalleStats aggregates room usage.
func GetSalleStats(db *sql.DB) (*models.SalleStats, error) {
	stats := &models.SalleStats{}
	err := db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM salles WHERE actif = true),
		       (SELECT COALESCE(SUM(capacite), 0) FROM salles WHERE actif = true),
		       (SELECT COALESCE(AVG(capacite), 0) FROM salles WHERE actif = true),
		       (SELECT COUNT(*) FROM vagues
		        WHERE salle_id IS NOT NULL AND statut IN ('planifie', 'en_cours'))`,
	).Scan(&stats.TotalSalles, &stats.CapaciteTotale, &stats.CapaciteMoyenne, &stats.TotalVaguesActives)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func boolPtr(b bool) *bool { return &b }
