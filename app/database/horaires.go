package database

import (
	"database/sql"
	"fmt"

	"github.com/SafidyRakotonirina/blessing/app/models"
)

// ListJours returns the active weekday catalog in week order.
func ListJours(db *sql.DB) ([]models.Jour, error) {
	rows, err := db.Query(`SELECT id, nom, ordre, actif FROM jours WHERE actif = true ORDER BY ordre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jours []models.Jour
	for rows.Next() {
		var j models.Jour
		if err := rows.Scan(&j.ID, &j.Nom, &j.Ordre, &j.Actif); err != nil {
			return nil, err
		}
		jours = append(jours, j)
	}
	return jours, rows.Err()
}

// CreateHoraire inserts a time window after checking fin > debut.
func CreateHoraire(db *sql.DB, h *models.Horaire) error {
	if !models.ValidTimeRange(h.HeureDebut, h.HeureFin) {
		return Validationf("l'heure de fin doit être après l'heure de début")
	}
	return db.QueryRow(
		`INSERT INTO horaires (heure_debut, heure_fin, libelle) VALUES ($1, $2, $3)
		 RETURNING id, actif`,
		h.HeureDebut, h.HeureFin, h.Libelle,
	).Scan(&h.ID, &h.Actif)
}

// GetHoraireByID fetches one time window.
func GetHoraireByID(db *sql.DB, id string) (*models.Horaire, error) {
	h := &models.Horaire{}
	err := db.QueryRow(
		`SELECT id, heure_debut, heure_fin, libelle, actif FROM horaires WHERE id = $1`,
		id,
	).Scan(&h.ID, &h.HeureDebut, &h.HeureFin, &h.Libelle, &h.Actif)
	if err == sql.ErrNoRows {
		return nil, NotFoundf("horaire introuvable")
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

// ListHoraires returns the catalog, optionally only active windows.
func ListHoraires(db *sql.DB, actif *bool) ([]models.Horaire, error) {
	query := `SELECT id, heure_debut, heure_fin, libelle, actif FROM horaires WHERE 1=1`
	var args []interface{}
	if actif != nil {
		args = append(args, *actif)
		query += fmt.Sprintf(" AND actif = $%d", len(args))
	}
	query += " ORDER BY heure_debut"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var horaires []models.Horaire
	for rows.Next() {
		var h models.Horaire
		if err := rows.Scan(&h.ID, &h.HeureDebut, &h.HeureFin, &h.Libelle, &h.Actif); err != nil {
			return nil, err
		}
		horaires = append(horaires, h)
	}
	return horaires, rows.Err()
}

// UpdateHoraire applies the non-nil fields of the patch, revalidating the
// time range against the merged values.
func UpdateHoraire(db *sql.DB, id string, patch *models.HoraireUpdate) error {
	current, err := GetHoraireByID(db, id)
	if err != nil {
		return err
	}

	debut := current.HeureDebut
	fin := current.HeureFin
	if patch.HeureDebut != nil {
		debut = *patch.HeureDebut
	}
	if patch.HeureFin != nil {
		fin = *patch.HeureFin
	}
	if !models.ValidTimeRange(debut, fin) {
		return Validationf("l'heure de fin doit être après l'heure de début")
	}

	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.HeureDebut != nil {
		add("heure_debut", *patch.HeureDebut)
	}
	if patch.HeureFin != nil {
		add("heure_fin", *patch.HeureFin)
	}
	if patch.Libelle != nil {
		add("libelle", *patch.Libelle)
	}
	if patch.Actif != nil {
		add("actif", *patch.Actif)
	}

	if len(sets) == 0 {
		return Validationf("aucun champ à mettre à jour")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE horaires SET %s WHERE id = $%d", joinSets(sets), len(args))
	_, err = db.Exec(query, args...)
	return err
}

// HoraireIsUsed reports whether any vague slot references the window.
func HoraireIsUsed(db *sql.DB, id string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM vague_horaires WHERE horaire_id = $1`, id).Scan(&count)
	return count > 0, err
}

// DeleteHoraire removes an unused time window.
func DeleteHoraire(db *sql.DB, id string) error {
	used, err := HoraireIsUsed(db, id)
	if err != nil {
		return err
	}
	if used {
		return Conflictf("horaire utilisé par des vagues")
	}

	result, err := db.Exec(`DELETE FROM horaires WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("horaire introuvable")
	}
	return nil
}

// GetHorairesDisponibles returns active windows during which the room is
// free on the given day, optionally ignoring one vague for edits.
func GetHorairesDisponibles(db *sql.DB, jourID, salleID string, excludeVagueID *string) ([]models.Horaire, error) {
	query := `
		SELECT h.id, h.heure_debut, h.heure_fin, h.libelle, h.actif
		FROM horaires h
		WHERE h.actif = true
		  AND h.id NOT IN (
			SELECT vh.horaire_id
			FROM vague_horaires vh
			JOIN vagues v ON vh.vague_id = v.id
			WHERE vh.jour_id = $1
			  AND v.salle_id = $2
			  AND v.statut IN ('planifie', 'en_cours')`
	args := []interface{}{jourID, salleID}

	if excludeVagueID != nil {
		args = append(args, *excludeVagueID)
		query += fmt.Sprintf(" AND v.id != $%d", len(args))
	}
	query += `) ORDER BY h.heure_debut`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var horaires []models.Horaire
	for rows.Next() {
		var h models.Horaire
		if err := rows.Scan(&h.ID, &h.HeureDebut, &h.HeureFin, &h.Libelle, &h.Actif); err != nil {
			return nil, err
		}
		horaires = append(horaires, h)
	}
	return horaires, rows.Err()
}
