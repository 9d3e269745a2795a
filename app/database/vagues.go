package database

import (
	"database/sql"
	"fmt"

	"github.com/SafidyRakotonirina/blessing/app/models"
)

// VagueFilters narrows ListVagues.
type VagueFilters struct {
	Statut       string
	NiveauID     string
	EnseignantID string
	SalleID      string
	Search       string
}

const vagueSelect = `
	SELECT v.id, v.nom, v.niveau_id, v.enseignant_id, v.salle_id,
	       v.date_debut, v.date_fin, v.capacite_max, v.statut, v.created_at,
	       n.code, n.nom, u.nom, u.prenom, s.nom,
	       (SELECT COUNT(*) FROM inscriptions WHERE vague_id = v.id AND statut = 'actif') AS nb_inscrits
	FROM vagues v
	LEFT JOIN niveaux n ON v.niveau_id = n.id
	LEFT JOIN utilisateurs u ON v.enseignant_id = u.id
	LEFT JOIN salles s ON v.salle_id = s.id`

func scanVague(scanner interface{ Scan(...interface{}) error }) (*models.Vague, error) {
	v := &models.Vague{}
	err := scanner.Scan(&v.ID, &v.Nom, &v.NiveauID, &v.EnseignantID, &v.SalleID,
		&v.DateDebut, &v.DateFin, &v.CapaciteMax, &v.Statut, &v.CreatedAt,
		&v.NiveauCode, &v.NiveauNom, &v.EnseignantNom, &v.EnseignantPrenom,
		&v.SalleNom, &v.NbInscrits)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVague inserts a vague together with its weekly slot set as one
// transaction. Capacity comes from the salle when one is set, from the
// request override otherwise, falling back to the default. Room and teacher
// double-booking is rejected per (jour, horaire) against active vagues.
func CreateVague(db *sql.DB, v *models.Vague, slots []models.SlotRef) error {
	if len(slots) == 0 {
		return Validationf("au moins une plage horaire est requise")
	}
	if v.Statut == "" {
		v.Statut = models.VagueStatutPlanifie
	}
	if !models.ValidVagueStatut(v.Statut) {
		return Validationf("statut inconnu: %s", v.Statut)
	}
	if !v.DateFin.After(v.DateDebut) {
		return Validationf("date_fin doit être après date_debut")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM niveaux WHERE id = $1)`, v.NiveauID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return NotFoundf("niveau introuvable")
	}

	if v.SalleID != nil {
		var capacite int
		err := tx.QueryRow(`SELECT capacite FROM salles WHERE id = $1`, *v.SalleID).Scan(&capacite)
		if err == sql.ErrNoRows {
			return NotFoundf("salle introuvable")
		}
		if err != nil {
			return err
		}
		v.CapaciteMax = capacite
	} else if v.CapaciteMax <= 0 {
		v.CapaciteMax = models.DefaultCapacite
	}

	if isActiveStatut(v.Statut) {
		for _, slot := range slots {
			if err := checkSlotConflicts(tx, v.SalleID, v.EnseignantID, slot, ""); err != nil {
				return err
			}
		}
	}

	err = tx.QueryRow(
		`INSERT INTO vagues (nom, niveau_id, enseignant_id, salle_id, date_debut, date_fin, capacite_max, statut)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		v.Nom, v.NiveauID, v.EnseignantID, v.SalleID, v.DateDebut, v.DateFin,
		v.CapaciteMax, v.Statut,
	).Scan(&v.ID, &v.CreatedAt)
	if IsForeignKeyViolation(err) {
		return NotFoundf("enseignant introuvable")
	}
	if err != nil {
		return err
	}

	if err := insertSlots(tx, v.ID, slots); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSlots(tx *sql.Tx, vagueID string, slots []models.SlotRef) error {
	for _, slot := range slots {
		if slot.JourID == "" || slot.HoraireID == "" {
			return Validationf("jour_id et horaire_id requis pour chaque horaire")
		}
		_, err := tx.Exec(
			`INSERT INTO vague_horaires (vague_id, jour_id, horaire_id) VALUES ($1, $2, $3)`,
			vagueID, slot.JourID, slot.HoraireID,
		)
		if IsForeignKeyViolation(err) {
			return NotFoundf("jour ou horaire introuvable")
		}
		if IsUniqueViolation(err) {
			return Validationf("plage horaire dupliquée")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isActiveStatut(statut string) bool {
	return statut == models.VagueStatutPlanifie || statut == models.VagueStatutEnCours
}

// checkSlotConflicts rejects a slot already held, at the same (jour,
// horaire), by another active vague in the same salle or with the same
// enseignant.
func checkSlotConflicts(tx *sql.Tx, salleID, enseignantID *string, slot models.SlotRef, excludeVagueID string) error {
	if salleID != nil {
		var count int
		query := `
			SELECT COUNT(*)
			FROM vague_horaires vh
			JOIN vagues v ON vh.vague_id = v.id
			WHERE v.salle_id = $1 AND vh.jour_id = $2 AND vh.horaire_id = $3
			  AND v.statut IN ('planifie', 'en_cours')`
		args := []interface{}{*salleID, slot.JourID, slot.HoraireID}
		if excludeVagueID != "" {
			args = append(args, excludeVagueID)
			query += fmt.Sprintf(" AND v.id != $%d", len(args))
		}
		if err := tx.QueryRow(query, args...).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return Conflictf("la salle est déjà occupée sur ce créneau")
		}
	}

	if enseignantID != nil {
		var count int
		query := `
			SELECT COUNT(*)
			FROM vague_horaires vh
			JOIN vagues v ON vh.vague_id = v.id
			WHERE v.enseignant_id = $1 AND vh.jour_id = $2 AND vh.horaire_id = $3
			  AND v.statut IN ('planifie', 'en_cours')`
		args := []interface{}{*enseignantID, slot.JourID, slot.HoraireID}
		if excludeVagueID != "" {
			args = append(args, excludeVagueID)
			query += fmt.Sprintf(" AND v.id != $%d", len(args))
		}
		if err := tx.QueryRow(query, args...).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return Conflictf("l'enseignant est déjà occupé sur ce créneau")
		}
	}

	return nil
}

func getVagueHoraires(db *sql.DB, vagueID string) ([]models.VagueHoraire, error) {
	rows, err := db.Query(`
		SELECT vh.id, vh.vague_id, vh.jour_id, vh.horaire_id,
		       j.nom, j.ordre, h.heure_debut, h.heure_fin, h.libelle
		FROM vague_horaires vh
		JOIN jours j ON vh.jour_id = j.id
		JOIN horaires h ON vh.horaire_id = h.id
		WHERE vh.vague_id = $1
		ORDER BY j.ordre, h.heure_debut`,
		vagueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var horaires []models.VagueHoraire
	for rows.Next() {
		var vh models.VagueHoraire
		err := rows.Scan(&vh.ID, &vh.VagueID, &vh.JourID, &vh.HoraireID,
			&vh.JourNom, &vh.JourOrdre, &vh.HeureDebut, &vh.HeureFin, &vh.Libelle)
		if err != nil {
			return nil, err
		}
		horaires = append(horaires, vh)
	}
	return horaires, rows.Err()
}

// GetVagueByID returns the vague with its slot set and enrollment count.
func GetVagueByID(db *sql.DB, id string) (*models.Vague, error) {
	v, err := scanVague(db.QueryRow(vagueSelect+` WHERE v.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, NotFoundf("vague introuvable")
	}
	if err != nil {
		return nil, err
	}

	v.Horaires, err = getVagueHoraires(db, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ListVagues returns one page of vagues with their slots.
func ListVagues(db *sql.DB, filters VagueFilters, page Page) ([]*models.Vague, int, error) {
	where := " WHERE 1=1"
	var args []interface{}

	if filters.Statut != "" {
		args = append(args, filters.Statut)
		where += fmt.Sprintf(" AND v.statut = $%d", len(args))
	}
	if filters.NiveauID != "" {
		args = append(args, filters.NiveauID)
		where += fmt.Sprintf(" AND v.niveau_id = $%d", len(args))
	}
	if filters.EnseignantID != "" {
		args = append(args, filters.EnseignantID)
		where += fmt.Sprintf(" AND v.enseignant_id = $%d", len(args))
	}
	if filters.SalleID != "" {
		args = append(args, filters.SalleID)
		where += fmt.Sprintf(" AND v.salle_id = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += fmt.Sprintf(" AND v.nom ILIKE $%d", len(args))
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vagues v`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, page.Limit, page.Offset())
	query := vagueSelect + where +
		fmt.Sprintf(" ORDER BY v.date_debut DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vagues []*models.Vague
	for rows.Next() {
		v, err := scanVague(rows)
		if err != nil {
			return nil, 0, err
		}
		vagues = append(vagues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, v := range vagues {
		if v.Horaires, err = getVagueHoraires(db, v.ID); err != nil {
			return nil, 0, err
		}
	}
	return vagues, total, nil
}

// UpdateVague applies the non-nil fields of the patch and, when Horaires is
// non-nil, replaces the whole slot set, inside one transaction. Status
// changes go through transition validation and the merged (salle,
// enseignant, slots) combination is re-checked for double-booking.
func UpdateVague(db *sql.DB, id string, patch *models.VagueUpdate) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	current := &models.Vague{}
	err = tx.QueryRow(
		`SELECT id, nom, niveau_id, enseignant_id, salle_id, date_debut, date_fin, capacite_max, statut
		 FROM vagues WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&current.ID, &current.Nom, &current.NiveauID, &current.EnseignantID,
		&current.SalleID, &current.DateDebut, &current.DateFin,
		&current.CapaciteMax, &current.Statut)
	if err == sql.ErrNoRows {
		return NotFoundf("vague introuvable")
	}
	if err != nil {
		return err
	}

	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	statut := current.Statut
	if patch.Statut != nil {
		if !models.ValidVagueStatut(*patch.Statut) {
			return Validationf("statut inconnu: %s", *patch.Statut)
		}
		if !models.CanTransitionVague(current.Statut, *patch.Statut) {
			return Validationf("transition de statut invalide: %s -> %s", current.Statut, *patch.Statut)
		}
		statut = *patch.Statut
		add("statut", statut)
	}

	if patch.Nom != nil {
		add("nom", *patch.Nom)
	}
	if patch.NiveauID != nil {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM niveaux WHERE id = $1)`, *patch.NiveauID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return NotFoundf("niveau introuvable")
		}
		add("niveau_id", *patch.NiveauID)
	}

	enseignantID := current.EnseignantID
	if patch.EnseignantID != nil {
		if *patch.EnseignantID == "" {
			enseignantID = nil
			add("enseignant_id", nil)
		} else {
			enseignantID = patch.EnseignantID
			add("enseignant_id", *patch.EnseignantID)
		}
	}

	salleID := current.SalleID
	if patch.SalleID != nil {
		if *patch.SalleID == "" {
			salleID = nil
			add("salle_id", nil)
		} else {
			var capacite int
			err := tx.QueryRow(`SELECT capacite FROM salles WHERE id = $1`, *patch.SalleID).Scan(&capacite)
			if err == sql.ErrNoRows {
				return NotFoundf("salle introuvable")
			}
			if err != nil {
				return err
			}
			salleID = patch.SalleID
			add("salle_id", *patch.SalleID)
			add("capacite_max", capacite)
		}
	}

	if patch.DateDebut != nil {
		add("date_debut", *patch.DateDebut)
	}
	if patch.DateFin != nil {
		add("date_fin", *patch.DateFin)
	}

	slots := patch.Horaires
	if slots == nil {
		current.Horaires, err = getVagueHorairesTx(tx, id)
		if err != nil {
			return err
		}
		for _, vh := range current.Horaires {
			slots = append(slots, models.SlotRef{JourID: vh.JourID, HoraireID: vh.HoraireID})
		}
	} else if len(slots) == 0 {
		return Validationf("au moins une plage horaire est requise")
	}

	if isActiveStatut(statut) {
		for _, slot := range slots {
			if err := checkSlotConflicts(tx, salleID, enseignantID, slot, id); err != nil {
				return err
			}
		}
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := fmt.Sprintf("UPDATE vagues SET %s WHERE id = $%d", joinSets(sets), len(args))
		if _, err := tx.Exec(query, args...); err != nil {
			if IsForeignKeyViolation(err) {
				return NotFoundf("enseignant introuvable")
			}
			return err
		}
	}

	if patch.Horaires != nil {
		if _, err := tx.Exec(`DELETE FROM vague_horaires WHERE vague_id = $1`, id); err != nil {
			return err
		}
		if err := insertSlots(tx, id, patch.Horaires); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func getVagueHorairesTx(tx *sql.Tx, vagueID string) ([]models.VagueHoraire, error) {
	rows, err := tx.Query(
		`SELECT id, vague_id, jour_id, horaire_id FROM vague_horaires WHERE vague_id = $1`,
		vagueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var horaires []models.VagueHoraire
	for rows.Next() {
		var vh models.VagueHoraire
		if err := rows.Scan(&vh.ID, &vh.VagueID, &vh.JourID, &vh.HoraireID); err != nil {
			return nil, err
		}
		horaires = append(horaires, vh)
	}
	return horaires, rows.Err()
}

// DeleteVague removes the vague and its slots, refused while any active
// inscription references it.
func DeleteVague(db *sql.DB, id string) error {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM inscriptions WHERE vague_id = $1 AND statut = 'actif'`,
		id,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return Conflictf("impossible de supprimer une vague avec des inscriptions actives")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vague_horaires WHERE vague_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM vagues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("vague introuvable")
	}

	return tx.Commit()
}

// CheckCapacite returns the capacity, current active enrollment count and
// whether a seat remains.
func CheckCapacite(db *sql.DB, id string) (capaciteMax, nbInscrits int, disponible bool, err error) {
	err = db.QueryRow(
		`SELECT v.capacite_max,
		        (SELECT COUNT(*) FROM inscriptions WHERE vague_id = v.id AND statut = 'actif')
		 FROM vagues v WHERE v.id = $1`,
		id,
	).Scan(&capaciteMax, &nbInscrits)
	if err == sql.ErrNoRows {
		return 0, 0, false, NotFoundf("vague introuvable")
	}
	if err != nil {
		return 0, 0, false, err
	}
	return capaciteMax, nbInscrits, nbInscrits < capaciteMax, nil
}

// GetPlanning returns every planifie/en_cours vague with slots, optionally
// filtered by salle or enseignant.
func GetPlanning(db *sql.DB, salleID, enseignantID string) ([]*models.Vague, error) {
	query := vagueSelect + ` WHERE v.statut IN ('planifie', 'en_cours')`
	var args []interface{}

	if salleID != "" {
		args = append(args, salleID)
		query += fmt.Sprintf(" AND v.salle_id = $%d", len(args))
	}
	if enseignantID != "" {
		args = append(args, enseignantID)
		query += fmt.Sprintf(" AND v.enseignant_id = $%d", len(args))
	}
	query += " ORDER BY v.date_debut"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vagues []*models.Vague
	for rows.Next() {
		v, err := scanVague(rows)
		if err != nil {
			return nil, err
		}
		vagues = append(vagues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, v := range vagues {
		if v.Horaires, err = getVagueHoraires(db, v.ID); err != nil {
			return nil, err
		}
	}
	return vagues, nil
}
