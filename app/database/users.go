package database

import (
	"database/sql"
	"fmt"

	"github.com/SafidyRakotonirina/blessing/app/models"
)

// UserFilters narrows ListUsers.
type UserFilters struct {
	Role   string
	Actif  *bool
	Search string
}

// CreateUser inserts a user. The caller is responsible for hashing the
// password beforehand.
func CreateUser(db *sql.DB, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleEtudiant
	}
	if !models.ValidRole(user.Role) {
		return Validationf("role inconnu: %s", user.Role)
	}

	var password interface{}
	if user.Password != "" {
		password = user.Password
	}

	err := db.QueryRow(
		`INSERT INTO utilisateurs (nom, prenom, email, telephone, password, role, google_id, photo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, actif, created_at`,
		user.Nom, user.Prenom, user.Email, user.Telephone, password,
		user.Role, user.GoogleID, user.PhotoURL,
	).Scan(&user.ID, &user.Actif, &user.CreatedAt)
	if IsUniqueViolation(err) {
		return Conflictf("cet email est déjà utilisé")
	}
	return err
}

// GetUserByEmail returns the full row, credential hash and refresh token
// included. Reserved for the auth flow.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	u := &models.User{}
	var password sql.NullString
	err := db.QueryRow(
		`SELECT id, nom, prenom, email, telephone, password, role, google_id, photo_url, actif, refresh_token, created_at
		 FROM utilisateurs WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.Telephone, &password,
		&u.Role, &u.GoogleID, &u.PhotoURL, &u.Actif, &u.RefreshToken, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, NotFoundf("utilisateur introuvable")
	}
	if err != nil {
		return nil, err
	}
	u.Password = password.String
	return u, nil
}

// GetUserByID returns a user without credential material.
func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	u := &models.User{}
	err := db.QueryRow(
		`SELECT id, nom, prenom, email, telephone, role, photo_url, actif, created_at
		 FROM utilisateurs WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.Telephone, &u.Role,
		&u.PhotoURL, &u.Actif, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, NotFoundf("utilisateur introuvable")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns one page of users with their enrollment counts.
func ListUsers(db *sql.DB, filters UserFilters, page Page) ([]*models.User, int, error) {
	where := " WHERE 1=1"
	var args []interface{}

	if filters.Role != "" {
		args = append(args, filters.Role)
		where += fmt.Sprintf(" AND u.role = $%d", len(args))
	}
	if filters.Actif != nil {
		args = append(args, *filters.Actif)
		where += fmt.Sprintf(" AND u.actif = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (u.nom ILIKE $%d OR u.prenom ILIKE $%d OR u.email ILIKE $%d)", n, n, n)
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM utilisateurs u`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT u.id, u.nom, u.prenom, u.email, u.telephone, u.role, u.photo_url, u.actif, u.created_at,
		       COUNT(DISTINCT i.id) AS nb_inscriptions,
		       COUNT(DISTINCT CASE WHEN i.statut = 'actif' THEN i.id END) AS nb_inscriptions_actives
		FROM utilisateurs u
		LEFT JOIN inscriptions i ON u.id = i.etudiant_id` + where + `
		GROUP BY u.id
		ORDER BY u.created_at DESC`
	args = append(args, page.Limit, page.Offset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		err := rows.Scan(&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.Telephone, &u.Role,
			&u.PhotoURL, &u.Actif, &u.CreatedAt, &u.NbInscriptions, &u.NbInscriptionsActives)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// UpdateUser applies the non-nil fields of the patch.
func UpdateUser(db *sql.DB, id string, patch *models.UserUpdate) error {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Nom != nil {
		add("nom", *patch.Nom)
	}
	if patch.Prenom != nil {
		add("prenom", *patch.Prenom)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Telephone != nil {
		add("telephone", *patch.Telephone)
	}
	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return Validationf("role inconnu: %s", *patch.Role)
		}
		add("role", *patch.Role)
	}
	if patch.PhotoURL != nil {
		add("photo_url", *patch.PhotoURL)
	}
	if patch.Actif != nil {
		add("actif", *patch.Actif)
	}

	if len(sets) == 0 {
		return Validationf("aucun champ à mettre à jour")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE utilisateurs SET %s WHERE id = $%d",
		joinSets(sets), len(args))

	result, err := db.Exec(query, args...)
	if IsUniqueViolation(err) {
		return Conflictf("cet email est déjà utilisé")
	}
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("utilisateur introuvable")
	}
	return nil
}

// UpdateUserPassword stores a new credential hash and revokes every session
// by clearing the refresh token.
func UpdateUserPassword(db *sql.DB, id, hashedPassword string) error {
	result, err := db.Exec(
		`UPDATE utilisateurs SET password = $1, refresh_token = NULL WHERE id = $2`,
		hashedPassword, id,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("utilisateur introuvable")
	}
	return nil
}

// ToggleUserActive flips the actif flag.
func ToggleUserActive(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE utilisateurs SET actif = NOT actif WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("utilisateur introuvable")
	}
	return nil
}

// UserIsReferenced reports whether the user appears in inscriptions, vagues
// or paiements.
func UserIsReferenced(db *sql.DB, id string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT (SELECT COUNT(*) FROM inscriptions WHERE etudiant_id = $1)
		      + (SELECT COUNT(*) FROM vagues WHERE enseignant_id = $1)
		      + (SELECT COUNT(*) FROM paiements WHERE utilisateur_id = $1)`,
		id,
	).Scan(&count)
	return count > 0, err
}

// DeleteUser hard-deletes an unreferenced user; referenced users are
// deactivated instead so history stays intact.
func DeleteUser(db *sql.DB, id string) error {
	used, err := UserIsReferenced(db, id)
	if err != nil {
		return err
	}
	if used {
		result, err := db.Exec(`UPDATE utilisateurs SET actif = false WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return NotFoundf("utilisateur introuvable")
		}
		return nil
	}

	result, err := db.Exec(`DELETE FROM utilisateurs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NotFoundf("utilisateur introuvable")
	}
	return nil
}

// SaveRefreshToken persists the refresh token issued to the user.
func SaveRefreshToken(db *sql.DB, id, refreshToken string) error {
	_, err := db.Exec(`UPDATE utilisateurs SET refresh_token = $1 WHERE id = $2`, refreshToken, id)
	return err
}

// RemoveRefreshToken revokes the persisted refresh token.
func RemoveRefreshToken(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE utilisateurs SET refresh_token = NULL WHERE id = $1`, id)
	return err
}

// VerifyRefreshToken reports whether the token matches the one on record.
func VerifyRefreshToken(db *sql.DB, id, refreshToken string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM utilisateurs WHERE id = $1 AND refresh_token = $2`,
		id, refreshToken,
	).Scan(&count)
	return count > 0, err
}

// GetUserStats returns per-role totals.
func GetUserStats(db *sql.DB) ([]models.UserRoleStats, error) {
	rows, err := db.Query(`
		SELECT role,
		       COUNT(*) AS total,
		       COUNT(CASE WHEN actif THEN 1 END) AS actifs,
		       COUNT(CASE WHEN NOT actif THEN 1 END) AS inactifs
		FROM utilisateurs
		GROUP BY role
		ORDER BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.UserRoleStats
	for rows.Next() {
		var s models.UserRoleStats
		if err := rows.Scan(&s.Role, &s.Total, &s.Actifs, &s.Inactifs); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetProfesseurs returns every active teacher.
func GetProfesseurs(db *sql.DB) ([]*models.User, error) {
	rows, err := db.Query(
		`SELECT id, nom, prenom, email, telephone, role, photo_url, actif, created_at
		 FROM utilisateurs
		 WHERE role = $1 AND actif = true
		 ORDER BY nom, prenom`,
		models.RoleEnseignant,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		err := rows.Scan(&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.Telephone,
			&u.Role, &u.PhotoURL, &u.Actif, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetAvailableTeachers returns active teachers with no active vague holding
// the (jour, horaire) slot, optionally ignoring one vague for edits.
func GetAvailableTeachers(db *sql.DB, jourID, horaireID string, excludeVagueID *string) ([]*models.User, error) {
	query := `
		SELECT u.id, u.nom, u.prenom, u.email, u.telephone, u.role, u.photo_url, u.actif, u.created_at
		FROM utilisateurs u
		WHERE u.role = $1 AND u.actif = true
		  AND u.id NOT IN (
			SELECT v.enseignant_id
			FROM vagues v
			JOIN vague_horaires vh ON v.id = vh.vague_id
			WHERE vh.jour_id = $2
			  AND vh.horaire_id = $3
			  AND v.statut IN ('planifie', 'en_cours')
			  AND v.enseignant_id IS NOT NULL`
	args := []interface{}{models.RoleEnseignant, jourID, horaireID}

	if excludeVagueID != nil {
		args = append(args, *excludeVagueID)
		query += fmt.Sprintf(" AND v.id != $%d", len(args))
	}
	query += `) ORDER BY u.nom, u.prenom`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		err := rows.Scan(&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.Telephone,
			&u.Role, &u.PhotoURL, &u.Actif, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}
