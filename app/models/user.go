package models

import "time"

// Roles understood by the authorization layer.
const (
	RoleAdmin      = "admin"
	RoleSecretaire = "secretaire"
	RoleEnseignant = "enseignant"
	RoleEtudiant   = "etudiant"
)

// User is a row of utilisateurs. Students are users with role etudiant.
type User struct {
	ID           string     `json:"id"`
	Nom          string     `json:"nom"`
	Prenom       string     `json:"prenom"`
	Email        *string    `json:"email"`
	Telephone    string     `json:"telephone"`
	Password     string     `json:"-"`
	Role         string     `json:"role"`
	GoogleID     *string    `json:"google_id,omitempty"`
	PhotoURL     *string    `json:"photo_url,omitempty"`
	Actif        bool       `json:"actif"`
	RefreshToken *string    `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`

	// Aggregates populated by list queries.
	NbInscriptions        int `json:"nb_inscriptions,omitempty"`
	NbInscriptionsActives int `json:"nb_inscriptions_actives,omitempty"`
}

// UserUpdate lists the mutable fields of a user. Nil means leave unchanged.
type UserUpdate struct {
	Nom       *string `json:"nom"`
	Prenom    *string `json:"prenom"`
	Email     *string `json:"email"`
	Telephone *string `json:"telephone"`
	Role      *string `json:"role"`
	PhotoURL  *string `json:"photo_url"`
	Actif     *bool   `json:"actif"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSecretaire, RoleEnseignant, RoleEtudiant:
		return true
	}
	return false
}

// UserRoleStats is a per-role aggregate over utilisateurs.
type UserRoleStats struct {
	Role     string `json:"role"`
	Total    int    `json:"total"`
	Actifs   int    `json:"actifs"`
	Inactifs int    `json:"inactifs"`
}
