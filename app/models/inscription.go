package models

import "time"

// Inscription statuses.
const (
	InscriptionStatutActif  = "actif"
	InscriptionStatutAnnule = "annule"
)

// Inscription links a student to a vague. Creating one opens the matching
// ecolage in the same transaction.
type Inscription struct {
	ID              string    `json:"id"`
	EtudiantID      string    `json:"etudiant_id"`
	VagueID         string    `json:"vague_id"`
	DateInscription time.Time `json:"date_inscription"`
	Remarques       *string   `json:"remarques"`
	Statut          string    `json:"statut"`

	// Denormalized details populated by read queries.
	EtudiantNom       *string  `json:"etudiant_nom,omitempty"`
	EtudiantPrenom    *string  `json:"etudiant_prenom,omitempty"`
	EtudiantEmail     *string  `json:"etudiant_email,omitempty"`
	EtudiantTelephone *string  `json:"etudiant_telephone,omitempty"`
	VagueNom          *string  `json:"vague_nom,omitempty"`
	NiveauCode        *string  `json:"niveau_code,omitempty"`
	NiveauNom         *string  `json:"niveau_nom,omitempty"`
	Ecolage           *Ecolage `json:"ecolage,omitempty"`
}

// InscriptionStats aggregates inscriptions over a date range.
type InscriptionStats struct {
	Total   int `json:"total"`
	Actifs  int `json:"actifs"`
	Annules int `json:"annules"`
}
