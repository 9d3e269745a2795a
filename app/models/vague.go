package models

import "time"

// Vague statuses. A vague moves forward only: planifie -> en_cours ->
// termine, with annule reachable from planifie or en_cours.
const (
	VagueStatutPlanifie = "planifie"
	VagueStatutEnCours  = "en_cours"
	VagueStatutTermine  = "termine"
	VagueStatutAnnule   = "annule"
)

// DefaultCapacite applies when a vague has no salle to inherit from.
const DefaultCapacite = 20

// Vague is a scheduled instance of a niveau with weekly slots.
type Vague struct {
	ID           string    `json:"id"`
	Nom          string    `json:"nom"`
	NiveauID     string    `json:"niveau_id"`
	EnseignantID *string   `json:"enseignant_id"`
	SalleID      *string   `json:"salle_id"`
	DateDebut    time.Time `json:"date_debut"`
	DateFin      time.Time `json:"date_fin"`
	CapaciteMax  int       `json:"capacite_max"`
	Statut       string    `json:"statut"`
	CreatedAt    time.Time `json:"created_at"`

	// Denormalized labels and aggregates populated by read queries.
	NiveauCode       *string        `json:"niveau_code,omitempty"`
	NiveauNom        *string        `json:"niveau_nom,omitempty"`
	EnseignantNom    *string        `json:"enseignant_nom,omitempty"`
	EnseignantPrenom *string        `json:"enseignant_prenom,omitempty"`
	SalleNom         *string        `json:"salle_nom,omitempty"`
	NbInscrits       int            `json:"nb_inscrits"`
	Horaires         []VagueHoraire `json:"horaires,omitempty"`
}

// VagueHoraire is one weekly slot owned by a vague, keyed by
// (vague, jour, horaire).
type VagueHoraire struct {
	ID        string `json:"id"`
	VagueID   string `json:"vague_id"`
	JourID    string `json:"jour_id"`
	HoraireID string `json:"horaire_id"`

	JourNom    *string `json:"jour_nom,omitempty"`
	JourOrdre  *int    `json:"jour_ordre,omitempty"`
	HeureDebut *string `json:"heure_debut,omitempty"`
	HeureFin   *string `json:"heure_fin,omitempty"`
	Libelle    *string `json:"libelle,omitempty"`
}

// SlotRef identifies a (jour, horaire) pair when creating or replacing the
// slot set of a vague.
type SlotRef struct {
	JourID    string `json:"jour_id" validate:"required"`
	HoraireID string `json:"horaire_id" validate:"required"`
}

// VagueUpdate lists the mutable fields of a vague. Nil means unchanged.
// Horaires non-nil replaces the whole slot set.
type VagueUpdate struct {
	Nom          *string    `json:"nom"`
	NiveauID     *string    `json:"niveau_id"`
	EnseignantID *string    `json:"enseignant_id"`
	SalleID      *string    `json:"salle_id"`
	DateDebut    *time.Time `json:"date_debut"`
	DateFin      *time.Time `json:"date_fin"`
	Statut       *string    `json:"statut"`
	Horaires     []SlotRef  `json:"horaires"`
}

// ValidVagueStatut reports whether s is a known vague status.
func ValidVagueStatut(s string) bool {
	switch s {
	case VagueStatutPlanifie, VagueStatutEnCours, VagueStatutTermine, VagueStatutAnnule:
		return true
	}
	return false
}

// CanTransitionVague reports whether a vague may move from one status to
// another. Identity transitions are allowed so partial updates that restate
// the current status pass.
func CanTransitionVague(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case VagueStatutPlanifie:
		return to == VagueStatutEnCours || to == VagueStatutAnnule
	case VagueStatutEnCours:
		return to == VagueStatutTermine || to == VagueStatutAnnule
	}
	return false
}
