package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Jour is a weekday from the seeded catalog, ordered Monday first.
type Jour struct {
	ID    string `json:"id"`
	Nom   string `json:"nom"`
	Ordre int    `json:"ordre"`
	Actif bool   `json:"actif"`
}

// Horaire is a reusable time window (HH:MM strings) from the catalog.
type Horaire struct {
	ID         string  `json:"id"`
	HeureDebut string  `json:"heure_debut"`
	HeureFin   string  `json:"heure_fin"`
	Libelle    *string `json:"libelle"`
	Actif      bool    `json:"actif"`
}

// HoraireUpdate lists the mutable fields of an horaire. Nil means unchanged.
type HoraireUpdate struct {
	HeureDebut *string `json:"heure_debut"`
	HeureFin   *string `json:"heure_fin"`
	Libelle    *string `json:"libelle"`
	Actif      *bool   `json:"actif"`
}

// TimeToMinutes converts an HH:MM string to minutes since midnight.
func TimeToMinutes(t string) (int, error) {
	parts := strings.SplitN(t, ":", 3)
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	return h*60 + m, nil
}

// ValidTimeRange reports whether debut and fin parse and fin is after debut.
func ValidTimeRange(debut, fin string) bool {
	d, err := TimeToMinutes(debut)
	if err != nil {
		return false
	}
	f, err := TimeToMinutes(fin)
	if err != nil {
		return false
	}
	return f > d
}
