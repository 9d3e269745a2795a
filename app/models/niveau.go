package models

import "github.com/shopspring/decimal"

// Niveau is a course template carrying the fee schedule applied when a
// student enrolls into one of its vagues.
type Niveau struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Nom              string          `json:"nom"`
	FraisInscription decimal.Decimal `json:"frais_inscription"`
	FraisEcolage     decimal.Decimal `json:"frais_ecolage"`
	FraisLivre       decimal.Decimal `json:"frais_livre"`
	DureeSemaines    int             `json:"duree_semaines"`
	Actif            bool            `json:"actif"`
}

// Total returns the full amount due for one enrollment at this level.
func (n *Niveau) Total() decimal.Decimal {
	return n.FraisInscription.Add(n.FraisEcolage).Add(n.FraisLivre)
}

// NiveauUpdate lists the mutable fields of a niveau. Nil means unchanged.
type NiveauUpdate struct {
	Code             *string          `json:"code"`
	Nom              *string          `json:"nom"`
	FraisInscription *decimal.Decimal `json:"frais_inscription"`
	FraisEcolage     *decimal.Decimal `json:"frais_ecolage"`
	FraisLivre       *decimal.Decimal `json:"frais_livre"`
	DureeSemaines    *int             `json:"duree_semaines"`
	Actif            *bool            `json:"actif"`
}
