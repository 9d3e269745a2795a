package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee types a payment can settle.
const (
	TypeFraisInscription = "inscription"
	TypeFraisEcolage     = "ecolage"
	TypeFraisLivre       = "livre"
)

// Payment statuses. Cancelled payments stay on record as annule.
const (
	PaiementStatutValide = "valide"
	PaiementStatutAnnule = "annule"
)

// Paiement is an append-only record against an ecolage. Cancelling one
// voids it in place and reverses its ledger effect.
type Paiement struct {
	ID              string          `json:"id"`
	EcolageID       string          `json:"ecolage_id"`
	Montant         decimal.Decimal `json:"montant"`
	DatePaiement    time.Time       `json:"date_paiement"`
	MethodePaiement string          `json:"methode_paiement"`
	TypeFrais       string          `json:"type_frais"`
	Reference       *string         `json:"reference"`
	Remarques       *string         `json:"remarques"`
	UtilisateurID   *string         `json:"utilisateur_id"`
	Statut          string          `json:"statut"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ValidTypeFrais reports whether t is a known fee type.
func ValidTypeFrais(t string) bool {
	switch t {
	case TypeFraisInscription, TypeFraisEcolage, TypeFraisLivre:
		return true
	}
	return false
}
