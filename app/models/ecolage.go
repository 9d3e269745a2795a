package models

import "github.com/shopspring/decimal"

// Ecolage statuses, derived from montant_paye vs montant_total.
const (
	EcolageStatutNonPaye = "non_paye"
	EcolageStatutPartiel = "partiel"
	EcolageStatutPaye    = "paye"
)

// Ecolage is the tuition ledger for one inscription. Invariant:
// montant_paye + montant_restant == montant_total, and statut is the value
// of DeriveEcolageStatut over the current amounts.
type Ecolage struct {
	ID                   string          `json:"id"`
	InscriptionID        string          `json:"inscription_id"`
	MontantTotal         decimal.Decimal `json:"montant_total"`
	MontantPaye          decimal.Decimal `json:"montant_paye"`
	MontantRestant       decimal.Decimal `json:"montant_restant"`
	FraisInscriptionPaye bool            `json:"frais_inscription_paye"`
	FraisLivrePaye       bool            `json:"frais_livre_paye"`
	Statut               string          `json:"statut"`

	// Denormalized details populated by read queries.
	EtudiantNom    *string    `json:"etudiant_nom,omitempty"`
	EtudiantPrenom *string    `json:"etudiant_prenom,omitempty"`
	VagueNom       *string    `json:"vague_nom,omitempty"`
	NiveauCode     *string    `json:"niveau_code,omitempty"`
	Paiements      []Paiement `json:"paiements,omitempty"`
}

// DeriveEcolageStatut is the pure status function over the ledger amounts.
func DeriveEcolageStatut(paye, total decimal.Decimal) string {
	if paye.GreaterThanOrEqual(total) {
		return EcolageStatutPaye
	}
	if paye.GreaterThan(decimal.Zero) {
		return EcolageStatutPartiel
	}
	return EcolageStatutNonPaye
}

// OpenLedgerAmounts computes the opening amounts of an ecolage from the
// niveau fees and the initial payment taken at enrollment time.
func OpenLedgerAmounts(n *Niveau, fraisInscriptionPaye bool, montantEcolageInitial decimal.Decimal, fraisLivrePaye bool) (total, paye, restant decimal.Decimal, statut string) {
	total = n.Total()
	paye = montantEcolageInitial
	if fraisInscriptionPaye {
		paye = paye.Add(n.FraisInscription)
	}
	if fraisLivrePaye {
		paye = paye.Add(n.FraisLivre)
	}
	restant = total.Sub(paye)
	statut = DeriveEcolageStatut(paye, total)
	return total, paye, restant, statut
}

// FinanceStats aggregates ledgers and payments over a date range.
type FinanceStats struct {
	TotalEcolages   int             `json:"total_ecolages"`
	Payes           int             `json:"payes"`
	Partiels        int             `json:"partiels"`
	NonPayes        int             `json:"non_payes"`
	MontantAttendu  decimal.Decimal `json:"montant_attendu"`
	MontantCollecte decimal.Decimal `json:"montant_collecte"`
	MontantRestant  decimal.Decimal `json:"montant_restant"`
	NbPaiements     int             `json:"nb_paiements"`
	TotalPaiements  decimal.Decimal `json:"total_paiements"`
}

// RapportLigne is one day of the period report.
type RapportLigne struct {
	Date           string          `json:"date"`
	NbPaiements    int             `json:"nb_paiements"`
	TotalPaiements decimal.Decimal `json:"total_paiements"`
}
