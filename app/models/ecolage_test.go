package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeriveEcolageStatut(t *testing.T) {
	tests := []struct {
		name  string
		paye  string
		total string
		want  string
	}{
		{"nothing paid", "0", "370", EcolageStatutNonPaye},
		{"partial", "100", "370", EcolageStatutPartiel},
		{"exact", "370", "370", EcolageStatutPaye},
		{"overpaid", "400", "370", EcolageStatutPaye},
		{"cents partial", "369.99", "370.00", EcolageStatutPartiel},
		{"zero total", "0", "0", EcolageStatutPaye},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveEcolageStatut(d(tt.paye), d(tt.total)))
		})
	}
}

func TestOpenLedgerAmounts(t *testing.T) {
	niveau := &Niveau{
		FraisInscription: d("50.00"),
		FraisEcolage:     d("300.00"),
		FraisLivre:       d("20.00"),
	}

	t.Run("nothing paid at the desk", func(t *testing.T) {
		total, paye, restant, statut := OpenLedgerAmounts(niveau, false, decimal.Zero, false)
		assert.True(t, total.Equal(d("370.00")))
		assert.True(t, paye.Equal(decimal.Zero))
		assert.True(t, restant.Equal(d("370.00")))
		assert.Equal(t, EcolageStatutNonPaye, statut)
	})

	t.Run("registration and books paid plus tuition advance", func(t *testing.T) {
		total, paye, restant, statut := OpenLedgerAmounts(niveau, true, d("100.00"), true)
		assert.True(t, total.Equal(d("370.00")))
		assert.True(t, paye.Equal(d("170.00")))
		assert.True(t, restant.Equal(d("200.00")))
		assert.Equal(t, EcolageStatutPartiel, statut)
	})

	t.Run("everything settled upfront", func(t *testing.T) {
		total, paye, restant, statut := OpenLedgerAmounts(niveau, true, d("300.00"), true)
		assert.True(t, paye.Equal(total))
		assert.True(t, restant.Equal(decimal.Zero))
		assert.Equal(t, EcolageStatutPaye, statut)
	})

	t.Run("amounts always balance", func(t *testing.T) {
		total, paye, restant, _ := OpenLedgerAmounts(niveau, true, d("33.33"), false)
		assert.True(t, paye.Add(restant).Equal(total))
	})
}
