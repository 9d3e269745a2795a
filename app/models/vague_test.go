package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionVague(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{VagueStatutPlanifie, VagueStatutEnCours, true},
		{VagueStatutPlanifie, VagueStatutAnnule, true},
		{VagueStatutPlanifie, VagueStatutTermine, false},
		{VagueStatutEnCours, VagueStatutTermine, true},
		{VagueStatutEnCours, VagueStatutAnnule, true},
		{VagueStatutEnCours, VagueStatutPlanifie, false},
		{VagueStatutTermine, VagueStatutEnCours, false},
		{VagueStatutTermine, VagueStatutAnnule, false},
		{VagueStatutAnnule, VagueStatutPlanifie, false},
		// restating the current status is always allowed
		{VagueStatutTermine, VagueStatutTermine, true},
		{VagueStatutAnnule, VagueStatutAnnule, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransitionVague(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestValidVagueStatut(t *testing.T) {
	for _, s := range []string{VagueStatutPlanifie, VagueStatutEnCours, VagueStatutTermine, VagueStatutAnnule} {
		assert.True(t, ValidVagueStatut(s))
	}
	assert.False(t, ValidVagueStatut(""))
	assert.False(t, ValidVagueStatut("suspendu"))
}
