package models

// Salle is a physical room with a seating capacity. Vagues holding the
// salle at a (jour, horaire) slot block it for other vagues.
type Salle struct {
	ID          string  `json:"id"`
	Nom         string  `json:"nom"`
	Capacite    int     `json:"capacite"`
	Equipements *string `json:"equipements"`
	Actif       bool    `json:"actif"`

	// Populated by list queries.
	NbVaguesActives int `json:"nb_vagues_actives,omitempty"`
}

// SalleUpdate lists the mutable fields of a salle. Nil means unchanged.
type SalleUpdate struct {
	Nom         *string `json:"nom"`
	Capacite    *int    `json:"capacite"`
	Equipements *string `json:"equipements"`
	Actif       *bool   `json:"actif"`
}

// SalleStats aggregates room usage.
type SalleStats struct {
	TotalSalles        int     `json:"total_salles"`
	CapaciteTotale     int     `json:"capacite_totale"`
	CapaciteMoyenne    float64 `json:"capacite_moyenne"`
	TotalVaguesActives int     `json:"total_vagues_actives"`
}
