package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema and seeds the weekday catalog. Every
// statement is idempotent so the function is safe to run at each boot.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	if err := seedJours(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS utilisateurs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nom VARCHAR(100) NOT NULL,
		prenom VARCHAR(100) NOT NULL,
		email VARCHAR(255) UNIQUE,
		telephone VARCHAR(30) NOT NULL DEFAULT '',
		password VARCHAR(255),
		role VARCHAR(20) NOT NULL DEFAULT 'etudiant',
		google_id VARCHAR(255),
		photo_url TEXT,
		actif BOOLEAN NOT NULL DEFAULT true,
		refresh_token TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS niveaux (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		code VARCHAR(20) NOT NULL UNIQUE,
		nom VARCHAR(100) NOT NULL,
		frais_inscription NUMERIC(10,2) NOT NULL DEFAULT 0,
		frais_ecolage NUMERIC(10,2) NOT NULL DEFAULT 0,
		frais_livre NUMERIC(10,2) NOT NULL DEFAULT 0,
		duree_semaines INT NOT NULL DEFAULT 0,
		actif BOOLEAN NOT NULL DEFAULT true
	)`,

	`CREATE TABLE IF NOT EXISTS salles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nom VARCHAR(100) NOT NULL,
		capacite INT NOT NULL CHECK (capacite > 0),
		equipements TEXT,
		actif BOOLEAN NOT NULL DEFAULT true
	)`,

	`CREATE TABLE IF NOT EXISTS jours (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nom VARCHAR(20) NOT NULL UNIQUE,
		ordre INT NOT NULL,
		actif BOOLEAN NOT NULL DEFAULT true
	)`,

	`CREATE TABLE IF NOT EXISTS horaires (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		heure_debut VARCHAR(5) NOT NULL,
		heure_fin VARCHAR(5) NOT NULL,
		libelle VARCHAR(100),
		actif BOOLEAN NOT NULL DEFAULT true
	)`,

	`CREATE TABLE IF NOT EXISTS vagues (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		nom VARCHAR(100) NOT NULL,
		niveau_id UUID NOT NULL REFERENCES niveaux(id),
		enseignant_id UUID REFERENCES utilisateurs(id),
		salle_id UUID REFERENCES salles(id),
		date_debut DATE NOT NULL,
		date_fin DATE NOT NULL,
		capacite_max INT NOT NULL DEFAULT 20,
		statut VARCHAR(20) NOT NULL DEFAULT 'planifie',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS vague_horaires (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vague_id UUID NOT NULL REFERENCES vagues(id) ON DELETE CASCADE,
		jour_id UUID NOT NULL REFERENCES jours(id),
		horaire_id UUID NOT NULL REFERENCES horaires(id),
		UNIQUE (vague_id, jour_id, horaire_id)
	)`,

	`CREATE TABLE IF NOT EXISTS inscriptions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		etudiant_id UUID NOT NULL REFERENCES utilisateurs(id),
		vague_id UUID NOT NULL REFERENCES vagues(id),
		date_inscription DATE NOT NULL,
		remarques TEXT,
		statut VARCHAR(20) NOT NULL DEFAULT 'actif'
	)`,

	`CREATE TABLE IF NOT EXISTS ecolages (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		inscription_id UUID NOT NULL UNIQUE REFERENCES inscriptions(id) ON DELETE CASCADE,
		montant_total NUMERIC(10,2) NOT NULL,
		montant_paye NUMERIC(10,2) NOT NULL DEFAULT 0,
		montant_restant NUMERIC(10,2) NOT NULL,
		frais_inscription_paye BOOLEAN NOT NULL DEFAULT false,
		frais_livre_paye BOOLEAN NOT NULL DEFAULT false,
		statut VARCHAR(20) NOT NULL DEFAULT 'non_paye',
		CHECK (montant_paye + montant_restant = montant_total)
	)`,

	`CREATE TABLE IF NOT EXISTS paiements (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		ecolage_id UUID NOT NULL REFERENCES ecolages(id) ON DELETE CASCADE,
		montant NUMERIC(10,2) NOT NULL CHECK (montant > 0),
		date_paiement DATE NOT NULL,
		methode_paiement VARCHAR(50) NOT NULL,
		type_frais VARCHAR(20) NOT NULL,
		reference VARCHAR(100),
		remarques TEXT,
		utilisateur_id UUID REFERENCES utilisateurs(id),
		statut VARCHAR(20) NOT NULL DEFAULT 'valide',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_vagues_statut ON vagues(statut)`,
	`CREATE INDEX IF NOT EXISTS idx_vague_horaires_slot ON vague_horaires(jour_id, horaire_id)`,
	`CREATE INDEX IF NOT EXISTS idx_inscriptions_vague ON inscriptions(vague_id)`,
	`CREATE INDEX IF NOT EXISTS idx_inscriptions_etudiant ON inscriptions(etudiant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_paiements_ecolage ON paiements(ecolage_id)`,
	`CREATE INDEX IF NOT EXISTS idx_paiements_date ON paiements(date_paiement)`,
}

func seedJours(db *sql.DB) error {
	jours := []struct {
		nom   string
		ordre int
	}{
		{"Lundi", 1},
		{"Mardi", 2},
		{"Mercredi", 3},
		{"Jeudi", 4},
		{"Vendredi", 5},
		{"Samedi", 6},
		{"Dimanche", 7},
	}

	for _, j := range jours {
		_, err := db.Exec(
			`INSERT INTO jours (nom, ordre) VALUES ($1, $2) ON CONFLICT (nom) DO NOTHING`,
			j.nom, j.ordre,
		)
		if err != nil {
			log.Printf("Failed to seed jour %s: %v", j.nom, err)
			return err
		}
	}
	return nil
}
