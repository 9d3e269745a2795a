package database

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafidyRakotonirina/blessing/app/models"
)

func TestEnregistrerPaiement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT montant_restant FROM ecolages").
		WithArgs("ec-1").
		WillReturnRows(sqlmock.NewRows([]string{"montant_restant"}).AddRow("200.00"))
	mock.ExpectQuery("INSERT INTO paiements").
		WillReturnRows(sqlmock.NewRows([]string{"id", "statut", "created_at"}).
			AddRow("pay-1", models.PaiementStatutValide, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("SET montant_paye = montant_paye + $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET statut = CASE").
		WithArgs("ec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := &models.Paiement{
		EcolageID:       "ec-1",
		Montant:         decimal.RequireFromString("50.00"),
		MethodePaiement: "especes",
		TypeFrais:       models.TypeFraisEcolage,
	}
	require.NoError(t, EnregistrerPaiement(db, p))
	assert.Equal(t, "pay-1", p.ID)
	assert.Equal(t, models.PaiementStatutValide, p.Statut)
	assert.NotNil(t, p.Reference)
	assert.False(t, p.DatePaiement.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnregistrerPaiementFlipsRegistrationFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT montant_restant FROM ecolages").
		WillReturnRows(sqlmock.NewRows([]string{"montant_restant"}).AddRow("370.00"))
	mock.ExpectQuery("INSERT INTO paiements").
		WillReturnRows(sqlmock.NewRows([]string{"id", "statut", "created_at"}).
			AddRow("pay-2", models.PaiementStatutValide, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("SET montant_paye = montant_paye + $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET frais_inscription_paye = true").
		WithArgs("ec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET statut = CASE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := &models.Paiement{
		EcolageID:       "ec-1",
		Montant:         decimal.RequireFromString("50.00"),
		MethodePaiement: "especes",
		TypeFrais:       models.TypeFraisInscription,
	}
	require.NoError(t, EnregistrerPaiement(db, p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnregistrerPaiementOverRemaining(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT montant_restant FROM ecolages").
		WillReturnRows(sqlmock.NewRows([]string{"montant_restant"}).AddRow("30.00"))
	mock.ExpectQuery("INSERT INTO paiements").
		WillReturnRows(sqlmock.NewRows([]string{"id", "statut", "created_at"}).
			AddRow("pay-3", models.PaiementStatutValide, time.Now()))
	// conditional update touches no row when the amount exceeds the balance
	mock.ExpectExec(regexp.QuoteMeta("SET montant_paye = montant_paye + $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	p := &models.Paiement{
		EcolageID:       "ec-1",
		Montant:         decimal.RequireFromString("50.00"),
		MethodePaiement: "especes",
		TypeFrais:       models.TypeFraisEcolage,
	}
	err = EnregistrerPaiement(db, p)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnregistrerPaiementRejectsBadInput(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var validationErr *ValidationError

	err = EnregistrerPaiement(db, &models.Paiement{
		EcolageID: "ec-1",
		Montant:   decimal.Zero,
		TypeFrais: models.TypeFraisEcolage,
	})
	assert.ErrorAs(t, err, &validationErr)

	err = EnregistrerPaiement(db, &models.Paiement{
		EcolageID: "ec-1",
		Montant:   decimal.RequireFromString("10.00"),
		TypeFrais: "penalite",
	})
	assert.ErrorAs(t, err, &validationErr)
}

func TestAnnulerPaiement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ecolage_id, montant, type_frais, statut FROM paiements").
		WithArgs("pay-1").
		WillReturnRows(sqlmock.NewRows([]string{"ecolage_id", "montant", "type_frais", "statut"}).
			AddRow("ec-1", "50.00", models.TypeFraisEcolage, models.PaiementStatutValide))
	mock.ExpectExec("UPDATE paiements SET statut = 'annule'").
		WithArgs("pay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET montant_paye = montant_paye - $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET statut = CASE").
		WithArgs("ec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, AnnulerPaiement(db, "pay-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnulerPaiementUnflipsFlagWhenLastOfItsType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ecolage_id, montant, type_frais, statut FROM paiements").
		WillReturnRows(sqlmock.NewRows([]string{"ecolage_id", "montant", "type_frais", "statut"}).
			AddRow("ec-1", "20.00", models.TypeFraisLivre, models.PaiementStatutValide))
	mock.ExpectExec("UPDATE paiements SET statut = 'annule'").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET montant_paye = montant_paye - $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// no other valid book payment remains, so the flag comes back down
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM paiements")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("SET frais_livre_paye = false").
		WithArgs("ec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET statut = CASE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, AnnulerPaiement(db, "pay-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnulerPaiementKeepsFlagWhenAnotherPaymentRemains(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ecolage_id, montant, type_frais, statut FROM paiements").
		WillReturnRows(sqlmock.NewRows([]string{"ecolage_id", "montant", "type_frais", "statut"}).
			AddRow("ec-1", "50.00", models.TypeFraisInscription, models.PaiementStatutValide))
	mock.ExpectExec("UPDATE paiements SET statut = 'annule'").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET montant_paye = montant_paye - $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM paiements")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("SET statut = CASE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, AnnulerPaiement(db, "pay-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnulerPaiementAlreadyCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT ecolage_id, montant, type_frais, statut FROM paiements").
		WillReturnRows(sqlmock.NewRows([]string{"ecolage_id", "montant", "type_frais", "statut"}).
			AddRow("ec-1", "50.00", models.TypeFraisEcolage, models.PaiementStatutAnnule))
	mock.ExpectRollback()

	err = AnnulerPaiement(db, "pay-1")
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
