package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompleteInscriptionRejectsNegativeAmount(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, _, err = CreateCompleteInscription(db, &CompleteInscription{
		VagueID:               "vg-1",
		MontantEcolageInitial: decimal.RequireFromString("-10"),
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateCompleteInscriptionFullVague(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM vagues v").
		WithArgs("vg-1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"frais_inscription", "frais_ecolage", "frais_livre", "capacite_max", "count"}).
			AddRow("50.00", "300.00", "20.00", 10, 10))
	mock.ExpectRollback()

	_, _, err = CreateCompleteInscription(db, &CompleteInscription{VagueID: "vg-1"})
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCompleteInscriptionOverpayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM vagues v").
		WillReturnRows(sqlmock.NewRows(
			[]string{"frais_inscription", "frais_ecolage", "frais_livre", "capacite_max", "count"}).
			AddRow("50.00", "300.00", "20.00", 10, 2))
	mock.ExpectRollback()

	_, _, err = CreateCompleteInscription(db, &CompleteInscription{
		VagueID:               "vg-1",
		MontantEcolageInitial: decimal.RequireFromString("500.00"),
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCompleteInscriptionNewStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM vagues v").
		WillReturnRows(sqlmock.NewRows(
			[]string{"frais_inscription", "frais_ecolage", "frais_livre", "capacite_max", "count"}).
			AddRow("50.00", "300.00", "20.00", 10, 2))
	mock.ExpectQuery("INSERT INTO utilisateurs").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("etu-1"))
	mock.ExpectQuery("INSERT INTO inscriptions").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ins-1"))
	mock.ExpectExec("INSERT INTO ecolages").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inscriptionID, etudiantID, err := CreateCompleteInscription(db, &CompleteInscription{
		EtudiantNom:           "Rakoto",
		EtudiantPrenom:        "Jean",
		EtudiantTelephone:     "0340000000",
		VagueID:               "vg-1",
		DateInscription:       time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		FraisInscriptionPaye:  true,
		MontantEcolageInitial: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ins-1", inscriptionID)
	assert.Equal(t, "etu-1", etudiantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCompleteInscriptionRequiresIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM vagues v").
		WillReturnRows(sqlmock.NewRows(
			[]string{"frais_inscription", "frais_ecolage", "frais_livre", "capacite_max", "count"}).
			AddRow("50.00", "300.00", "20.00", 10, 0))
	mock.ExpectRollback()

	_, _, err = CreateCompleteInscription(db, &CompleteInscription{VagueID: "vg-1"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
