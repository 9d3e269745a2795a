package database

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafidyRakotonirina/blessing/app/models"
)

func validVague() *models.Vague {
	return &models.Vague{
		Nom:       "Vague Janvier A1",
		NiveauID:  "niv-1",
		DateDebut: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		DateFin:   time.Date(2026, 3, 27, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateVagueRejectsEmptySlots(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = CreateVague(db, validVague(), nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateVagueRejectsBadDates(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	v := validVague()
	v.DateFin = v.DateDebut
	err = CreateVague(db, v, []models.SlotRef{{JourID: "j-1", HoraireID: "h-1"}})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateVagueRejectsUnknownStatut(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	v := validVague()
	v.Statut = "suspendu"
	err = CreateVague(db, v, []models.SlotRef{{JourID: "j-1", HoraireID: "h-1"}})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateVagueUnknownNiveau(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("niv-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err = CreateVague(db, validVague(), []models.SlotRef{{JourID: "j-1", HoraireID: "h-1"}})
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVagueWithoutSalleUsesDefaultCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	// no salle and no teacher, the slot conflict checks are skipped
	mock.ExpectQuery("INSERT INTO vagues").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("vg-1", time.Now()))
	mock.ExpectExec("INSERT INTO vague_horaires").
		WithArgs("vg-1", "j-1", "h-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	v := validVague()
	require.NoError(t, CreateVague(db, v, []models.SlotRef{{JourID: "j-1", HoraireID: "h-1"}}))
	assert.Equal(t, "vg-1", v.ID)
	assert.Equal(t, models.VagueStatutPlanifie, v.Statut)
	assert.Equal(t, models.DefaultCapacite, v.CapaciteMax)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVagueRoomConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT capacite FROM salles").
		WithArgs("sa-1").
		WillReturnRows(sqlmock.NewRows([]string{"capacite"}).AddRow(25))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE v.salle_id = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	v := validVague()
	salleID := "sa-1"
	v.SalleID = &salleID
	err = CreateVague(db, v, []models.SlotRef{{JourID: "j-1", HoraireID: "h-1"}})
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVagueWithActiveInscriptions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM inscriptions")).
		WithArgs("vg-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err = DeleteVague(db, "vg-1")
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVague(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM inscriptions")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM vague_horaires").
		WithArgs("vg-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM vagues").
		WithArgs("vg-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, DeleteVague(db, "vg-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
