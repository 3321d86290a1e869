package repositories

import (
	"errors"
	"testing"

	"dvsubmit-backend/applications/services"
	"dvsubmit-backend/db/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (SubmissionRepository, *gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewSubmissionRepository(gormDB), gormDB, mock
}

func applicationRows(appID, userID uuid.UUID, status models.ApplicationStatus, confirmation *string) *sqlmock.Rows {
	var number interface{}
	if confirmation != nil {
		number = *confirmation
	}
	return sqlmock.NewRows([]string{"id", "user_id", "status", "confirmation_number"}).
		AddRow(appID, userID, string(status), number)
}

func requireServiceCode(t *testing.T, err error, code string) {
	t.Helper()

	var svcErr *services.ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, code, svcErr.Code)
}

func TestRelaySubmissionRejectsMalformedNumber(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)

	_, _, err := repo.RelaySubmission(gormDB, uuid.New().String(), "NOT-A-NUMBER", uuid.New())
	requireServiceCode(t, err, services.CodeValidationError)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelaySubmissionRejectsDuplicateConfirmation(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	appID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, uuid.New(), models.PaymentVerifiedApplication, nil))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, _, err := repo.RelaySubmission(gormDB, appID.String(), "2026AB12CD34EF", uuid.New())
	requireServiceCode(t, err, services.CodeDuplicateConfirmation)

	// No UPDATE may have been issued.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelaySubmissionRejectsWrongStatus(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	appID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, uuid.New(), models.PaymentPendingApplication, nil))

	_, _, err := repo.RelaySubmission(gormDB, appID.String(), "2026AB12CD34EF", uuid.New())
	requireServiceCode(t, err, services.CodeInvalidStatus)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelaySubmissionReportsPriorStatus(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	appID := uuid.New()
	userID := uuid.New()
	confirmation := "2026AB12CD34EF"

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, userID, models.PaymentVerifiedApplication, nil))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, userID, models.SubmittedApplication, &confirmation))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID))

	application, previousStatus, err := repo.RelaySubmission(gormDB, appID.String(), confirmation, uuid.New())
	require.NoError(t, err)
	require.Equal(t, models.PaymentVerifiedApplication, previousStatus)
	require.Equal(t, models.SubmittedApplication, application.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSubmissionStatusRejectsOtherStatuses(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)

	_, _, err := repo.SetSubmissionStatus(gormDB, uuid.New().String(), models.DraftApplication, nil, uuid.New())
	requireServiceCode(t, err, services.CodeInvalidRequest)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSubmissionStatusRequiresConfirmationNumber(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	appID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, uuid.New(), models.PaymentVerifiedApplication, nil))

	_, _, err := repo.SetSubmissionStatus(gormDB, appID.String(), models.SubmittedApplication, nil, uuid.New())
	requireServiceCode(t, err, services.CodeValidationError)

	require.NoError(t, mock.ExpectationsWereMet())
}
