package repositories

import (
	"errors"
	"testing"

	"dvsubmit-backend/applications/requests"
	"dvsubmit-backend/applications/services"
	"dvsubmit-backend/db/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (ApplicationRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewApplicationRepository(gormDB), mock
}

func expectApplicationLookup(mock sqlmock.Sqlmock, appID, userID uuid.UUID, status models.ApplicationStatus) {
	rows := sqlmock.NewRows([]string{"id", "user_id", "status"}).
		AddRow(appID, userID, string(status))
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE user_id = \$1`).WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM "children"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_id"}))
}

func TestSaveDraftFieldsRejectsNonDraft(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	expectApplicationLookup(mock, uuid.New(), userID, models.PaymentPendingApplication)

	_, err := repo.SaveDraftFields(userID, &requests.ApplicationFieldsRequest{FirstName: "Abebe"})
	require.Error(t, err)

	var svcErr *services.ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, services.CodeInvalidStatus, svcErr.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateDraftReturnsExistingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()
	appID := uuid.New()

	expectApplicationLookup(mock, appID, userID, models.DraftApplication)

	application, err := repo.FindOrCreateDraft(userID)
	require.NoError(t, err)
	require.Equal(t, appID, application.ID)
	require.Equal(t, models.DraftApplication, application.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}
