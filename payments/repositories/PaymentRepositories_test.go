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

func newMockRepo(t *testing.T) (PaymentRepository, *gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewPaymentRepository(gormDB), gormDB, mock
}

func applicationRows(appID, userID uuid.UUID, status models.ApplicationStatus, reference *string) *sqlmock.Rows {
	var ref interface{}
	if reference != nil {
		ref = *reference
	}
	return sqlmock.NewRows([]string{"id", "user_id", "status", "payment_reference"}).
		AddRow(appID, userID, string(status), ref)
}

func requireServiceCode(t *testing.T, err error, code string) {
	t.Helper()

	var svcErr *services.ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, code, svcErr.Code)
}

func TestAttachPaymentReferenceRejectsDuplicate(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE user_id = \$1`).
		WillReturnRows(applicationRows(uuid.New(), userID, models.PaymentPendingApplication, nil))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, _, err := repo.AttachPaymentReference(gormDB, userID, "TRX-0042")
	requireServiceCode(t, err, services.CodeDuplicatePaymentReference)

	// No UPDATE may have been issued.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachPaymentReferenceRejectsWrongStatus(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE user_id = \$1`).
		WillReturnRows(applicationRows(uuid.New(), userID, models.DraftApplication, nil))

	_, _, err := repo.AttachPaymentReference(gormDB, userID, "TRX-0042")
	requireServiceCode(t, err, services.CodeInvalidStatus)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachPaymentReferenceRejectsSecondReference(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	userID := uuid.New()
	existing := "TRX-0001"

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE user_id = \$1`).
		WillReturnRows(applicationRows(uuid.New(), userID, models.PaymentPendingApplication, &existing))

	_, _, err := repo.AttachPaymentReference(gormDB, userID, "TRX-0042")
	requireServiceCode(t, err, services.CodeInvalidStatus)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentVerificationRejectsUnknownAction(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)

	_, _, err := repo.ProcessPaymentVerification(gormDB, uuid.New().String(), "defer", uuid.New())
	requireServiceCode(t, err, services.CodeInvalidRequest)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentVerificationRejectsWrongStatus(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	appID := uuid.New()
	reference := "TRX-0042"

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, uuid.New(), models.PaymentVerifiedApplication, &reference))

	_, _, err := repo.ProcessPaymentVerification(gormDB, appID.String(), VerifyActionApprove, uuid.New())
	requireServiceCode(t, err, services.CodeInvalidStatus)

	// The row must be left untouched.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentVerificationApproveNeedsReference(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	appID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, uuid.New(), models.PaymentPendingApplication, nil))

	_, _, err := repo.ProcessPaymentVerification(gormDB, appID.String(), VerifyActionApprove, uuid.New())
	requireServiceCode(t, err, services.CodeInvalidStatus)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentVerificationApproveReportsPriorStatus(t *testing.T) {
	repo, gormDB, mock := newMockRepo(t)
	appID := uuid.New()
	userID := uuid.New()
	reference := "TRX-0042"

	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, userID, models.PaymentPendingApplication, &reference))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE id = \$1`).
		WillReturnRows(applicationRows(appID, userID, models.PaymentVerifiedApplication, &reference))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID))

	application, previousStatus, err := repo.ProcessPaymentVerification(gormDB, appID.String(), VerifyActionApprove, uuid.New())
	require.NoError(t, err)
	require.Equal(t, models.PaymentPendingApplication, previousStatus)
	require.Equal(t, models.PaymentVerifiedApplication, application.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}
