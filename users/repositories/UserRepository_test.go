package repositories

import (
	"testing"

	"dvsubmit-backend/db/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func userFixture() *models.User {
	return &models.User{
		FirstName: "Abebe",
		LastName:  "Bekele",
		Email:     "abebe@example.com",
		Password:  "hashed",
		Role:      models.UserRole,
	}
}

func newMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewUserRepository(gormDB), mock
}

func TestGetUserByEmailNormalizesInput(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "role", "blocked"}).
		AddRow(id, "abebe@example.com", "Abebe", "Bekele", "USER", false)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).WillReturnRows(rows)

	user, err := repo.GetUserByEmail("  ABEBE@Example.com ")
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	require.Equal(t, "abebe@example.com", user.Email)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUserByID(uuid.NewString())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	existing := sqlmock.NewRows([]string{"id", "email"}).
		AddRow(uuid.New(), "abebe@example.com")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).WillReturnRows(existing)

	_, err := repo.CreateUser(userFixture())
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	require.NoError(t, mock.ExpectationsWereMet())
}
