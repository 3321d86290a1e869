package token

import (
	"strings"
	"testing"
	"time"

	"dvsubmit-backend/db/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "12345678901234567890123456789012"

func TestPasetoMaker(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	userID := uuid.New()
	tokenStr, err := maker.CreateToken(userID, "applicant@example.com", models.UserRole, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	payload, err := maker.VerifyToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, userID, payload.UserID)
	assert.Equal(t, "applicant@example.com", payload.Email)
	assert.Equal(t, models.UserRole, payload.Role)
	assert.WithinDuration(t, time.Now().Add(time.Minute), payload.ExpiredAt, 5*time.Second)
}

func TestPasetoMakerExpiredToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	tokenStr, err := maker.CreateToken(uuid.New(), "applicant@example.com", models.UserRole, -time.Minute)
	require.Error(t, err) // negative duration is rejected at creation
	assert.Empty(t, tokenStr)
}

func TestPasetoMakerInvalidKeySize(t *testing.T) {
	_, err := NewPasetoMaker("short-key")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid key size"))
}

func TestPasetoMakerTamperedToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	tokenStr, err := maker.CreateToken(uuid.New(), "applicant@example.com", models.AdminRole, time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(tokenStr + "x")
	require.Error(t, err)
}
