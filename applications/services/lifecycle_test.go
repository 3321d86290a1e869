package services

import (
	"testing"

	"dvsubmit-backend/db/models"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	legal := []struct {
		from, to models.ApplicationStatus
	}{
		{models.DraftApplication, models.PaymentPendingApplication},
		{models.DraftApplication, models.RejectedApplication},
		{models.PaymentPendingApplication, models.PaymentPendingApplication},
		{models.PaymentPendingApplication, models.PaymentVerifiedApplication},
		{models.PaymentPendingApplication, models.PaymentRejectedApplication},
		{models.PaymentPendingApplication, models.RejectedApplication},
		{models.PaymentRejectedApplication, models.PaymentPendingApplication},
		{models.PaymentRejectedApplication, models.RejectedApplication},
		{models.RejectedApplication, models.PaymentPendingApplication},
		{models.PaymentVerifiedApplication, models.SubmittedApplication},
		{models.PaymentVerifiedApplication, models.RejectedApplication},
		{models.SubmittedApplication, models.ConfirmedApplication},
	}
	for _, tc := range legal {
		require.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	illegal := []struct {
		from, to models.ApplicationStatus
	}{
		{models.DraftApplication, models.PaymentVerifiedApplication},
		{models.DraftApplication, models.SubmittedApplication},
		{models.DraftApplication, models.ConfirmedApplication},
		{models.PaymentPendingApplication, models.SubmittedApplication},
		{models.PaymentRejectedApplication, models.PaymentVerifiedApplication},
		{models.PaymentVerifiedApplication, models.ConfirmedApplication},
		{models.SubmittedApplication, models.RejectedApplication},
		{models.SubmittedApplication, models.PaymentPendingApplication},
		{models.ConfirmedApplication, models.SubmittedApplication},
		{models.ConfirmedApplication, models.DraftApplication},
		{models.ExpiredApplication, models.PaymentPendingApplication},
		{models.DraftApplication, models.ExpiredApplication},
	}
	for _, tc := range illegal {
		require.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestEnsureTransition(t *testing.T) {
	require.Nil(t, EnsureTransition(models.DraftApplication, models.PaymentPendingApplication))

	err := EnsureTransition(models.SubmittedApplication, models.PaymentPendingApplication)
	require.NotNil(t, err)
	require.Equal(t, CodeInvalidStatus, err.Code)
}

func TestEnsureMutable(t *testing.T) {
	mutable := []models.ApplicationStatus{
		models.DraftApplication,
		models.PaymentPendingApplication,
		models.PaymentVerifiedApplication,
		models.PaymentRejectedApplication,
		models.RejectedApplication,
	}
	for _, status := range mutable {
		require.Nil(t, EnsureMutable(&models.Application{Status: status}), "%s should be mutable", status)
	}

	for _, status := range []models.ApplicationStatus{models.SubmittedApplication, models.ConfirmedApplication} {
		err := EnsureMutable(&models.Application{Status: status})
		require.NotNil(t, err, "%s should be frozen", status)
		require.Equal(t, CodeInvalidStatus, err.Code)
	}
}

func TestNormalizeConfirmationNumber(t *testing.T) {
	got, err := NormalizeConfirmationNumber("2025AB12345678")
	require.Nil(t, err)
	require.Equal(t, "2025AB12345678", got)

	got, err = NormalizeConfirmationNumber("  2026xy98765432  ")
	require.Nil(t, err)
	require.Equal(t, "2026XY98765432", got)

	invalid := []string{
		"",
		"2025AB1234567",    // too short
		"2025AB123456789",  // too long
		"1999AB12345678",   // wrong century prefix
		"2025AB12345 78",   // inner whitespace
		"2025AB-2345678",   // punctuation
	}
	for _, raw := range invalid {
		_, err := NormalizeConfirmationNumber(raw)
		require.NotNil(t, err, "%q should be rejected", raw)
		require.Equal(t, CodeValidationError, err.Code)
	}
}

func TestValidateRejectionNote(t *testing.T) {
	require.Nil(t, ValidateRejectionNote("photo does not meet requirements"))

	for _, note := range []string{"", "   ", "\t\n"} {
		err := ValidateRejectionNote(note)
		require.NotNil(t, err)
		require.Equal(t, CodeValidationError, err.Code)
	}
}

func TestValidatePaymentReference(t *testing.T) {
	require.Nil(t, ValidatePaymentReference("FT25061234567890"))

	err := ValidatePaymentReference("   ")
	require.NotNil(t, err)
	require.Equal(t, CodeValidationError, err.Code)
}
