package services

import (
	"testing"

	"dvsubmit-backend/users/requests"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	require.True(t, CheckPasswordHash("s3cret-password", hash))
	require.False(t, CheckPasswordHash("wrong-password", hash))
	require.False(t, CheckPasswordHash("s3cret-password", "not-a-hash"))
}

func TestValidateRegistration(t *testing.T) {
	valid := requests.RegisterUserRequest{
		FirstName: "Abebe",
		LastName:  "Bekele",
		Email:     "abebe@example.com",
		Password:  "longenough",
	}
	require.Empty(t, ValidateRegistration(&valid))

	cases := []struct {
		name   string
		mutate func(*requests.RegisterUserRequest)
	}{
		{"missing first name", func(r *requests.RegisterUserRequest) { r.FirstName = "  " }},
		{"missing last name", func(r *requests.RegisterUserRequest) { r.LastName = "" }},
		{"bad email", func(r *requests.RegisterUserRequest) { r.Email = "nope" }},
		{"short password", func(r *requests.RegisterUserRequest) { r.Password = "short" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			require.NotEmpty(t, ValidateRegistration(&req))
		})
	}
}
