package services

import (
	"testing"
	"time"

	"dvsubmit-backend/applications/requests"
	"dvsubmit-backend/db/models"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func completeRequest() *requests.ApplicationFieldsRequest {
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	return &requests.ApplicationFieldsRequest{
		FirstName:            "Abebe",
		LastName:             "Bekele",
		Gender:               strPtr("M"),
		DateOfBirth:          &dob,
		BirthCity:            "Addis Ababa",
		BirthCountry:         "Ethiopia",
		CountryOfEligibility: "Ethiopia",
		PhotoPath:            strPtr("photos/app/applicant.jpg"),
		AddressLine:          "Bole Road 12",
		City:                 "Addis Ababa",
		Country:              "Ethiopia",
		PhoneNumber:          "+251911000000",
		Email:                "abebe@example.com",
		EducationLevel:       "HIGH_SCHOOL_DIPLOMA",
		MaritalStatus:        models.SingleMarital,
	}
}

func TestValidateCompleteApplication(t *testing.T) {
	require.Empty(t, ValidateCompleteApplication(completeRequest()))
}

func TestValidateCompleteApplicationMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*requests.ApplicationFieldsRequest)
	}{
		{"first name", func(r *requests.ApplicationFieldsRequest) { r.FirstName = "" }},
		{"gender", func(r *requests.ApplicationFieldsRequest) { r.Gender = nil }},
		{"date of birth", func(r *requests.ApplicationFieldsRequest) { r.DateOfBirth = nil }},
		{"country of eligibility", func(r *requests.ApplicationFieldsRequest) { r.CountryOfEligibility = "" }},
		{"photo", func(r *requests.ApplicationFieldsRequest) { r.PhotoPath = nil }},
		{"address", func(r *requests.ApplicationFieldsRequest) { r.AddressLine = "" }},
		{"phone", func(r *requests.ApplicationFieldsRequest) { r.PhoneNumber = "" }},
		{"email format", func(r *requests.ApplicationFieldsRequest) { r.Email = "not-an-email" }},
		{"education", func(r *requests.ApplicationFieldsRequest) { r.EducationLevel = "" }},
		{"marital status", func(r *requests.ApplicationFieldsRequest) { r.MaritalStatus = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := completeRequest()
			tc.mutate(req)
			require.NotEmpty(t, ValidateCompleteApplication(req))
		})
	}
}

func TestValidateCompleteApplicationSpouseRules(t *testing.T) {
	req := completeRequest()
	req.MaritalStatus = models.MarriedMarital
	require.NotEmpty(t, ValidateCompleteApplication(req), "married without spouse details must fail")

	dob := time.Date(1992, 7, 1, 0, 0, 0, 0, time.UTC)
	req.SpouseFirstName = strPtr("Sara")
	req.SpouseLastName = strPtr("Bekele")
	req.SpouseDateOfBirth = &dob
	req.SpousePhotoPath = strPtr("photos/app/spouse.jpg")
	require.Empty(t, ValidateCompleteApplication(req))

	// Single applicants never need spouse fields.
	single := completeRequest()
	require.Empty(t, ValidateCompleteApplication(single))
}

func TestValidateCompleteApplicationChildren(t *testing.T) {
	dob := time.Date(2015, 2, 3, 0, 0, 0, 0, time.UTC)

	req := completeRequest()
	req.Children = []requests.ChildRequest{
		{FirstName: "Lily", LastName: "Bekele", DateOfBirth: &dob, BirthCountry: "Ethiopia"},
	}
	require.Empty(t, ValidateCompleteApplication(req))

	req.Children = append(req.Children, requests.ChildRequest{FirstName: "Noah"})
	require.NotEmpty(t, ValidateCompleteApplication(req))
}
