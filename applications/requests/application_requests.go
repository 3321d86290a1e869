package requests

import (
	"time"

	"dvsubmit-backend/db/models"
)

// ChildRequest carries one dependent's details from the form wizard.
type ChildRequest struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Gender       *string    `json:"gender"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	BirthCity    string     `json:"birth_city"`
	BirthCountry string     `json:"birth_country"`
	PhotoPath    *string    `json:"photo_path"`
}

// ApplicationFieldsRequest carries the full applicant payload. The same
// shape is used for saving draft sections (partial) and for submission
// (validated as complete).
type ApplicationFieldsRequest struct {
	// Personal identity
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Gender               *string    `json:"gender"`
	DateOfBirth          *time.Time `json:"date_of_birth"`
	BirthCity            string     `json:"birth_city"`
	BirthCountry         string     `json:"birth_country"`
	CountryOfEligibility string     `json:"country_of_eligibility"`
	PassportNumber       *string    `json:"passport_number"`
	PhotoPath            *string    `json:"photo_path"`

	// Address and contact
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`

	// Education and family
	EducationLevel     string               `json:"education_level"`
	MaritalStatus      models.MaritalStatus `json:"marital_status"`
	SpouseFirstName    *string              `json:"spouse_first_name"`
	SpouseLastName     *string              `json:"spouse_last_name"`
	SpouseDateOfBirth  *time.Time           `json:"spouse_date_of_birth"`
	SpouseBirthCity    *string              `json:"spouse_birth_city"`
	SpouseBirthCountry *string              `json:"spouse_birth_country"`
	SpousePhotoPath    *string              `json:"spouse_photo_path"`

	Children []ChildRequest `json:"children"`
}

// RejectApplicationRequest is the admin rejection payload.
type RejectApplicationRequest struct {
	Note string `json:"note"`
}
