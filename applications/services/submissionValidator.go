package services

import (
	"regexp"

	"dvsubmit-backend/applications/requests"
	"dvsubmit-backend/db/models"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateCompleteApplication checks that every required wizard section is
// present before a draft may enter the payment flow. Returns "" when valid,
// otherwise the first failing requirement.
func ValidateCompleteApplication(req *requests.ApplicationFieldsRequest) string {
	if req.FirstName == "" {
		return "First name is required"
	}
	if req.LastName == "" {
		return "Last name is required"
	}
	if req.Gender == nil || *req.Gender == "" {
		return "Gender is required"
	}
	if req.DateOfBirth == nil {
		return "Date of birth is required"
	}
	if req.BirthCity == "" {
		return "City of birth is required"
	}
	if req.BirthCountry == "" {
		return "Country of birth is required"
	}
	if req.CountryOfEligibility == "" {
		return "Country of eligibility is required"
	}
	if req.PhotoPath == nil || *req.PhotoPath == "" {
		return "Applicant photo is required"
	}

	if req.AddressLine == "" {
		return "Address is required"
	}
	if req.City == "" {
		return "City is required"
	}
	if req.Country == "" {
		return "Country is required"
	}
	if req.PhoneNumber == "" {
		return "Phone number is required"
	}
	if req.Email == "" || !emailPattern.MatchString(req.Email) {
		return "A valid email address is required"
	}

	if req.EducationLevel == "" {
		return "Education level is required"
	}

	switch req.MaritalStatus {
	case models.SingleMarital, models.DivorcedMarital, models.WidowedMarital:
	case models.MarriedMarital:
		if req.SpouseFirstName == nil || *req.SpouseFirstName == "" {
			return "Spouse first name is required for married applicants"
		}
		if req.SpouseLastName == nil || *req.SpouseLastName == "" {
			return "Spouse last name is required for married applicants"
		}
		if req.SpouseDateOfBirth == nil {
			return "Spouse date of birth is required for married applicants"
		}
		if req.SpousePhotoPath == nil || *req.SpousePhotoPath == "" {
			return "Spouse photo is required for married applicants"
		}
	default:
		return "Marital status is required"
	}

	for _, child := range req.Children {
		if child.FirstName == "" || child.LastName == "" {
			return "Each child needs a first and last name"
		}
		if child.DateOfBirth == nil {
			return "Each child needs a date of birth"
		}
		if child.BirthCountry == "" {
			return "Each child needs a country of birth"
		}
	}

	return ""
}
