package services

import (
	"regexp"
	"strings"

	"dvsubmit-backend/users/requests"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateRegistration returns a human-readable message for the first
// failing field, or "" when the request is acceptable.
func ValidateRegistration(req *requests.RegisterUserRequest) string {
	if strings.TrimSpace(req.FirstName) == "" {
		return "First name is required."
	}
	if strings.TrimSpace(req.LastName) == "" {
		return "Last name is required."
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return "A valid email address is required."
	}
	if len(req.Password) < 8 {
		return "Password must be at least 8 characters long."
	}
	return ""
}
