package token

import (
	"time"

	"dvsubmit-backend/db/models"

	"github.com/google/uuid"
)

// Maker is the contract for anything that can create and verify tokens.
// Lets the token implementation be swapped without touching handlers.
type Maker interface {
	CreateToken(userID uuid.UUID, email string, role models.Role, duration time.Duration) (string, error)

	VerifyToken(token string) (*Payload, error)
}
