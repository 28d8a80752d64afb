package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an editor account for the management API. Accounts are provisioned
// out-of-band (seed script); there is no self-service signup.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

type CreateUserInput struct {
	Email        string
	Name         string
	PasswordHash string
}
