package passwordresettoken

import (
	"dashboard/internal/core/domain/user"

	"github.com/google/uuid"
)

// UUID produces random (version 4) UUIDs read from crypto/rand.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GeneratePasswordResetToken() (token user.PasswordResetToken, err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return token, err
	}
	return user.PasswordResetToken(id.String()), nil
}
