package schema

import (
	"encoding/json"
	"errors"
)

// PasswordResetLink is queued for the mailer. Link carries a live token,
// so the message must never be logged as a whole.
type PasswordResetLink struct {
	Email string `json:"email"`
	Link  string `json:"link"`
}

func (m *PasswordResetLink) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *PasswordResetLink) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	if m.Email == "" || m.Link == "" {
		return errors.New("password reset link message is incomplete")
	}
	return nil
}
