package user

// RawPassword is a plaintext credential as the user typed it.
type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// PasswordHash is the salted one-way digest stored in place of a password.
type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

// PasswordHasher must produce a different hash for every call with the same
// password. ValidatePassword reports false for malformed hashes.
type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
