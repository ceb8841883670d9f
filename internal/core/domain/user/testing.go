package user

import (
	"context"
	"crypto/md5"
	c "dashboard/internal/core/domain/common"
	"fmt"
	"io"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakePasswordResetTokenGenerator struct {
	Tokens      []PasswordResetToken
	ReturnError bool
	generated   int
	lock        sync.Mutex
}

// NewFakePasswordResetTokenGenerator returns the given tokens in order,
// then keeps producing numbered ones.
func NewFakePasswordResetTokenGenerator(tokens ...string) *FakePasswordResetTokenGenerator {
	g := &FakePasswordResetTokenGenerator{}
	for _, token := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(token))
	}
	return g
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError {
		return PasswordResetToken(""), fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	g.generated++
	if g.generated <= len(g.Tokens) {
		return g.Tokens[g.generated-1], nil
	}
	return PasswordResetToken(fmt.Sprintf("test-password-reset-token-%d", g.generated)), nil
}

type FakeUserRepository struct {
	Users                      []User
	ReturnError                bool
	SetPasswordResetTokenCalls int
	ResetPasswordCalls         int
	lock                       sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByLivePasswordResetTokenWithLock(
	ctx context.Context,
	token PasswordResetToken,
	now time.Time,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.HasLivePasswordResetToken(token, now) {
			return u, nil
		}
	}
	return u, ErrInvalidOrExpiredPasswordResetToken
}

func (r *FakeUserRepository) SetPasswordResetToken(ctx context.Context, input SetPasswordResetTokenInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.SetPasswordResetTokenCalls++
	for ix, u := range r.Users {
		if u.ID == input.ID {
			r.Users[ix].PasswordResetToken = c.Some(input.Token)
			r.Users[ix].PasswordResetTokenExpiry = c.Some(input.ExpiresAt)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not reset password")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ResetPasswordCalls++
	for ix, u := range r.Users {
		if u.ID == input.ID && u.PasswordResetToken.IsPresent && u.PasswordResetToken.Value == input.Token {
			r.Users[ix].PasswordHash = input.PasswordHash
			r.Users[ix].PasswordResetToken = c.None[PasswordResetToken]()
			r.Users[ix].PasswordResetTokenExpiry = c.None[time.Time]()
			return nil
		}
	}
	return ErrInvalidOrExpiredPasswordResetToken
}

// Get returns a copy of the stored user, panicking if it is absent.
func (r *FakeUserRepository) Get(email c.Email) User {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u
		}
	}
	panic(fmt.Sprintf("user %s does not exist", email))
}

type SentPasswordResetLink struct {
	To   c.Email
	Link PasswordResetLink
}

type FakePasswordResetLinkSender struct {
	Sent        []SentPasswordResetLink
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetLinkSender() *FakePasswordResetLinkSender {
	return &FakePasswordResetLinkSender{}
}

func (s *FakePasswordResetLinkSender) SendPasswordResetLink(
	ctx context.Context,
	to c.Email,
	link PasswordResetLink,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset link")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentPasswordResetLink{To: to, Link: link})
	return nil
}

func (s *FakePasswordResetLinkSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakePasswordResetLinkSender) LastSent() SentPasswordResetLink {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}
