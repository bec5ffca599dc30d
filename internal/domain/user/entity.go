package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyVerified = errors.New("account already verified")
	ErrCodeMismatch    = errors.New("verification code mismatch")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrNoPendingCode   = errors.New("no pending verification code")
)

// User is a guest account. Registration leaves the account unverified until
// the emailed one-time code is confirmed.
type User struct {
	id            uuid.UUID
	firstName     Name
	lastName      Name
	email         Email
	passwordHash  string
	verified      bool
	otpCode       *string
	otpExpiresAt  *time.Time
	lastLogin     *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewUser(firstName, lastName Name, email Email, passwordHash string, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructUser(
	id uuid.UUID,
	firstName, lastName Name,
	email Email,
	passwordHash string,
	verified bool,
	otpCode *string,
	otpExpiresAt *time.Time,
	lastLogin *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		passwordHash: passwordHash,
		verified:     verified,
		otpCode:      otpCode,
		otpExpiresAt: otpExpiresAt,
		lastLogin:    lastLogin,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// IssueVerificationCode stores a fresh one-time code. Re-issuing replaces any
// previous code (resend-otp).
func (u *User) IssueVerificationCode(code string, expiresAt time.Time) error {
	if u.verified {
		return ErrAlreadyVerified
	}
	u.otpCode = &code
	u.otpExpiresAt = &expiresAt
	return nil
}

// Verify confirms the account with the emailed code.
func (u *User) Verify(code string, now time.Time) error {
	if u.verified {
		return ErrAlreadyVerified
	}
	if u.otpCode == nil || u.otpExpiresAt == nil {
		return ErrNoPendingCode
	}
	if now.After(*u.otpExpiresAt) {
		return ErrCodeExpired
	}
	if *u.otpCode != code {
		return ErrCodeMismatch
	}
	u.verified = true
	u.otpCode = nil
	u.otpExpiresAt = nil
	return nil
}

func (u *User) ID() uuid.UUID            { return u.id }
func (u *User) FirstName() Name          { return u.firstName }
func (u *User) LastName() Name           { return u.lastName }
func (u *User) Email() Email             { return u.email }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) IsVerified() bool         { return u.verified }
func (u *User) OTPCode() *string         { return u.otpCode }
func (u *User) OTPExpiresAt() *time.Time { return u.otpExpiresAt }
func (u *User) LastLogin() *time.Time    { return u.lastLogin }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
func (u *User) UpdatedAt() time.Time     { return u.updatedAt }
