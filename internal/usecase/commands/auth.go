package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"cappa-booking/internal/domain/user"
	"cappa-booking/internal/pkg/clock"
	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/pkg/jwt"
	"cappa-booking/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrEmailTaken           = errs.New("email already registered")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAccountNotVerified   = errs.New("account not verified")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

const otpValidity = 15 * time.Minute

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginResult struct {
	UserID    uuid.UUID
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth_mock.go -package=commandsmock

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (uuid.UUID, error)
	VerifyAccount(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	users      UserRepository
	mailer     Mailer
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(users UserRepository, mailer Mailer, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		mailer:     mailer,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	firstName, err := user.NewName(in.FirstName)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	lastName, err := user.NewName(in.LastName)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	pw, err := user.NewPassword(in.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if existing, findErr := a.users.FindByEmail(ctx, email.Value()); findErr == nil && existing != nil {
		return uuid.Nil, ErrEmailTaken
	}

	hash, err := password.Hash(pw.Value())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	newUser := user.NewUser(firstName, lastName, email, hash, a.clock.Now())

	code, err := generateOTP()
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to generate verification code")
	}
	if err := newUser.IssueVerificationCode(code, a.clock.Now().Add(otpValidity)); err != nil {
		return uuid.Nil, err
	}

	if err := a.users.Create(ctx, newUser); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := a.mailer.SendVerificationCode(ctx, email.Value(), code); err != nil {
		// Account exists; the user can request a resend.
		slog.Warn("failed to send verification code", "email", email.Value(), "error", err.Error())
	}

	return newUser.ID(), nil
}

func (a *authCommandsImpl) VerifyAccount(ctx context.Context, email, code string) error {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return errs.Mark(err, ErrUserNotFound)
	}

	if err := u.Verify(code, a.clock.Now()); err != nil {
		return err
	}

	if err := a.users.Update(ctx, u); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (a *authCommandsImpl) ResendOTP(ctx context.Context, email string) error {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return errs.Mark(err, ErrUserNotFound)
	}

	code, err := generateOTP()
	if err != nil {
		return errs.Wrap(err, "failed to generate verification code")
	}
	if err := u.IssueVerificationCode(code, a.clock.Now().Add(otpValidity)); err != nil {
		return err
	}

	if err := a.users.Update(ctx, u); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return a.mailer.SendVerificationCode(ctx, email, code)
}

func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	if err := password.Verify(u.PasswordHash(), rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsVerified() {
		return nil, ErrAccountNotVerified
	}

	accessToken, err := a.jwtService.GenerateAccessToken(u.ID(), u.Email().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(u.ID(), u.Email().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if err := a.users.UpdateLastLogin(ctx, u.ID()); err != nil {
		// Not critical; login already succeeded.
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	return &LoginResult{
		UserID: u.ID(),
		TokenPair: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	u, err := a.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	accessToken, err := a.jwtService.GenerateAccessToken(u.ID(), u.Email().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	newRefreshToken, err := a.jwtService.GenerateRefreshToken(u.ID(), u.Email().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// generateOTP returns a 6-digit zero-padded code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
