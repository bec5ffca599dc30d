//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"cappa-booking/internal/domain/user"
	"cappa-booking/internal/pkg/clock"
	"cappa-booking/internal/pkg/errs"
	"cappa-booking/internal/pkg/jwt"
	"cappa-booking/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthCommands(users *fakeUserRepo, mailer *fakeMailer, clk clock.Clock) commands.AuthCommands {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	return commands.NewAuthCommands(users, mailer, jwtService, clk)
}

func registerInput() commands.RegisterInput {
	return commands.RegisterInput{
		FirstName: "Adaeze",
		LastName:  "Obi",
		Email:     "adaeze@example.com",
		Password:  "s3cret-pass",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an unverified account and mails the code", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		cmds := newAuthCommands(users, mailer, clock.NewMockClock(testNow))

		userID, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)

		u, err := users.FindByID(ctx, userID)
		require.NoError(t, err)
		assert.False(t, u.IsVerified())
		assert.True(t, u.CreatedAt().Equal(testNow))
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "adaeze@example.com", mailer.sent[0].email)
		assert.Len(t, mailer.sent[0].code, 6)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := newFakeUserRepo()
		cmds := newAuthCommands(users, &fakeMailer{}, clock.NewMockClock(testNow))
		_, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)

		_, err = cmds.Register(ctx, registerInput())
		assert.ErrorIs(t, err, commands.ErrEmailTaken)
	})

	t.Run("weak password", func(t *testing.T) {
		cmds := newAuthCommands(newFakeUserRepo(), &fakeMailer{}, clock.NewMockClock(testNow))

		in := registerInput()
		in.Password = "short"
		_, err := cmds.Register(ctx, in)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("mail failure does not lose the account", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{err: errs.New("smtp down")}
		cmds := newAuthCommands(users, mailer, clock.NewMockClock(testNow))

		userID, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)

		_, err = users.FindByID(ctx, userID)
		assert.NoError(t, err)
	})
}

func TestVerifyAccount(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, users *fakeUserRepo, mailer *fakeMailer, clk clock.Clock) commands.AuthCommands {
		t.Helper()
		cmds := newAuthCommands(users, mailer, clk)
		_, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)
		return cmds
	}

	t.Run("correct code verifies the account", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		cmds := register(t, users, mailer, clock.NewMockClock(testNow))

		require.NoError(t, cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[0].code))

		u, err := users.FindByEmail(ctx, "adaeze@example.com")
		require.NoError(t, err)
		assert.True(t, u.IsVerified())
	})

	t.Run("wrong code", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		cmds := register(t, users, mailer, clock.NewMockClock(testNow))

		wrong := "999999"
		if mailer.sent[0].code == wrong {
			wrong = "999998"
		}
		err := cmds.VerifyAccount(ctx, "adaeze@example.com", wrong)
		assert.ErrorIs(t, err, user.ErrCodeMismatch)
	})

	t.Run("expired code", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		clk := clock.NewMockClock(testNow)
		cmds := register(t, users, mailer, clk)

		clk.Add(16 * time.Minute)
		err := cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[0].code)
		assert.ErrorIs(t, err, user.ErrCodeExpired)
	})

	t.Run("already verified", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		cmds := register(t, users, mailer, clock.NewMockClock(testNow))
		require.NoError(t, cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[0].code))

		err := cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[0].code)
		assert.ErrorIs(t, err, user.ErrAlreadyVerified)
	})

	t.Run("unknown email", func(t *testing.T) {
		cmds := newAuthCommands(newFakeUserRepo(), &fakeMailer{}, clock.NewMockClock(testNow))

		err := cmds.VerifyAccount(ctx, "nobody@example.com", "123456")
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})
}

func TestResendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a fresh code", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		cmds := newAuthCommands(users, mailer, clock.NewMockClock(testNow))
		_, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)

		require.NoError(t, cmds.ResendOTP(ctx, "adaeze@example.com"))
		require.Len(t, mailer.sent, 2)

		// The old code is superseded.
		err = cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[1].code)
		assert.NoError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		cmds := newAuthCommands(newFakeUserRepo(), &fakeMailer{}, clock.NewMockClock(testNow))

		err := cmds.ResendOTP(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	registerVerified := func(t *testing.T, users *fakeUserRepo) commands.AuthCommands {
		t.Helper()
		mailer := &fakeMailer{}
		cmds := newAuthCommands(users, mailer, clock.NewMockClock(testNow))
		_, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)
		require.NoError(t, cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[0].code))
		return cmds
	}

	t.Run("verified account gets a token pair", func(t *testing.T) {
		users := newFakeUserRepo()
		cmds := registerVerified(t, users)

		result, err := cmds.Login(ctx, "adaeze@example.com", "s3cret-pass")
		require.NoError(t, err)

		assert.NotEmpty(t, result.TokenPair.AccessToken)
		assert.NotEmpty(t, result.TokenPair.RefreshToken)
		assert.Equal(t, 1, users.lastLogins)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := newFakeUserRepo()
		cmds := registerVerified(t, users)

		_, err := cmds.Login(ctx, "adaeze@example.com", "wrong-pass")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		cmds := newAuthCommands(newFakeUserRepo(), &fakeMailer{}, clock.NewMockClock(testNow))

		_, err := cmds.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unverified account", func(t *testing.T) {
		users := newFakeUserRepo()
		cmds := newAuthCommands(users, &fakeMailer{}, clock.NewMockClock(testNow))
		_, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)

		_, err = cmds.Login(ctx, "adaeze@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, commands.ErrAccountNotVerified)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		cmds := newAuthCommands(users, mailer, clock.NewMockClock(testNow))
		_, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)
		require.NoError(t, cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[0].code))
		result, err := cmds.Login(ctx, "adaeze@example.com", "s3cret-pass")
		require.NoError(t, err)

		pair, err := cmds.RefreshToken(ctx, result.TokenPair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		cmds := newAuthCommands(users, mailer, clock.NewMockClock(testNow))
		_, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)
		require.NoError(t, cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[0].code))
		result, err := cmds.Login(ctx, "adaeze@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = cmds.RefreshToken(ctx, result.TokenPair.AccessToken)
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("garbage token", func(t *testing.T) {
		cmds := newAuthCommands(newFakeUserRepo(), &fakeMailer{}, clock.NewMockClock(testNow))

		_, err := cmds.RefreshToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		users := newFakeUserRepo()
		mailer := &fakeMailer{}
		cmds := newAuthCommands(users, mailer, clock.NewMockClock(testNow))
		userID, err := cmds.Register(ctx, registerInput())
		require.NoError(t, err)
		require.NoError(t, cmds.VerifyAccount(ctx, "adaeze@example.com", mailer.sent[0].code))
		result, err := cmds.Login(ctx, "adaeze@example.com", "s3cret-pass")
		require.NoError(t, err)

		delete(users.byID, userID)
		_, err = cmds.RefreshToken(ctx, result.TokenPair.RefreshToken)
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})
}
