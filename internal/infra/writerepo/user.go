package writerepo

import (
	"context"
	"errors"

	"cappa-booking/internal/domain/user"
	"cappa-booking/internal/infra"
	"cappa-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgErrCodeUniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (id, email, first_name, last_name, password_hash, verified, otp_code, otp_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		u.ID(),
		u.Email().Value(),
		u.FirstName().Value(),
		u.LastName().Value(),
		u.PasswordHash(),
		u.IsVerified(),
		pgconv.StringPtrToPgtype(u.OTPCode()),
		pgconv.TimePtrToPgtype(u.OTPExpiresAt()),
		u.CreatedAt(),
		u.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	const query = userSelectColumns + ` WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	const query = userSelectColumns + ` WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	const query = `
		UPDATE users
		SET verified = $2, otp_code = $3, otp_expires_at = $4, password_hash = $5, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		u.ID(),
		u.IsVerified(),
		pgconv.StringPtrToPgtype(u.OTPCode()),
		pgconv.TimePtrToPgtype(u.OTPExpiresAt()),
		u.PasswordHash(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to record last login", err)
	}
	return nil
}

const userSelectColumns = `
	SELECT id, email, first_name, last_name, password_hash, verified, otp_code, otp_expires_at, last_login_at, created_at, updated_at
	FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanUser(row rowScanner) (*user.User, error) {
	var (
		id                   pgtype.UUID
		email                string
		firstName, lastName  string
		passwordHash         string
		verified             bool
		otpCode              pgtype.Text
		otpExpiresAt         pgtype.Timestamptz
		lastLogin            pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &email, &firstName, &lastName, &passwordHash, &verified,
		&otpCode, &otpExpiresAt, &lastLogin, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan user", err)
	}

	emailVO, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	firstVO, err := user.NewName(firstName)
	if err != nil {
		return nil, infra.WrapRepoErr("stored first name is invalid", err)
	}
	lastVO, err := user.NewName(lastName)
	if err != nil {
		return nil, infra.WrapRepoErr("stored last name is invalid", err)
	}

	return user.ReconstructUser(
		pgconv.UUIDFromPgtype(id),
		firstVO, lastVO,
		emailVO,
		passwordHash,
		verified,
		pgconv.StringPtrFromPgtype(otpCode),
		pgconv.TimePtrFromPgtype(otpExpiresAt),
		pgconv.TimePtrFromPgtype(lastLogin),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
