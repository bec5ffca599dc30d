package readstore

import (
	"context"

	"cappa-booking/internal/infra"
	"cappa-booking/internal/pkg/pgconv"
	"cappa-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const query = `
		SELECT id, first_name, last_name, email, verified, created_at
		FROM users
		WHERE id = $1`

	var (
		view      queries.UserView
		userID    pgtype.UUID
		createdAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&userID, &view.FirstName, &view.LastName, &view.Email, &view.Verified, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	view.ID = pgconv.UUIDFromPgtype(userID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
