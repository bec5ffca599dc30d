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

type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const query = `
		SELECT id, user_id, guest_name, email, phone, check_in, check_out,
			adults, children, special_request, nights, total_price, payment_status, payment_reference,
			created_at, updated_at
		FROM reservations
		WHERE id = $1`

	var (
		resID, userID        pgtype.UUID
		view                 queries.ReservationView
		specialRequest       pgtype.Text
		reference            pgtype.Text
		checkIn, checkOut    pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&resID, &userID, &view.GuestName, &view.Email, &view.Phone,
		&checkIn, &checkOut, &view.Adults, &view.Children, &specialRequest,
		&view.Nights, &view.TotalPrice, &view.PaymentStatus, &reference,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	view.ID = pgconv.UUIDFromPgtype(resID)
	view.UserID = pgconv.UUIDFromPgtype(userID)
	view.CheckIn = pgconv.TimeFromPgtype(checkIn)
	view.CheckOut = pgconv.TimeFromPgtype(checkOut)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	view.PaymentReference = pgconv.StringPtrFromPgtype(reference)
	if sr := specialRequest.String; specialRequest.Valid && sr != "" {
		view.SpecialRequest = &sr
	}

	allocations, err := r.findAllocations(ctx, id)
	if err != nil {
		return nil, err
	}
	view.RoomAllocations = allocations

	return &view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	const query = `
		SELECT id, guest_name, check_in, check_out, nights, total_price, payment_status, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	items := []*queries.ReservationListItem{}
	for rows.Next() {
		var (
			item              queries.ReservationListItem
			id                pgtype.UUID
			checkIn, checkOut pgtype.Timestamptz
			createdAt         pgtype.Timestamptz
		)
		err := rows.Scan(&id, &item.GuestName, &checkIn, &checkOut,
			&item.Nights, &item.TotalPrice, &item.PaymentStatus, &createdAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.ID = pgconv.UUIDFromPgtype(id)
		item.CheckIn = pgconv.TimeFromPgtype(checkIn)
		item.CheckOut = pgconv.TimeFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return items, nil
}

func (r *ReservationReadStore) findAllocations(ctx context.Context, reservationID uuid.UUID) ([]queries.AllocationView, error) {
	const query = `
		SELECT room_type, room_name, quantity, nightly_price
		FROM room_allocations
		WHERE reservation_id = $1
		ORDER BY room_type`

	rows, err := r.pool.Query(ctx, query, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load room allocations", err)
	}
	defer rows.Close()

	var allocations []queries.AllocationView
	for rows.Next() {
		var a queries.AllocationView
		if err := rows.Scan(&a.RoomType, &a.RoomName, &a.Quantity, &a.NightlyPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room allocation", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room allocations", err)
	}
	return allocations, nil
}
