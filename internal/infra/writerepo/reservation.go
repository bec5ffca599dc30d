package writerepo

import (
	"context"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/infra"
	"cappa-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

// Create persists the reservation and its room allocations atomically.
func (r *ReservationRepository) Create(ctx context.Context, res *booking.Reservation) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO reservations (id, user_id, guest_name, email, phone, check_in, check_out,
				adults, children, special_request, nights, total_price, payment_status, payment_reference,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

		_, err := tx.Exec(ctx, query,
			res.ID(), res.UserID(), res.GuestName(), res.Email(), res.Phone(),
			res.CheckIn(), res.CheckOut(), res.Adults(), res.Children(), res.SpecialRequest(),
			res.Nights(), res.TotalPrice(), string(res.PaymentStatus()),
			pgconv.StringPtrToPgtype(res.PaymentReference()),
			res.CreatedAt(), res.UpdatedAt(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create reservation", err)
		}

		return insertAllocations(ctx, tx, res.ID(), res.Allocations())
	})
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error) {
	const query = `
		SELECT id, user_id, guest_name, email, phone, check_in, check_out,
			adults, children, special_request, nights, total_price, payment_status, payment_reference,
			created_at, updated_at
		FROM reservations
		WHERE id = $1`

	var (
		resID, userID        pgtype.UUID
		stayData             booking.StayData
		nights               int
		totalPrice           int64
		status               string
		reference            pgtype.Text
		checkIn, checkOut    pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&resID, &userID, &stayData.GuestName, &stayData.Email, &stayData.Phone,
		&checkIn, &checkOut, &stayData.Adults, &stayData.Children, &stayData.SpecialRequest,
		&nights, &totalPrice, &status, &reference, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	stayData.CheckIn = pgconv.TimeFromPgtype(checkIn)
	stayData.CheckOut = pgconv.TimeFromPgtype(checkOut)

	allocations, err := r.loadAllocations(ctx, id)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructReservation(
		pgconv.UUIDFromPgtype(resID),
		pgconv.UUIDFromPgtype(userID),
		stayData,
		allocations,
		nights,
		totalPrice,
		booking.PaymentStatus(status),
		pgconv.StringPtrFromPgtype(reference),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// Update rewrites the reservation row and replaces its allocations. Modify
// can change the room mix, so the allocation set is not patched in place.
func (r *ReservationRepository) Update(ctx context.Context, res *booking.Reservation) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		const query = `
			UPDATE reservations
			SET guest_name = $2, email = $3, phone = $4, check_in = $5, check_out = $6,
				adults = $7, children = $8, special_request = $9, nights = $10, total_price = $11,
				payment_status = $12, payment_reference = $13, updated_at = now()
			WHERE id = $1`

		tag, err := tx.Exec(ctx, query,
			res.ID(), res.GuestName(), res.Email(), res.Phone(), res.CheckIn(), res.CheckOut(),
			res.Adults(), res.Children(), res.SpecialRequest(), res.Nights(), res.TotalPrice(),
			string(res.PaymentStatus()), pgconv.StringPtrToPgtype(res.PaymentReference()),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to update reservation", err)
		}
		if tag.RowsAffected() == 0 {
			return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM room_allocations WHERE reservation_id = $1`, res.ID()); err != nil {
			return infra.WrapRepoErr("failed to clear room allocations", err)
		}
		return insertAllocations(ctx, tx, res.ID(), res.Allocations())
	})
}

func (r *ReservationRepository) loadAllocations(ctx context.Context, reservationID uuid.UUID) ([]booking.Allocation, error) {
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

	var allocations []booking.Allocation
	for rows.Next() {
		var a booking.Allocation
		var roomType string
		if err := rows.Scan(&roomType, &a.RoomName, &a.Quantity, &a.NightlyPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room allocation", err)
		}
		a.RoomType = room.TypeID(roomType)
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room allocations", err)
	}
	return allocations, nil
}

func insertAllocations(ctx context.Context, tx pgx.Tx, reservationID uuid.UUID, allocations []booking.Allocation) error {
	const query = `
		INSERT INTO room_allocations (reservation_id, room_type, room_name, quantity, nightly_price)
		VALUES ($1, $2, $3, $4, $5)`

	for _, a := range allocations {
		if _, err := tx.Exec(ctx, query, reservationID, string(a.RoomType), a.RoomName, a.Quantity, a.NightlyPrice); err != nil {
			return infra.WrapRepoErr("failed to insert room allocation", err)
		}
	}
	return nil
}

func (r *ReservationRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit transaction", err)
	}
	return nil
}
