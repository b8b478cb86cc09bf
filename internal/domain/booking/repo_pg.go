package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placements/placements/internal/domain/planning"
	"github.com/placements/placements/internal/domain/premises"
	"github.com/placements/placements/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const bookingCols = `id, premises_id, crn, canonical_arrival_date, canonical_departure_date, cancelled_at, created_at, updated_at`

func (r *repoPG) scanBooking(row pgx.Row) (*SpaceBooking, error) {
	var b SpaceBooking
	err := row.Scan(&b.ID, &b.PremisesID, &b.CRN, &b.CanonicalArrivalDate, &b.CanonicalDepartureDate,
		&b.CancelledAt, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *repoPG) Create(ctx context.Context, b *SpaceBooking, characteristicIDs []uuid.UUID) error {
	b.ID = uuid.New()
	return db.InTx(ctx, r.pool, func(ctx context.Context) error {
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO space_bookings (id, premises_id, crn, canonical_arrival_date, canonical_departure_date)
			VALUES ($1,$2,$3,$4,$5)`,
			b.ID, b.PremisesID, b.CRN, b.CanonicalArrivalDate, b.CanonicalDepartureDate)
		if err != nil {
			return err
		}
		for _, cid := range characteristicIDs {
			if _, err := r.conn(ctx).Exec(ctx, `
				INSERT INTO space_booking_characteristics (booking_id, characteristic_id) VALUES ($1,$2)`, b.ID, cid); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*SpaceBooking, error) {
	b, err := r.scanBooking(r.conn(ctx).QueryRow(ctx, `SELECT `+bookingCols+` FROM space_bookings WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	criteria, err := r.bookingCriteria(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	b.Criteria = criteria[id]
	return b, nil
}

func (r *repoPG) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE space_bookings SET cancelled_at=$2, updated_at=NOW()
		WHERE id = $1 AND cancelled_at IS NULL`, id, at)
	return err
}

func (r *repoPG) ListByPremises(ctx context.Context, premisesID uuid.UUID, start, end time.Time, limit, offset int) ([]*SpaceBooking, int, error) {
	const where = ` FROM space_bookings
		WHERE premises_id = $1 AND canonical_arrival_date <= $3 AND canonical_departure_date > $2`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where, premisesID, start, end).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT `+bookingCols+where+` ORDER BY canonical_arrival_date LIMIT $4 OFFSET $5`,
		premisesID, start, end, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*SpaceBooking
	var ids []uuid.UUID
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	criteria, err := r.bookingCriteria(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, b := range result {
		b.Criteria = criteria[b.ID]
	}
	return result, total, nil
}

func (r *repoPG) bookingCriteria(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]premises.Characteristic, error) {
	out := make(map[uuid.UUID][]premises.Characteristic)
	if len(bookingIDs) == 0 {
		return out, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT bc.booking_id, c.id, c.name, c.property_name, c.weighting, c.is_single_room
		FROM space_booking_characteristics bc
		JOIN characteristics c ON c.id = bc.characteristic_id
		WHERE bc.booking_id = ANY($1)
		ORDER BY c.property_name`, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID uuid.UUID
		var c premises.Characteristic
		if err := rows.Scan(&bookingID, &c.ID, &c.Name, &c.PropertyName, &c.Weighting, &c.IsSingleRoom); err != nil {
			return nil, err
		}
		out[bookingID] = append(out[bookingID], c)
	}
	return out, rows.Err()
}

func (r *repoPG) PlanningBookings(ctx context.Context, premisesID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) ([]planning.SpaceBooking, error) {
	query := `
		SELECT id, crn, canonical_arrival_date, canonical_departure_date
		FROM space_bookings
		WHERE premises_id = $1
		  AND cancelled_at IS NULL
		  AND canonical_arrival_date <= $3
		  AND canonical_departure_date > $2`
	args := []interface{}{premisesID, start, end}
	if excludeBookingID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeBookingID)
	}
	query += ` ORDER BY crn`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []planning.SpaceBooking
	var ids []uuid.UUID
	for rows.Next() {
		var b planning.SpaceBooking
		if err := rows.Scan(&b.ID, &b.Label, &b.ArrivalDate, &b.DepartureDate); err != nil {
			return nil, err
		}
		result = append(result, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	criteria, err := r.planningCriteria(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].RequiredCharacteristics = criteria[result[i].ID]
	}
	return result, nil
}

func (r *repoPG) planningCriteria(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]planning.Characteristic, error) {
	out := make(map[uuid.UUID][]planning.Characteristic)
	if len(bookingIDs) == 0 {
		return out, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT bc.booking_id, c.id, c.name, c.property_name, c.weighting, c.is_single_room
		FROM space_booking_characteristics bc
		JOIN characteristics c ON c.id = bc.characteristic_id
		WHERE bc.booking_id = ANY($1)
		ORDER BY c.property_name`, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID uuid.UUID
		var c planning.Characteristic
		if err := rows.Scan(&bookingID, &c.ID, &c.Name, &c.PropertyName, &c.Weighting, &c.IsSingleRoom); err != nil {
			return nil, err
		}
		out[bookingID] = append(out[bookingID], c)
	}
	return out, rows.Err()
}
