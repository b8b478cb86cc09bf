package premises

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placements/placements/internal/domain/planning"
	"github.com/placements/placements/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Premises Repository ===========

type premisesRepoPG struct{ pool *pgxpool.Pool }

func NewPremisesRepoPG(pool *pgxpool.Pool) PremisesRepository { return &premisesRepoPG{pool: pool} }

func (r *premisesRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const premisesCols = `id, name, ap_code, postcode, status, created_at, updated_at`

func (r *premisesRepoPG) scanPremises(row pgx.Row) (*Premises, error) {
	var p Premises
	err := row.Scan(&p.ID, &p.Name, &p.ApCode, &p.Postcode, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *premisesRepoPG) Create(ctx context.Context, p *Premises) error {
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = StatusActive
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO premises (id, name, ap_code, postcode, status)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.ApCode, p.Postcode, p.Status)
	return err
}

func (r *premisesRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Premises, error) {
	return r.scanPremises(r.conn(ctx).QueryRow(ctx, `SELECT `+premisesCols+` FROM premises WHERE id = $1`, id))
}

func (r *premisesRepoPG) Update(ctx context.Context, p *Premises) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE premises SET name=$2, ap_code=$3, postcode=$4, status=$5, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.ApCode, p.Postcode, p.Status)
	return err
}

func (r *premisesRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM premises WHERE id = $1`, id)
	return err
}

func (r *premisesRepoPG) List(ctx context.Context, limit, offset int) ([]*Premises, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM premises`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+premisesCols+` FROM premises ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Premises
	for rows.Next() {
		p, err := r.scanPremises(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

// =========== Room Repository ===========

type roomRepoPG struct{ pool *pgxpool.Pool }

func NewRoomRepoPG(pool *pgxpool.Pool) RoomRepository { return &roomRepoPG{pool: pool} }

func (r *roomRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const roomCols = `id, premises_id, name, code, created_at, updated_at`

func (r *roomRepoPG) scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	err := row.Scan(&rm.ID, &rm.PremisesID, &rm.Name, &rm.Code, &rm.CreatedAt, &rm.UpdatedAt)
	return &rm, err
}

func (r *roomRepoPG) Create(ctx context.Context, rm *Room, characteristicIDs []uuid.UUID) error {
	rm.ID = uuid.New()
	return db.InTx(ctx, r.pool, func(ctx context.Context) error {
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO rooms (id, premises_id, name, code)
			VALUES ($1,$2,$3,$4)`,
			rm.ID, rm.PremisesID, rm.Name, rm.Code)
		if err != nil {
			return err
		}
		return r.SetCharacteristics(ctx, rm.ID, characteristicIDs)
	})
}

func (r *roomRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	rm, err := r.scanRoom(r.conn(ctx).QueryRow(ctx, `SELECT `+roomCols+` FROM rooms WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	chars, err := r.roomCharacteristics(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	rm.Characteristics = chars[id]
	return rm, nil
}

func (r *roomRepoPG) ListByPremises(ctx context.Context, premisesID uuid.UUID) ([]*Room, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+roomCols+` FROM rooms WHERE premises_id = $1 ORDER BY name`, premisesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Room
	var roomIDs []uuid.UUID
	for rows.Next() {
		rm, err := r.scanRoom(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rm)
		roomIDs = append(roomIDs, rm.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	chars, err := r.roomCharacteristics(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	for _, rm := range result {
		rm.Characteristics = chars[rm.ID]
	}
	return result, nil
}

func (r *roomRepoPG) SetCharacteristics(ctx context.Context, roomID uuid.UUID, characteristicIDs []uuid.UUID) error {
	return db.InTx(ctx, r.pool, func(ctx context.Context) error {
		if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM room_characteristics WHERE room_id = $1`, roomID); err != nil {
			return err
		}
		for _, cid := range characteristicIDs {
			if _, err := r.conn(ctx).Exec(ctx, `
				INSERT INTO room_characteristics (room_id, characteristic_id) VALUES ($1,$2)`, roomID, cid); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *roomRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}

func (r *roomRepoPG) roomCharacteristics(ctx context.Context, roomIDs []uuid.UUID) (map[uuid.UUID][]Characteristic, error) {
	out := make(map[uuid.UUID][]Characteristic)
	if len(roomIDs) == 0 {
		return out, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT rc.room_id, c.id, c.name, c.property_name, c.weighting, c.is_single_room
		FROM room_characteristics rc
		JOIN characteristics c ON c.id = rc.characteristic_id
		WHERE rc.room_id = ANY($1)
		ORDER BY c.property_name`, roomIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var roomID uuid.UUID
		var c Characteristic
		if err := rows.Scan(&roomID, &c.ID, &c.Name, &c.PropertyName, &c.Weighting, &c.IsSingleRoom); err != nil {
			return nil, err
		}
		out[roomID] = append(out[roomID], c)
	}
	return out, rows.Err()
}

// =========== Bed Repository ===========

type bedRepoPG struct{ pool *pgxpool.Pool }

func NewBedRepoPG(pool *pgxpool.Pool) BedRepository { return &bedRepoPG{pool: pool} }

func (r *bedRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const bedCols = `id, room_id, name, code, end_date, created_at, updated_at`

func (r *bedRepoPG) scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(&b.ID, &b.RoomID, &b.Name, &b.Code, &b.EndDate, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *bedRepoPG) Create(ctx context.Context, b *Bed) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO beds (id, room_id, name, code, end_date)
		VALUES ($1,$2,$3,$4,$5)`,
		b.ID, b.RoomID, b.Name, b.Code, b.EndDate)
	return err
}

func (r *bedRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return r.scanBed(r.conn(ctx).QueryRow(ctx, `SELECT `+bedCols+` FROM beds WHERE id = $1`, id))
}

func (r *bedRepoPG) ListByPremises(ctx context.Context, premisesID uuid.UUID, includeEnded bool) ([]*Bed, error) {
	query := `
		SELECT b.id, b.room_id, b.name, b.code, b.end_date, b.created_at, b.updated_at
		FROM beds b
		JOIN rooms rm ON rm.id = b.room_id
		WHERE rm.premises_id = $1`
	if !includeEnded {
		query += ` AND (b.end_date IS NULL OR b.end_date > NOW()::date)`
	}
	query += ` ORDER BY b.name`

	rows, err := r.conn(ctx).Query(ctx, query, premisesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Bed
	for rows.Next() {
		b, err := r.scanBed(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *bedRepoPG) Update(ctx context.Context, b *Bed) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE beds SET name=$2, code=$3, end_date=$4, updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.Name, b.Code, b.EndDate)
	return err
}

func (r *bedRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM beds WHERE id = $1`, id)
	return err
}

// =========== Characteristic Repository ===========

type characteristicRepoPG struct{ pool *pgxpool.Pool }

func NewCharacteristicRepoPG(pool *pgxpool.Pool) CharacteristicRepository {
	return &characteristicRepoPG{pool: pool}
}

func (r *characteristicRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const characteristicCols = `id, name, property_name, weighting, is_single_room`

func (r *characteristicRepoPG) query(ctx context.Context, sql string, args ...interface{}) ([]Characteristic, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Characteristic
	for rows.Next() {
		var c Characteristic
		if err := rows.Scan(&c.ID, &c.Name, &c.PropertyName, &c.Weighting, &c.IsSingleRoom); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *characteristicRepoPG) List(ctx context.Context) ([]Characteristic, error) {
	return r.query(ctx, `SELECT `+characteristicCols+` FROM characteristics ORDER BY property_name`)
}

func (r *characteristicRepoPG) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Characteristic, error) {
	return r.query(ctx, `SELECT `+characteristicCols+` FROM characteristics WHERE id = ANY($1) ORDER BY property_name`, ids)
}

func (r *characteristicRepoPG) GetByPropertyNames(ctx context.Context, propertyNames []string) ([]Characteristic, error) {
	return r.query(ctx, `SELECT `+characteristicCols+` FROM characteristics WHERE property_name = ANY($1) ORDER BY property_name`, propertyNames)
}

// =========== Out-of-Service Repository ===========

type outOfServiceRepoPG struct{ pool *pgxpool.Pool }

func NewOutOfServiceRepoPG(pool *pgxpool.Pool) OutOfServiceRepository {
	return &outOfServiceRepoPG{pool: pool}
}

func (r *outOfServiceRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const oosCols = `o.id, o.bed_id, o.start_date, o.end_date, o.reason_id, rs.name, o.notes, o.created_at, o.updated_at`

func (r *outOfServiceRepoPG) scanOOS(row pgx.Row) (*OutOfServiceBed, error) {
	var o OutOfServiceBed
	err := row.Scan(&o.ID, &o.BedID, &o.StartDate, &o.EndDate, &o.ReasonID, &o.ReasonName, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *outOfServiceRepoPG) Create(ctx context.Context, o *OutOfServiceBed) error {
	o.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO out_of_service_beds (id, bed_id, start_date, end_date, reason_id, notes)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.BedID, o.StartDate, o.EndDate, o.ReasonID, o.Notes)
	return err
}

func (r *outOfServiceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*OutOfServiceBed, error) {
	return r.scanOOS(r.conn(ctx).QueryRow(ctx, `
		SELECT `+oosCols+`
		FROM out_of_service_beds o
		JOIN out_of_service_bed_reasons rs ON rs.id = o.reason_id
		WHERE o.id = $1`, id))
}

func (r *outOfServiceRepoPG) Update(ctx context.Context, o *OutOfServiceBed) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE out_of_service_beds SET start_date=$2, end_date=$3, reason_id=$4, notes=$5, updated_at=NOW()
		WHERE id = $1`,
		o.ID, o.StartDate, o.EndDate, o.ReasonID, o.Notes)
	return err
}

func (r *outOfServiceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM out_of_service_beds WHERE id = $1`, id)
	return err
}

func (r *outOfServiceRepoPG) ListByPremises(ctx context.Context, premisesID uuid.UUID, start, end time.Time, limit, offset int) ([]*OutOfServiceBed, int, error) {
	const where = `
		FROM out_of_service_beds o
		JOIN out_of_service_bed_reasons rs ON rs.id = o.reason_id
		JOIN beds b ON b.id = o.bed_id
		JOIN rooms rm ON rm.id = b.room_id
		WHERE rm.premises_id = $1 AND o.start_date <= $3 AND o.end_date >= $2`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where, premisesID, start, end).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT `+oosCols+where+` ORDER BY o.start_date LIMIT $4 OFFSET $5`,
		premisesID, start, end, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*OutOfServiceBed
	for rows.Next() {
		o, err := r.scanOOS(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	return result, total, rows.Err()
}

func (r *outOfServiceRepoPG) ListReasons(ctx context.Context) ([]OutOfServiceReason, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, name FROM out_of_service_bed_reasons ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OutOfServiceReason
	for rows.Next() {
		var rs OutOfServiceReason
		if err := rows.Scan(&rs.ID, &rs.Name); err != nil {
			return nil, err
		}
		result = append(result, rs)
	}
	return result, rows.Err()
}

// =========== Planning Queries ===========

type planningQueriesPG struct{ pool *pgxpool.Pool }

// NewPlanningQueriesPG returns the read surface the planning engine consumes.
func NewPlanningQueriesPG(pool *pgxpool.Pool) PlanningQueries { return &planningQueriesPG{pool: pool} }

func (r *planningQueriesPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *planningQueriesPG) BedSummaries(ctx context.Context, premisesID uuid.UUID, includeEnded bool) ([]planning.BedSummary, error) {
	query := `
		SELECT b.id, b.name, b.end_date, rm.id, rm.name
		FROM beds b
		JOIN rooms rm ON rm.id = b.room_id
		WHERE rm.premises_id = $1`
	if !includeEnded {
		query += ` AND (b.end_date IS NULL OR b.end_date > NOW()::date)`
	}
	query += ` ORDER BY b.name`

	rows, err := r.conn(ctx).Query(ctx, query, premisesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []planning.BedSummary
	var roomIDs []uuid.UUID
	seenRooms := make(map[uuid.UUID]bool)
	for rows.Next() {
		var s planning.BedSummary
		if err := rows.Scan(&s.BedID, &s.BedName, &s.EndDate, &s.RoomID, &s.RoomName); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
		if !seenRooms[s.RoomID] {
			seenRooms[s.RoomID] = true
			roomIDs = append(roomIDs, s.RoomID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	chars, err := r.roomPlanningCharacteristics(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Characteristics = chars[summaries[i].RoomID]
	}
	return summaries, nil
}

func (r *planningQueriesPG) roomPlanningCharacteristics(ctx context.Context, roomIDs []uuid.UUID) (map[uuid.UUID][]planning.Characteristic, error) {
	out := make(map[uuid.UUID][]planning.Characteristic)
	if len(roomIDs) == 0 {
		return out, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT rc.room_id, c.id, c.name, c.property_name, c.weighting, c.is_single_room
		FROM room_characteristics rc
		JOIN characteristics c ON c.id = rc.characteristic_id
		WHERE rc.room_id = ANY($1)
		ORDER BY c.property_name`, roomIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var roomID uuid.UUID
		var c planning.Characteristic
		if err := rows.Scan(&roomID, &c.ID, &c.Name, &c.PropertyName, &c.Weighting, &c.IsSingleRoom); err != nil {
			return nil, err
		}
		out[roomID] = append(out[roomID], c)
	}
	return out, rows.Err()
}

func (r *planningQueriesPG) OutOfServiceWindows(ctx context.Context, premisesID uuid.UUID, start, end time.Time) ([]planning.OutOfServiceWindow, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT o.bed_id, o.start_date, o.end_date, rs.name
		FROM out_of_service_beds o
		JOIN out_of_service_bed_reasons rs ON rs.id = o.reason_id
		JOIN beds b ON b.id = o.bed_id
		JOIN rooms rm ON rm.id = b.room_id
		WHERE rm.premises_id = $1 AND o.start_date <= $3 AND o.end_date >= $2
		ORDER BY o.start_date`, premisesID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []planning.OutOfServiceWindow
	for rows.Next() {
		var w planning.OutOfServiceWindow
		if err := rows.Scan(&w.BedID, &w.StartDate, &w.EndDate, &w.Reason); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
