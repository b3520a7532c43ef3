package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/simagang/simagang-backend-go/internal/domain/presence"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
)

type presenceRepositoryImpl struct {
	db *database.DB
}

func NewPresenceRepository(db *database.DB) presence.PresenceRepository {
	return &presenceRepositoryImpl{db: db}
}

const presenceSelect = `
	SELECT p.id, p.internship_id, p.date, p.status,
		p.check_in, p.check_in_photo, p.check_in_latitude, p.check_in_longitude, p.check_in_location,
		p.check_out, p.check_out_photo, p.check_out_latitude, p.check_out_longitude, p.check_out_location,
		p.created_at, p.updated_at,
		u.full_name, u.position
	FROM presences p
	JOIN internships i ON i.id = p.internship_id
	JOIN users u ON u.id = i.user_id`

func scanPresence(row interface{ Scan(dest ...any) error }) (*presence.Presence, error) {
	var p presence.Presence
	err := row.Scan(
		&p.ID,
		&p.InternshipID,
		&p.Date,
		&p.Status,
		&p.CheckIn,
		&p.CheckInPhoto,
		&p.CheckInLatitude,
		&p.CheckInLongitude,
		&p.CheckInLocation,
		&p.CheckOut,
		&p.CheckOutPhoto,
		&p.CheckOutLatitude,
		&p.CheckOutLongitude,
		&p.CheckOutLocation,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.UserFullName,
		&p.UserPosition,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements presence.PresenceRepository. The unique (internship_id,
// date) index makes the second concurrent check-in of a day lose cleanly.
func (r *presenceRepositoryImpl) Create(ctx context.Context, p *presence.Presence) error {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	query := `
		INSERT INTO presences (id, internship_id, date, status, check_in, check_in_photo,
			check_in_latitude, check_in_longitude, check_in_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id.String(), p.InternshipID, p.Date, p.Status, p.CheckIn, p.CheckInPhoto,
		p.CheckInLatitude, p.CheckInLongitude, p.CheckInLocation,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return presence.ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

// SetCheckOut implements presence.PresenceRepository. The conditional UPDATE
// closes the record exactly once under concurrency.
func (r *presenceRepositoryImpl) SetCheckOut(ctx context.Context, internshipID string, date time.Time, upd presence.CheckOutUpdate) (*presence.Presence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE presences
		SET check_out = $1, check_out_photo = $2, check_out_latitude = $3,
			check_out_longitude = $4, check_out_location = $5, updated_at = NOW()
		WHERE internship_id = $6 AND date = $7 AND check_out IS NULL
	`
	tag, err := q.Exec(ctx, query, upd.Time, upd.PhotoPath, upd.Latitude, upd.Longitude, upd.Location, internshipID, date)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// No open record: either no check-in yet or already closed.
		if _, err := r.GetByDate(ctx, internshipID, date); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, presence.ErrNotCheckedInYet
			}
			return nil, err
		}
		return nil, presence.ErrAlreadyCheckedOut
	}

	return r.GetByDate(ctx, internshipID, date)
}

// GetByID implements presence.PresenceRepository.
func (r *presenceRepositoryImpl) GetByID(ctx context.Context, id string) (*presence.Presence, error) {
	q := GetQuerier(ctx, r.db)
	return scanPresence(q.QueryRow(ctx, presenceSelect+` WHERE p.id = $1`, id))
}

// GetByDate implements presence.PresenceRepository.
func (r *presenceRepositoryImpl) GetByDate(ctx context.Context, internshipID string, date time.Time) (*presence.Presence, error) {
	q := GetQuerier(ctx, r.db)
	return scanPresence(q.QueryRow(ctx, presenceSelect+` WHERE p.internship_id = $1 AND p.date = $2`, internshipID, date))
}

// List implements presence.PresenceRepository.
func (r *presenceRepositoryImpl) List(ctx context.Context, filter presence.ListFilter) ([]presence.Presence, int, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []any{}
	argPos := 1

	if filter.InternshipID != nil {
		where += fmt.Sprintf(" AND p.internship_id = $%d", argPos)
		args = append(args, *filter.InternshipID)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND p.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND p.date >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND p.date <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM presences p` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := presenceSelect + where + ` ORDER BY p.date DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []presence.Presence
	for rows.Next() {
		p, err := scanPresence(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// CountByStatus implements presence.PresenceRepository.
func (r *presenceRepositoryImpl) CountByStatus(ctx context.Context, internshipID string, from, to time.Time) (map[presence.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM presences
		WHERE internship_id = $1 AND date >= $2 AND date <= $3
		GROUP BY status
	`
	rows, err := q.Query(ctx, query, internshipID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[presence.Status]int)
	for rows.Next() {
		var status presence.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
