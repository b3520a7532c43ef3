package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/simagang/simagang-backend-go/internal/domain/logbook"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
)

type logbookRepositoryImpl struct {
	db *database.DB
}

func NewLogbookRepository(db *database.DB) logbook.LogbookRepository {
	return &logbookRepositoryImpl{db: db}
}

const logbookSelect = `
	SELECT l.id, l.internship_id, l.date, l.activity_detail, l.result_output,
		l.status, l.approved_by, l.approved_at, l.created_at, l.updated_at,
		u.full_name, u.position
	FROM logbooks l
	JOIN internships i ON i.id = l.internship_id
	JOIN users u ON u.id = i.user_id`

func scanLogbook(row interface{ Scan(dest ...any) error }) (*logbook.Logbook, error) {
	var l logbook.Logbook
	err := row.Scan(
		&l.ID,
		&l.InternshipID,
		&l.Date,
		&l.ActivityDetail,
		&l.ResultOutput,
		&l.Status,
		&l.ApprovedBy,
		&l.ApprovedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.UserFullName,
		&l.UserPosition,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create implements logbook.LogbookRepository. The unique (internship_id, date)
// index backs the one-entry-per-day rule.
func (r *logbookRepositoryImpl) Create(ctx context.Context, l *logbook.Logbook) error {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	query := `
		INSERT INTO logbooks (id, internship_id, date, activity_detail, result_output, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id.String(), l.InternshipID, l.Date, l.ActivityDetail, l.ResultOutput, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return logbook.ErrDuplicateDate
		}
		return err
	}
	return nil
}

// GetByID implements logbook.LogbookRepository.
func (r *logbookRepositoryImpl) GetByID(ctx context.Context, id string) (*logbook.Logbook, error) {
	q := GetQuerier(ctx, r.db)
	return scanLogbook(q.QueryRow(ctx, logbookSelect+` WHERE l.id = $1`, id))
}

// GetByDate implements logbook.LogbookRepository.
func (r *logbookRepositoryImpl) GetByDate(ctx context.Context, internshipID string, date time.Time) (*logbook.Logbook, error) {
	q := GetQuerier(ctx, r.db)
	return scanLogbook(q.QueryRow(ctx, logbookSelect+` WHERE l.internship_id = $1 AND l.date = $2`, internshipID, date))
}

// List implements logbook.LogbookRepository.
func (r *logbookRepositoryImpl) List(ctx context.Context, filter logbook.ListFilter) ([]logbook.Logbook, int, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []any{}
	argPos := 1

	if filter.InternshipID != nil {
		where += fmt.Sprintf(" AND l.internship_id = $%d", argPos)
		args = append(args, *filter.InternshipID)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND l.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND l.date >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND l.date <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM logbooks l` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := logbookSelect + where + ` ORDER BY l.date DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []logbook.Logbook
	for rows.Next() {
		l, err := scanLogbook(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *l)
	}
	return items, total, rows.Err()
}

// Update implements logbook.LogbookRepository.
func (r *logbookRepositoryImpl) Update(ctx context.Context, l *logbook.Logbook) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE logbooks
		SET date = $1, activity_detail = $2, result_output = $3, status = $4,
			approved_by = $5, approved_at = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := q.Exec(ctx, query, l.Date, l.ActivityDetail, l.ResultOutput, l.Status, l.ApprovedBy, l.ApprovedAt, l.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return logbook.ErrDuplicateDate
		}
		return err
	}
	return nil
}

// Delete implements logbook.LogbookRepository.
func (r *logbookRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM logbooks WHERE id = $1`, id)
	return err
}

// CountByStatus implements logbook.LogbookRepository.
func (r *logbookRepositoryImpl) CountByStatus(ctx context.Context, internshipID string) (*logbook.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'sent'),
			COUNT(*) FILTER (WHERE status IN ('review_mentor', 'review_kadiv')),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM logbooks
		WHERE internship_id = $1
	`

	var stats logbook.Stats
	err := q.QueryRow(ctx, query, internshipID).Scan(
		&stats.Total, &stats.Draft, &stats.Sent, &stats.InReview, &stats.Approved, &stats.Rejected,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
