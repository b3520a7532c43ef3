package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
)

type internshipRepositoryImpl struct {
	db *database.DB
}

func NewInternshipRepository(db *database.DB) internship.InternshipRepository {
	return &internshipRepositoryImpl{db: db}
}

const internshipSelect = `
	SELECT i.id, i.user_id, i.start_date, i.end_date, i.status, i.created_at, i.updated_at,
		u.full_name, u.email, u.position
	FROM internships i
	JOIN users u ON u.id = i.user_id`

func scanInternship(row interface{ Scan(dest ...any) error }) (internship.Internship, error) {
	var i internship.Internship
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.StartDate,
		&i.EndDate,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.UserFullName,
		&i.UserEmail,
		&i.UserPosition,
	)
	return i, err
}

// Create implements internship.InternshipRepository.
func (r *internshipRepositoryImpl) Create(ctx context.Context, i internship.Internship) (internship.Internship, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return internship.Internship{}, fmt.Errorf("generate id: %w", err)
	}

	query := `
		INSERT INTO internships (id, user_id, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query, id.String(), i.UserID, i.StartDate, i.EndDate, i.Status).
		Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return internship.Internship{}, err
	}
	return i, nil
}

// GetByID implements internship.InternshipRepository.
func (r *internshipRepositoryImpl) GetByID(ctx context.Context, id string) (internship.Internship, error) {
	q := GetQuerier(ctx, r.db)
	return scanInternship(q.QueryRow(ctx, internshipSelect+` WHERE i.id = $1`, id))
}

// GetActiveByUserID implements internship.InternshipRepository.
func (r *internshipRepositoryImpl) GetActiveByUserID(ctx context.Context, userID string) (internship.Internship, error) {
	q := GetQuerier(ctx, r.db)
	query := internshipSelect + `
		WHERE i.user_id = $1 AND i.status = 'active'
		ORDER BY i.start_date DESC
		LIMIT 1`
	return scanInternship(q.QueryRow(ctx, query, userID))
}

// List implements internship.InternshipRepository.
func (r *internshipRepositoryImpl) List(ctx context.Context, filter internship.ListFilter) ([]internship.Internship, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []any{}
	argPos := 1

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND i.user_id = $%d", argPos)
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND i.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM internships i` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := internshipSelect + where + ` ORDER BY i.start_date DESC`
	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []internship.Internship
	for rows.Next() {
		i, err := scanInternship(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, rows.Err()
}

// Update implements internship.InternshipRepository.
func (r *internshipRepositoryImpl) Update(ctx context.Context, i internship.Internship) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE internships
		SET start_date = $1, end_date = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := q.Exec(ctx, query, i.StartDate, i.EndDate, i.Status, i.ID)
	return err
}
