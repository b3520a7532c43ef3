package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/permission"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
)

type permissionRepositoryImpl struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) permission.PermissionRepository {
	return &permissionRepositoryImpl{db: db}
}

const permissionSelect = `
	SELECT p.id, p.internship_id, p.type, p.title, p.reason, p.start_date, p.end_date,
		p.status, p.approved_by, p.approved_at, p.attachment_path, p.created_at, p.updated_at,
		u.full_name, u.position
	FROM permissions p
	JOIN internships i ON i.id = p.internship_id
	JOIN users u ON u.id = i.user_id`

func scanPermission(row interface{ Scan(dest ...any) error }) (*permission.Permission, error) {
	var p permission.Permission
	err := row.Scan(
		&p.ID,
		&p.InternshipID,
		&p.Type,
		&p.Title,
		&p.Reason,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.ApprovedBy,
		&p.ApprovedAt,
		&p.AttachmentPath,
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

// Create implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) Create(ctx context.Context, p *permission.Permission) error {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	query := `
		INSERT INTO permissions (id, internship_id, type, title, reason, start_date, end_date,
			status, attachment_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		id.String(), p.InternshipID, p.Type, p.Title, p.Reason, p.StartDate, p.EndDate,
		p.Status, p.AttachmentPath,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) GetByID(ctx context.Context, id string) (*permission.Permission, error) {
	q := GetQuerier(ctx, r.db)
	return scanPermission(q.QueryRow(ctx, permissionSelect+` WHERE p.id = $1`, id))
}

// List implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) List(ctx context.Context, filter permission.ListFilter) ([]permission.Permission, int, error) {
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
	if filter.Type != nil {
		where += fmt.Sprintf(" AND p.type = $%d", argPos)
		args = append(args, *filter.Type)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM permissions p` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := permissionSelect + where + ` ORDER BY p.created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []permission.Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// Update implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) Update(ctx context.Context, p *permission.Permission) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE permissions
		SET type = $1, title = $2, reason = $3, start_date = $4, end_date = $5,
			status = $6, approved_by = $7, approved_at = $8, attachment_path = $9, updated_at = NOW()
		WHERE id = $10
	`
	_, err := q.Exec(ctx, query,
		p.Type, p.Title, p.Reason, p.StartDate, p.EndDate,
		p.Status, p.ApprovedBy, p.ApprovedAt, p.AttachmentPath, p.ID,
	)
	return err
}

// Delete implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	return err
}

// FindApprovedForDate implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) FindApprovedForDate(ctx context.Context, internshipID string, day time.Time) (*permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := permissionSelect + `
		WHERE p.internship_id = $1 AND p.status = 'approved'
			AND p.start_date <= $2 AND p.end_date >= $2
		ORDER BY p.start_date
		LIMIT 1`

	p, err := scanPermission(q.QueryRow(ctx, query, internshipID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListApprovedInRange implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) ListApprovedInRange(ctx context.Context, internshipID string, start, end time.Time) ([]permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := permissionSelect + `
		WHERE p.internship_id = $1 AND p.status = 'approved'
			AND p.start_date <= $3 AND p.end_date >= $2
		ORDER BY p.start_date`

	rows, err := q.Query(ctx, query, internshipID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []permission.Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// HasOverlapping implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) HasOverlapping(ctx context.Context, internshipID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM permissions
			WHERE internship_id = $1 AND status <> 'rejected'
				AND start_date <= $3 AND end_date >= $2
				AND ($4 = '' OR id::text <> $4)
		)`

	var exists bool
	err := q.QueryRow(ctx, query, internshipID, start, end, excludeID).Scan(&exists)
	return exists, err
}
