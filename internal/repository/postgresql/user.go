package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, full_name, email, password_hash, position, role,
		failed_login_count, locked_until, last_failed_login, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.PasswordHash,
		&u.Position,
		&u.Role,
		&u.FailedLoginCount,
		&u.LockedUntil,
		&u.LastFailedLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("generate id: %w", err)
	}

	query := `
		INSERT INTO users (id, full_name, email, password_hash, position, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns

	return scanUser(q.QueryRow(ctx, query,
		id.String(), newUser.FullName, newUser.Email, newUser.PasswordHash, newUser.Position, newUser.Role,
	))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(q.QueryRow(ctx, query, email))
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []any{}
	argPos := 1

	if filter.Role != nil {
		where += fmt.Sprintf(" AND role = $%d", argPos)
		args = append(args, *filter.Role)
		argPos++
	}
	if filter.Search != nil {
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY created_at DESC`
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

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = $1, email = $2, password_hash = $3, position = $4, role = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := q.Exec(ctx, query, u.FullName, u.Email, u.PasswordHash, u.Position, u.Role, u.ID)
	return err
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// RecordFailedLogin implements user.UserRepository. A single UPDATE so
// concurrent failed attempts never lose increments.
func (r *userRepositoryImpl) RecordFailedLogin(ctx context.Context, id string, maxFailures int, lockFor time.Duration) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET failed_login_count = failed_login_count + 1,
			last_failed_login = NOW(),
			locked_until = CASE
				WHEN failed_login_count + 1 >= $2 THEN NOW() + make_interval(secs => $3)
				ELSE locked_until
			END,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := q.Exec(ctx, query, id, maxFailures, lockFor.Seconds())
	return err
}

// ResetFailedLogin implements user.UserRepository.
func (r *userRepositoryImpl) ResetFailedLogin(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET failed_login_count = 0, locked_until = NULL, last_failed_login = NULL, updated_at = NOW()
		WHERE id = $1
	`
	_, err := q.Exec(ctx, query, id)
	return err
}
