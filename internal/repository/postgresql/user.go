package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `nip, password, nama_lengkap, jurusan, detail_jurusan, role, id_atasan,
	jatah_cuti_tahunan, push_subscription_info, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.NIP, &u.Password, &u.FullName, &u.Department, &u.DepartmentDetail, &u.Role,
		&u.SuperiorNIP, &u.AnnualLeaveDays, &u.PushSubscription, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetByNIP implements user.UserRepository.
func (r *userRepository) GetByNIP(ctx context.Context, nip string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE nip = $1`, userColumns)

	u, err := scanUser(q.QueryRow(ctx, query, nip))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by nip: %w", err)
	}

	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (nip, password, nama_lengkap, jurusan, detail_jurusan, role, id_atasan, jatah_cuti_tahunan)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		u.NIP, u.Password, u.FullName, u.Department, u.DepartmentDetail, u.Role, u.SuperiorNIP, u.AnnualLeaveDays,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrNIPExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// ListSubordinates implements user.UserRepository.
func (r *userRepository) ListSubordinates(ctx context.Context, superiorNIP string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id_atasan = $1 ORDER BY nama_lengkap`, userColumns)

	rows, err := q.Query(ctx, query, superiorNIP)
	if err != nil {
		return nil, fmt.Errorf("failed to list subordinates: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListByRoles implements user.UserRepository.
func (r *userRepository) ListByRoles(ctx context.Context, roles []user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	roleStrs := make([]string, len(roles))
	for i, role := range roles {
		roleStrs[i] = string(role)
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = ANY($1) ORDER BY nama_lengkap`, userColumns)

	rows, err := q.Query(ctx, query, roleStrs)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by roles: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListStaff implements user.UserRepository.
func (r *userRepository) ListStaff(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE role <> 'Admin' ORDER BY jurusan, nama_lengkap`, userColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// SetPushSubscription implements user.UserRepository.
func (r *userRepository) SetPushSubscription(ctx context.Context, nip string, subscription *string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET push_subscription_info = $2, updated_at = NOW() WHERE nip = $1`

	tag, err := q.Exec(ctx, query, nip, subscription)
	if err != nil {
		return fmt.Errorf("failed to set push subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	var result []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return result, nil
}
