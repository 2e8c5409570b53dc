package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, nip, tanggal, jam_masuk, jam_pulang, status, keterangan, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.NIP, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.Status, &att.Remark, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM attendance WHERE id = $1`, attendanceColumns)

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetByOwnerAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByOwnerAndDate(ctx context.Context, nip string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM attendance WHERE nip = $1 AND tanggal::date = $2::date`, attendanceColumns)

	att, err := scanAttendance(q.QueryRow(ctx, query, nip, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by owner and date: %w", err)
	}

	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (id, nip, tanggal, jam_masuk, jam_pulang, status, keterangan)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.NIP, rec.Date, rec.ClockIn, rec.ClockOut, rec.Status, rec.Remark,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return rec, nil
}

// ListByOwner implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByOwner(ctx context.Context, nip string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM attendance WHERE nip = $1 ORDER BY tanggal DESC`, attendanceColumns)

	rows, err := q.Query(ctx, query, nip)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by owner: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByOwnerAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByOwnerAndMonth(ctx context.Context, nip string, month time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance
		WHERE nip = $1 AND date_trunc('month', tanggal) = date_trunc('month', $2::timestamp)
		ORDER BY tanggal DESC
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, nip, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by owner and month: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, month time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance
		WHERE date_trunc('month', tanggal) = date_trunc('month', $1::timestamp)
		ORDER BY nip, tanggal
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by month: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// LatestMonthOf implements attendance.AttendanceRepository.
func (a *attendanceRepository) LatestMonthOf(ctx context.Context, nip string) (time.Time, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT date_trunc('month', tanggal) FROM attendance
		WHERE nip = $1
		ORDER BY tanggal DESC
		LIMIT 1
	`

	var month time.Time
	if err := q.QueryRow(ctx, query, nip).Scan(&month); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, attendance.ErrAttendanceNotFound
		}
		return time.Time{}, fmt.Errorf("failed to get latest attendance month: %w", err)
	}

	return month, nil
}

// MarkPendingApproval implements attendance.AttendanceRepository. The WHERE
// clause is the compare-and-swap leg of the duplicate-submission guard: a
// row that is already pending is never flipped twice.
func (a *attendanceRepository) MarkPendingApproval(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		  AND (status IS NULL OR (status NOT LIKE '%Pending%' AND status NOT LIKE '%Menunggu%'))
	`

	tag, err := q.Exec(ctx, query, id, attendance.StatusPendingApproval)
	if err != nil {
		return fmt.Errorf("failed to mark attendance pending: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyPending
	}

	return nil
}

// SetResolution implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetResolution(ctx context.Context, id string, status string, remark string) error {
	q := GetQuerier(ctx, a.db)

	query := `UPDATE attendance SET status = $2, keterangan = $3, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status, remark)
	if err != nil {
		return fmt.Errorf("failed to set attendance resolution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// CountApprovedAnnualLeave implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountApprovedAnnualLeave(ctx context.Context, nip string, year int) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*) FROM attendance
		WHERE nip = $1
		  AND status LIKE 'Approved%'
		  AND keterangan LIKE '%Annual Leave%'
		  AND date_part('year', tanggal) = $2
	`

	var count int
	if err := q.QueryRow(ctx, query, nip, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count approved annual leave: %w", err)
	}

	return count, nil
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}
	return result, nil
}
