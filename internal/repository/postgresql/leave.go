package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/leave"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.GrantRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `id, nip, nama_lengkap, tanggal_surat, tanggal_mulai, tanggal_selesai,
	jenis_cuti, alasan, file_surat, dientri_oleh, dientri_pada`

func scanGrant(row pgx.Row) (leave.Grant, error) {
	var g leave.Grant
	err := row.Scan(
		&g.ID, &g.NIP, &g.OwnerName, &g.LetterDate, &g.StartDate, &g.EndDate,
		&g.LeaveType, &g.Reason, &g.LetterFile, &g.EnteredBy, &g.EnteredAt,
	)
	return g, err
}

// Create implements leave.GrantRepository.
func (r *leaveRepository) Create(ctx context.Context, g leave.Grant) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cuti_dosen (id, nip, nama_lengkap, tanggal_surat, tanggal_mulai, tanggal_selesai,
			jenis_cuti, alasan, file_surat, dientri_oleh, dientri_pada)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		g.ID, g.NIP, g.OwnerName, g.LetterDate, g.StartDate, g.EndDate,
		g.LeaveType, g.Reason, g.LetterFile, g.EnteredBy, g.EnteredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create leave grant: %w", err)
	}

	return nil
}

// ListByOwner implements leave.GrantRepository.
func (r *leaveRepository) ListByOwner(ctx context.Context, nip string) ([]leave.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM cuti_dosen WHERE nip = $1 ORDER BY tanggal_mulai DESC`, leaveColumns)

	rows, err := q.Query(ctx, query, nip)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants by owner: %w", err)
	}
	defer rows.Close()

	return collectGrants(rows)
}

// List implements leave.GrantRepository.
func (r *leaveRepository) List(ctx context.Context) ([]leave.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM cuti_dosen ORDER BY dientri_pada DESC`, leaveColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}
	defer rows.Close()

	return collectGrants(rows)
}

func collectGrants(rows pgx.Rows) ([]leave.Grant, error) {
	var result []leave.Grant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave grant row: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave grant rows: %w", err)
	}
	return result, nil
}
