package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/database"
)

type clarificationRepository struct {
	db *database.DB
}

func NewClarificationRepository(db *database.DB) clarification.ClarificationRepository {
	return &clarificationRepository{db: db}
}

const clarificationColumns = `id, attendance_id, nip_pengaju, nama_lengkap, jurusan, tanggal_klarifikasi,
	kategori_surat, jenis_surat, nip_approver_sekarang, status_final, catatan_revisi, file_bukti, tanggal_pengajuan`

func scanClarification(row pgx.Row) (clarification.Clarification, error) {
	var c clarification.Clarification
	err := row.Scan(
		&c.ID, &c.AttendanceID, &c.SubmitterNIP, &c.SubmitterName, &c.Department, &c.Date,
		&c.Category, &c.ReasonType, &c.CurrentApproverNIP, &c.Status, &c.RevisionNote,
		&c.EvidenceFile, &c.SubmittedAt,
	)
	return c, err
}

// GetByID implements clarification.ClarificationRepository.
func (r *clarificationRepository) GetByID(ctx context.Context, id string) (clarification.Clarification, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM clarifications WHERE id = $1`, clarificationColumns)

	c, err := scanClarification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clarification.Clarification{}, clarification.ErrClarificationNotFound
		}
		return clarification.Clarification{}, fmt.Errorf("failed to get clarification by id: %w", err)
	}

	return c, nil
}

// Create implements clarification.ClarificationRepository.
func (r *clarificationRepository) Create(ctx context.Context, c clarification.Clarification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clarifications (
			id, attendance_id, nip_pengaju, nama_lengkap, jurusan, tanggal_klarifikasi,
			kategori_surat, jenis_surat, nip_approver_sekarang, status_final, file_bukti, tanggal_pengajuan
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		c.ID, c.AttendanceID, c.SubmitterNIP, c.SubmitterName, c.Department, c.Date,
		c.Category, c.ReasonType, c.CurrentApproverNIP, c.Status, c.EvidenceFile, c.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clarification: %w", err)
	}

	return nil
}

// Resolve implements clarification.ClarificationRepository.
func (r *clarificationRepository) Resolve(ctx context.Context, id string, finalStatus string, revisionNote *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clarifications
		SET status_final = $2, catatan_revisi = COALESCE($3, catatan_revisi), nip_approver_sekarang = NULL
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, finalStatus, revisionNote)
	if err != nil {
		return fmt.Errorf("failed to resolve clarification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return clarification.ErrClarificationNotFound
	}

	return nil
}

// ListByApprovers implements clarification.ClarificationRepository.
func (r *clarificationRepository) ListByApprovers(ctx context.Context, approverNIPs []string, department string) ([]clarification.Clarification, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM clarifications
		WHERE nip_approver_sekarang = ANY($1)
		  AND ($2 = '' OR jurusan = $2)
		ORDER BY tanggal_pengajuan DESC
	`, clarificationColumns)

	rows, err := q.Query(ctx, query, approverNIPs, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list clarifications by approvers: %w", err)
	}
	defer rows.Close()

	return collectClarifications(rows)
}

// ListBySubmitters implements clarification.ClarificationRepository.
func (r *clarificationRepository) ListBySubmitters(ctx context.Context, nips []string) ([]clarification.Clarification, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM clarifications
		WHERE nip_pengaju = ANY($1)
		ORDER BY tanggal_pengajuan DESC
	`, clarificationColumns)

	rows, err := q.Query(ctx, query, nips)
	if err != nil {
		return nil, fmt.Errorf("failed to list clarifications by submitters: %w", err)
	}
	defer rows.Close()

	return collectClarifications(rows)
}

// ListApprovedByMonth implements clarification.ClarificationRepository.
func (r *clarificationRepository) ListApprovedByMonth(ctx context.Context, month time.Time) ([]clarification.Clarification, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM clarifications
		WHERE date_trunc('month', tanggal_klarifikasi) = date_trunc('month', $1::timestamp)
		  AND status_final LIKE 'Approved%%'
		ORDER BY tanggal_klarifikasi
	`, clarificationColumns)

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved clarifications by month: %w", err)
	}
	defer rows.Close()

	return collectClarifications(rows)
}

// CountByReasonType implements clarification.ClarificationRepository.
func (r *clarificationRepository) CountByReasonType(ctx context.Context, nip string, reasonType string, month time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM clarifications
		WHERE nip_pengaju = $1
		  AND jenis_surat = $2
		  AND date_trunc('month', tanggal_pengajuan) = date_trunc('month', $3::timestamp)
	`

	var count int
	if err := q.QueryRow(ctx, query, nip, reasonType, month).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clarifications by reason type: %w", err)
	}

	return count, nil
}

func collectClarifications(rows pgx.Rows) ([]clarification.Clarification, error) {
	var result []clarification.Clarification
	for rows.Next() {
		c, err := scanClarification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clarification row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clarification rows: %w", err)
	}
	return result, nil
}
