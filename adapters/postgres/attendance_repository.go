package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"paysheet/domain/attendance"
	"paysheet/domain/core"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

// attendanceRepository implements the AttendanceRepository interface
type attendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *sqlx.DB) ports.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert inserts or, when a record already exists for the same
// (company, employee, date), updates its status and notes. On update
// rec takes on the stored row's id and created_at.
func (r *attendanceRepository) Upsert(ctx context.Context, rec *attendance.Record) (bool, error) {
	query := `INSERT INTO attendance (
		id, company_id, employee_id, date, status, notes, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (company_id, employee_id, date)
	DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
	RETURNING id, created_at, (xmax <> 0)`

	var updated bool
	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.CompanyID, rec.EmployeeID, rec.Date, rec.Status, rec.Notes,
		rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID, &rec.CreatedAt, &updated)
	if err != nil {
		return false, fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return updated, nil
}

// GetByID retrieves a single attendance record
func (r *attendanceRepository) GetByID(ctx context.Context, id core.AttendanceID) (*attendance.Record, error) {
	query := `SELECT id, company_id, employee_id, date::text, status, COALESCE(notes, ''), created_at, updated_at
		FROM attendance WHERE id = $1`

	var rec attendance.Record
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("attendance record")
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &rec, nil
}

// Update changes the status and notes of an existing record
func (r *attendanceRepository) Update(ctx context.Context, id core.AttendanceID, status, notes string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE attendance SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		id, status, notes, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("attendance record")
	}
	return nil
}

// Delete removes an attendance record
func (r *attendanceRepository) Delete(ctx context.Context, id core.AttendanceID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("attendance record")
	}
	return nil
}

// List returns one page of matching records plus the total match count,
// newest date first
func (r *attendanceRepository) List(ctx context.Context, companyID core.CompanyID, q ports.AttendanceQuery) ([]*attendance.Record, int, error) {
	var clauses []string
	args := []interface{}{companyID}

	addClause := func(condition string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(condition, len(args)))
	}

	if q.EmployeeID != "" {
		addClause("employee_id = $%d", q.EmployeeID)
	}
	if q.StartDate != "" {
		addClause("date >= $%d", q.StartDate)
	}
	if q.EndDate != "" {
		addClause("date <= $%d", q.EndDate)
	}
	if q.Status != "" {
		addClause("status = $%d", q.Status)
	}

	where := "WHERE company_id = $1"
	if len(clauses) > 0 {
		where += " AND " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attendance "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(
		`SELECT id, company_id, employee_id, date::text, status, COALESCE(notes, ''), created_at, updated_at
		FROM attendance %s ORDER BY date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, q.Skip)

	records, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetRange returns all records for one employee between two dates inclusive
func (r *attendanceRepository) GetRange(ctx context.Context, companyID core.CompanyID, employeeID core.EmployeeID, startDate, endDate string) ([]*attendance.Record, error) {
	query := `SELECT id, company_id, employee_id, date::text, status, COALESCE(notes, ''), created_at, updated_at
		FROM attendance
		WHERE company_id = $1 AND employee_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date`

	return r.queryMany(ctx, query, companyID, employeeID, startDate, endDate)
}

func (r *attendanceRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*attendance.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]*attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}
