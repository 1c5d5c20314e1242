package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"paysheet/domain/core"
	"paysheet/domain/employee"
	"paysheet/domain/schema"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

// employeeRepository implements the EmployeeRepository interface
type employeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *sqlx.DB) ports.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Insert stores a new employee record
func (r *employeeRepository) Insert(ctx context.Context, emp *employee.Employee) error {
	dataJSON, err := json.Marshal(emp.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal employee data: %w", err)
	}

	query := `INSERT INTO employees (id, company_id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.ExecContext(ctx, query, emp.ID, emp.CompanyID, dataJSON, emp.CreatedAt, emp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// GetByID retrieves an employee scoped to its company
func (r *employeeRepository) GetByID(ctx context.Context, companyID core.CompanyID, id core.EmployeeID) (*employee.Employee, error) {
	query := `SELECT id, company_id, data, created_at, updated_at
		FROM employees WHERE company_id = $1 AND id = $2`

	emp, err := r.scanOne(r.db.QueryRowContext(ctx, query, companyID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("employee")
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// Update replaces the employee's record payload
func (r *employeeRepository) Update(ctx context.Context, companyID core.CompanyID, id core.EmployeeID, data employee.Record) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal employee data: %w", err)
	}

	query := `UPDATE employees SET data = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, companyID, id, dataJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("employee")
	}
	return nil
}

// Delete removes an employee record
func (r *employeeRepository) Delete(ctx context.Context, companyID core.CompanyID, id core.EmployeeID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM employees WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("employee")
	}
	return nil
}

// FindByEmail matches case-insensitively on the stored email field. A miss
// is (nil, nil), not an error: the upload path treats it as "insert".
func (r *employeeRepository) FindByEmail(ctx context.Context, companyID core.CompanyID, email string) (*employee.Employee, error) {
	query := `SELECT id, company_id, data, created_at, updated_at
		FROM employees
		WHERE company_id = $1 AND LOWER(TRIM(data->>'email')) = LOWER(TRIM($2))
		LIMIT 1`

	emp, err := r.scanOne(r.db.QueryRowContext(ctx, query, companyID, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find employee by email: %w", err)
	}
	return emp, nil
}

// List returns one page of matching employees plus the total match count
func (r *employeeRepository) List(ctx context.Context, companyID core.CompanyID, filters []schema.Filter, skip, limit int) ([]*employee.Employee, int, error) {
	where, args := buildFilterClauses(filters, 1)
	queryArgs := append([]interface{}{companyID}, args...)

	countQuery := `SELECT COUNT(*) FROM employees WHERE company_id = $1` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, queryArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, company_id, data, created_at, updated_at
		FROM employees WHERE company_id = $1%s
		ORDER BY created_at
		LIMIT $%d OFFSET $%d`,
		where, len(queryArgs)+1, len(queryArgs)+2)
	queryArgs = append(queryArgs, limit, skip)

	employees, err := r.queryMany(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListAll returns every matching employee, for export
func (r *employeeRepository) ListAll(ctx context.Context, companyID core.CompanyID, filters []schema.Filter) ([]*employee.Employee, error) {
	where, args := buildFilterClauses(filters, 1)
	queryArgs := append([]interface{}{companyID}, args...)

	query := `SELECT id, company_id, data, created_at, updated_at
		FROM employees WHERE company_id = $1` + where + `
		ORDER BY created_at`

	return r.queryMany(ctx, query, queryArgs...)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *employeeRepository) scanOne(row rowScanner) (*employee.Employee, error) {
	var emp employee.Employee
	var dataJSON []byte

	if err := row.Scan(&emp.ID, &emp.CompanyID, &dataJSON, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return nil, err
	}
	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &emp.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal employee data: %w", err)
		}
	}
	return &emp, nil
}

func (r *employeeRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*employee.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}
