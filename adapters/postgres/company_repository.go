package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"paysheet/domain/company"
	"paysheet/domain/core"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

// companyRepository implements the CompanyRepository interface
type companyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *sqlx.DB) ports.CompanyRepository {
	return &companyRepository{db: db}
}

// Create inserts a new company into the database
func (r *companyRepository) Create(ctx context.Context, c *company.Company) error {
	holidaysJSON, err := json.Marshal(c.Holidays)
	if err != nil {
		return fmt.Errorf("failed to marshal holidays: %w", err)
	}
	workingDaysJSON, err := json.Marshal(c.WorkingDays)
	if err != nil {
		return fmt.Errorf("failed to marshal working days: %w", err)
	}
	columnsJSON, err := json.Marshal(c.SalarySheetColumns)
	if err != nil {
		return fmt.Errorf("failed to marshal salary sheet columns: %w", err)
	}
	formulasJSON, err := json.Marshal(c.SalarySheetFormulas)
	if err != nil {
		return fmt.Errorf("failed to marshal salary sheet formulas: %w", err)
	}

	query := `INSERT INTO companies (
		id, name, gstn, location, holidays, working_days,
		salary_sheet_columns, salary_sheet_formulas, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
	)`

	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.GSTN, c.Location, holidaysJSON, workingDaysJSON,
		columnsJSON, formulasJSON, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// GetByID retrieves a company by its ID
func (r *companyRepository) GetByID(ctx context.Context, id core.CompanyID) (*company.Company, error) {
	query := `SELECT
		id, name, gstn, location, holidays, working_days,
		salary_sheet_columns, salary_sheet_formulas, created_at, updated_at
	FROM companies WHERE id = $1`

	var c company.Company
	var holidaysJSON, workingDaysJSON, columnsJSON, formulasJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.GSTN, &c.Location, &holidaysJSON, &workingDaysJSON,
		&columnsJSON, &formulasJSON, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("company")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if err := unmarshalInto(holidaysJSON, &c.Holidays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holidays: %w", err)
	}
	if err := unmarshalInto(workingDaysJSON, &c.WorkingDays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal working days: %w", err)
	}
	if err := unmarshalInto(columnsJSON, &c.SalarySheetColumns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal salary sheet columns: %w", err)
	}
	if err := unmarshalInto(formulasJSON, &c.SalarySheetFormulas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal salary sheet formulas: %w", err)
	}

	return &c, nil
}

// UpdateSalaryColumns replaces the company's canonical column list
func (r *companyRepository) UpdateSalaryColumns(ctx context.Context, id core.CompanyID, columns []string) error {
	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to marshal salary sheet columns: %w", err)
	}
	return r.execUpdate(ctx,
		`UPDATE companies SET salary_sheet_columns = $2, updated_at = $3 WHERE id = $1`,
		id, columnsJSON, time.Now())
}

// UpdateSalaryFormulas replaces the company's formula-template map
func (r *companyRepository) UpdateSalaryFormulas(ctx context.Context, id core.CompanyID, formulas map[string]string) error {
	formulasJSON, err := json.Marshal(formulas)
	if err != nil {
		return fmt.Errorf("failed to marshal salary sheet formulas: %w", err)
	}
	return r.execUpdate(ctx,
		`UPDATE companies SET salary_sheet_formulas = $2, updated_at = $3 WHERE id = $1`,
		id, formulasJSON, time.Now())
}

// UpdateSalaryFormat replaces columns and formulas in one statement
func (r *companyRepository) UpdateSalaryFormat(ctx context.Context, id core.CompanyID, columns []string, formulas map[string]string) error {
	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to marshal salary sheet columns: %w", err)
	}
	formulasJSON, err := json.Marshal(formulas)
	if err != nil {
		return fmt.Errorf("failed to marshal salary sheet formulas: %w", err)
	}
	return r.execUpdate(ctx,
		`UPDATE companies SET salary_sheet_columns = $2, salary_sheet_formulas = $3, updated_at = $4 WHERE id = $1`,
		id, columnsJSON, formulasJSON, time.Now())
}

func (r *companyRepository) execUpdate(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("company")
	}
	return nil
}

func unmarshalInto(data []byte, target interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}
