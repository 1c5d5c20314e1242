package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"paysheet/internal/apperr"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createCompaniesTable(ctx, db); err != nil {
		return apperr.Wrap(err, "failed to create companies table")
	}

	if err := r.createEmployeesTable(ctx, db); err != nil {
		return apperr.Wrap(err, "failed to create employees table")
	}

	if err := r.createAttendanceTable(ctx, db); err != nil {
		return apperr.Wrap(err, "failed to create attendance table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return apperr.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createCompaniesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			gstn TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			holidays JSONB NOT NULL DEFAULT '[]',
			working_days JSONB NOT NULL DEFAULT '[]',
			salary_sheet_columns JSONB NOT NULL DEFAULT '[]',
			salary_sheet_formulas JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createEmployeesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			data JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createAttendanceTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY,
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			status TEXT NOT NULL,
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (company_id, employee_id, date)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_employees_company_id ON employees(company_id)`,
		`CREATE INDEX IF NOT EXISTS idx_employees_email ON employees(company_id, LOWER(TRIM(data->>'email')))`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_company_employee ON attendance(company_id, employee_id, date)`,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return err
		}
	}
	return nil
}
