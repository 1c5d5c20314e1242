package ports

import (
	"context"

	"paysheet/domain/company"
	"paysheet/domain/core"
)

// CompanyRepository persists companies and their canonical salary-sheet
// schema. The schema is written only through the explicit update
// operations; extraction calls never mutate it implicitly.
type CompanyRepository interface {
	Create(ctx context.Context, c *company.Company) error
	GetByID(ctx context.Context, id core.CompanyID) (*company.Company, error)
	UpdateSalaryColumns(ctx context.Context, id core.CompanyID, columns []string) error
	UpdateSalaryFormulas(ctx context.Context, id core.CompanyID, formulas map[string]string) error
	UpdateSalaryFormat(ctx context.Context, id core.CompanyID, columns []string, formulas map[string]string) error
}
