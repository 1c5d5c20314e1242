package company

import (
	"time"

	"paysheet/domain/core"
)

// Company owns the canonical salary-sheet schema: an ordered column list
// defining both the expected upload schema and the export column order, and
// a formula map keyed by column name. Both are mutated only via explicit
// schema-update operations, never by read-only extraction calls.
type Company struct {
	ID                  core.CompanyID    `json:"id"`
	Name                string            `json:"name"`
	GSTN                string            `json:"gstn"`
	Location            string            `json:"location"`
	Holidays            []string          `json:"holidays"`
	WorkingDays         []string          `json:"working_days"`
	SalarySheetColumns  []string          `json:"salary_sheet_columns"`
	SalarySheetFormulas map[string]string `json:"salary_sheet_formulas"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}
