package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"paysheet/adapters/excel"
	"paysheet/domain/company"
	"paysheet/domain/core"
	"paysheet/domain/employee"
	"paysheet/domain/schema"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

// EmployeePage is one page of a filtered employee listing.
type EmployeePage struct {
	Employees []*employee.Employee `json:"employees"`
	Total     int                  `json:"total"`
	Skip      int                  `json:"skip"`
	Limit     int                  `json:"limit"`
}

// EmployeeService handles employee records: bulk upload with
// dedup-by-email, CRUD, filtered listing, salary-sheet export and
// per-column statistics.
type EmployeeService struct {
	companies  ports.CompanyRepository
	employees  ports.EmployeeRepository
	extraction excel.ExtractionConfig
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(companies ports.CompanyRepository, employees ports.EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		companies:  companies,
		employees:  employees,
		extraction: excel.DefaultExtractionConfig(),
	}
}

func (s *EmployeeService) companyWithColumns(ctx context.Context, id core.CompanyID) (*company.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(c.SalarySheetColumns) == 0 {
		return nil, apperr.InvalidInput("company has no salary sheet columns configured")
	}
	return c, nil
}

// Upload ingests an uploaded workbook for a company. The sheet's columns
// must be a superset of the company's canonical columns and must include
// an email column; rows deduplicate against stored records by email.
// Rows without a populated email are skipped, and per-row failures are
// collected rather than aborting the batch.
func (s *EmployeeService) Upload(ctx context.Context, companyID core.CompanyID, fileData []byte, headerRow *int) (*employee.BulkUploadResult, error) {
	c, err := s.companyWithColumns(ctx, companyID)
	if err != nil {
		return nil, err
	}

	f, sheet, err := excel.Open(fileData)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := excel.ReadSheet(f, sheet, headerRow, s.extraction)
	if err != nil {
		return nil, err
	}

	if ok, missing := schema.HasRequiredColumns(data.Header.Columns, c.SalarySheetColumns); !ok {
		return nil, apperr.ColumnMismatch(c.SalarySheetColumns, data.Header.Columns, missing)
	}
	emailColumn, ok := schema.FindEmailColumn(data.Header.Columns)
	if !ok {
		return nil, apperr.MissingRequiredColumn("email")
	}

	result := &employee.BulkUploadResult{}
	for i, row := range data.Rows {
		email := stringValue(row[emailColumn])
		if email == "" {
			result.Skipped++
			continue
		}

		record := buildRecord(row, c.SalarySheetColumns)
		updated, err := s.upsertByEmail(ctx, companyID, email, record)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", i+1, email, err))
			continue
		}
		if updated {
			result.Updated++
		} else {
			result.Inserted++
		}
	}
	return result, nil
}

func (s *EmployeeService) upsertByEmail(ctx context.Context, companyID core.CompanyID, email string, record employee.Record) (bool, error) {
	existing, err := s.employees.FindByEmail(ctx, companyID, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return true, s.employees.Update(ctx, companyID, existing.ID, record)
	}

	now := time.Now()
	return false, s.employees.Insert(ctx, &employee.Employee{
		ID:        core.EmployeeID(core.NewID()),
		CompanyID: companyID,
		Data:      record,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Add stores a single employee record. Unlike bulk upload, the provided
// fields must match the company's canonical columns exactly, and the
// email must not collide with a stored record.
func (s *EmployeeService) Add(ctx context.Context, companyID core.CompanyID, raw map[string]interface{}) (*employee.Employee, error) {
	c, err := s.companyWithColumns(ctx, companyID)
	if err != nil {
		return nil, err
	}

	provided := make([]string, 0, len(raw))
	for k := range raw {
		provided = append(provided, k)
	}
	if !schema.ColumnsMatchExactly(provided, c.SalarySheetColumns) {
		_, missing := schema.HasRequiredColumns(provided, c.SalarySheetColumns)
		return nil, apperr.ColumnMismatch(c.SalarySheetColumns, provided, missing)
	}

	emailColumn, ok := schema.FindEmailColumn(provided)
	if !ok {
		return nil, apperr.MissingRequiredColumn("email")
	}
	email := stringValue(raw[emailColumn])
	if email == "" {
		return nil, apperr.InvalidInput("email cannot be empty")
	}

	existing, err := s.employees.FindByEmail(ctx, companyID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("employee with email %s already exists", email))
	}

	now := time.Now()
	emp := &employee.Employee{
		ID:        core.EmployeeID(core.NewID()),
		CompanyID: companyID,
		Data:      buildRecord(raw, c.SalarySheetColumns),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.employees.Insert(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Get fetches one employee, with output values cleaned for JSON.
func (s *EmployeeService) Get(ctx context.Context, companyID core.CompanyID, id core.EmployeeID) (*employee.Employee, error) {
	emp, err := s.employees.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	emp.Data = schema.CleanRecord(emp.Data)
	return emp, nil
}

// List returns a filtered, paginated page of employees. Filters follow
// the suffix convention (_contains, _gte, _lte, text_search).
func (s *EmployeeService) List(ctx context.Context, companyID core.CompanyID, rawFilters map[string]interface{}, skip, limit int) (*EmployeePage, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, err
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	filters := schema.ParseFilters(rawFilters)
	employees, total, err := s.employees.List(ctx, companyID, filters, skip, limit)
	if err != nil {
		return nil, err
	}
	for _, emp := range employees {
		emp.Data = schema.CleanRecord(emp.Data)
	}
	return &EmployeePage{Employees: employees, Total: total, Skip: skip, Limit: limit}, nil
}

// UpdateRecord overlays the provided fields onto a stored record.
// Attendance-only fields are rejected; unknown extra fields are kept.
func (s *EmployeeService) UpdateRecord(ctx context.Context, companyID core.CompanyID, id core.EmployeeID, updates map[string]interface{}) (*employee.Employee, error) {
	emp, err := s.employees.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	for k, v := range updates {
		if schema.IsAttendanceOnlyColumn(k) {
			return nil, apperr.InvalidInput(fmt.Sprintf("field %q belongs to attendance records", k))
		}
		emp.Data[schema.NormalizeForStorage(k)] = schema.CleanValue(v)
	}

	if err := s.employees.Update(ctx, companyID, id, emp.Data); err != nil {
		return nil, err
	}
	return s.Get(ctx, companyID, id)
}

// Delete removes an employee record
func (s *EmployeeService) Delete(ctx context.Context, companyID core.CompanyID, id core.EmployeeID) error {
	return s.employees.Delete(ctx, companyID, id)
}

// Export renders the company's salary sheet for the given month as an
// xlsx workbook. Zero stored records still produce a valid workbook with
// title, header and TOTAL rows. Returns the bytes and a download
// filename.
func (s *EmployeeService) Export(ctx context.Context, companyID core.CompanyID, month time.Month, year int, rawFilters map[string]interface{}) ([]byte, string, error) {
	c, err := s.companyWithColumns(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	if month < time.January || month > time.December {
		return nil, "", apperr.InvalidInput("month must be between 1 and 12")
	}
	if year < 1900 || year > 3000 {
		return nil, "", apperr.InvalidInput("year out of range")
	}

	employees, err := s.employees.ListAll(ctx, companyID, schema.ParseFilters(rawFilters))
	if err != nil {
		return nil, "", err
	}
	records := make([]map[string]interface{}, len(employees))
	for i, emp := range employees {
		records[i] = emp.Data
	}

	monthYear := fmt.Sprintf("%s- %02d", month.String(), year%100)
	data, err := excel.Generate(records, c.SalarySheetColumns, c.Name, monthYear, c.SalarySheetFormulas)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("employees_%s_%s_%d.xlsx", companyID, month.String(), year)
	return data, filename, nil
}

// Stats computes summary statistics over every monetary canonical column.
// Non-numeric and missing values are ignored per column.
func (s *EmployeeService) Stats(ctx context.Context, companyID core.CompanyID) ([]employee.ColumnStats, error) {
	c, err := s.companyWithColumns(ctx, companyID)
	if err != nil {
		return nil, err
	}

	employees, err := s.employees.ListAll(ctx, companyID, nil)
	if err != nil {
		return nil, err
	}

	var result []employee.ColumnStats
	for _, col := range c.SalarySheetColumns {
		if !excel.IsMonetaryColumn(col) {
			continue
		}
		key := schema.NormalizeForStorage(col)

		var values stats.Float64Data
		for _, emp := range employees {
			if n, ok := emp.Data[key].(float64); ok {
				values = append(values, n)
			}
		}
		cs := employee.ColumnStats{Column: col, Count: len(values)}
		if len(values) > 0 {
			cs.Sum, _ = stats.Sum(values)
			cs.Mean, _ = stats.Mean(values)
			cs.Median, _ = stats.Median(values)
			cs.Min, _ = stats.Min(values)
			cs.Max, _ = stats.Max(values)
			if len(values) > 1 {
				cs.StdDev = stat.StdDev(values, nil)
			}
		}
		result = append(result, cs)
	}
	return result, nil
}

// buildRecord reconciles a raw row onto the canonical columns and carries
// along any extra non-attendance fields under their normalized keys.
func buildRecord(raw map[string]interface{}, canonicalColumns []string) employee.Record {
	record := schema.ReconcileRecord(raw, canonicalColumns)
	for k, v := range raw {
		key := schema.NormalizeForStorage(k)
		if _, seen := record[key]; seen {
			continue
		}
		if schema.IsAttendanceOnlyColumn(k) {
			continue
		}
		record[key] = schema.CleanValue(v)
	}
	return record
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}
