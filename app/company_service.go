package app

import (
	"context"
	"log"
	"time"

	"paysheet/adapters/excel"
	"paysheet/domain/company"
	"paysheet/domain/core"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

// CreateCompanyInput carries the fields for a new company. The salary
// sheet columns are optional; they can be set later by an explicit update
// or extracted from an uploaded template.
type CreateCompanyInput struct {
	Name               string   `json:"name"`
	GSTN               string   `json:"gstn"`
	Location           string   `json:"location"`
	Holidays           []string `json:"holidays"`
	WorkingDays        []string `json:"working_days"`
	SalarySheetColumns []string `json:"salary_sheet_columns,omitempty"`
}

// ExtractResult is the output of a salary-format extraction: the located
// columns and the captured formula templates.
type ExtractResult struct {
	Columns        []string          `json:"columns"`
	HeaderRowIndex int               `json:"header_row_index"`
	Formulas       map[string]string `json:"formula_templates"`
}

// CompanyService manages companies and their canonical salary-sheet
// schema. Extraction is stateless: templates are computed fresh on every
// call and persisted only through the explicit update operations here.
type CompanyService struct {
	companies  ports.CompanyRepository
	extraction excel.ExtractionConfig
}

// NewCompanyService creates a new company service
func NewCompanyService(companies ports.CompanyRepository) *CompanyService {
	return &CompanyService{
		companies:  companies,
		extraction: excel.DefaultExtractionConfig(),
	}
}

// Create stores a new company
func (s *CompanyService) Create(ctx context.Context, input CreateCompanyInput) (*company.Company, error) {
	if input.Name == "" {
		return nil, apperr.InvalidInput("company name is required")
	}

	now := time.Now()
	c := &company.Company{
		ID:                  core.CompanyID(core.NewID()),
		Name:                input.Name,
		GSTN:                input.GSTN,
		Location:            input.Location,
		Holidays:            input.Holidays,
		WorkingDays:         input.WorkingDays,
		SalarySheetColumns:  input.SalarySheetColumns,
		SalarySheetFormulas: map[string]string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get fetches a company by ID
func (s *CompanyService) Get(ctx context.Context, id core.CompanyID) (*company.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// UpdateSalaryFormat replaces the company's canonical column list
func (s *CompanyService) UpdateSalaryFormat(ctx context.Context, id core.CompanyID, columns []string) error {
	if len(columns) == 0 {
		return apperr.InvalidInput("salary sheet columns cannot be empty")
	}
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		return err
	}
	return s.companies.UpdateSalaryColumns(ctx, id, columns)
}

// ExtractSalaryFormat locates the header row in an uploaded template,
// captures formula templates, and persists both onto the company. A failed
// formula scan is recoverable: the schema is still updated, with an empty
// formula map.
func (s *CompanyService) ExtractSalaryFormat(ctx context.Context, id core.CompanyID, fileData []byte) (*ExtractResult, error) {
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		return nil, err
	}

	f, sheet, err := excel.Open(fileData)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := excel.LocateHeader(f, sheet, nil, s.extraction)
	if err != nil {
		return nil, err
	}

	formulas, err := excel.ExtractFormulas(f, sheet, header, s.extraction)
	if err != nil {
		log.Printf("[CompanyService] formula extraction failed for company %s, proceeding without templates: %v", id, err)
		formulas = map[string]string{}
	}

	if err := s.companies.UpdateSalaryFormat(ctx, id, header.Columns, formulas); err != nil {
		return nil, err
	}

	return &ExtractResult{
		Columns:        header.Columns,
		HeaderRowIndex: header.RowIndex,
		Formulas:       formulas,
	}, nil
}

// ImportFormulaTemplates captures formulas from a sheet whose headers may
// differ from the canonical names, mapping them onto the company's
// expected columns before persisting.
func (s *CompanyService) ImportFormulaTemplates(ctx context.Context, id core.CompanyID, fileData []byte) (map[string]string, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(c.SalarySheetColumns) == 0 {
		return nil, apperr.InvalidInput("company has no salary sheet columns configured")
	}

	f, sheet, err := excel.Open(fileData)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	formulas, err := excel.ExtractMappedFormulas(f, sheet, c.SalarySheetColumns, s.extraction)
	if err != nil {
		return nil, err
	}

	if err := s.companies.UpdateSalaryFormulas(ctx, id, formulas); err != nil {
		return nil, err
	}
	return formulas, nil
}

// BlankTemplate renders an empty upload template for the company's
// canonical columns.
func (s *CompanyService) BlankTemplate(ctx context.Context, id core.CompanyID) ([]byte, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(c.SalarySheetColumns) == 0 {
		return nil, apperr.InvalidInput("company has no salary sheet columns configured")
	}
	return excel.GenerateBlankTemplate(c.SalarySheetColumns)
}

// SampleTemplate renders a template pre-filled with example rows.
func (s *CompanyService) SampleTemplate(ctx context.Context, id core.CompanyID) ([]byte, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(c.SalarySheetColumns) == 0 {
		return nil, apperr.InvalidInput("company has no salary sheet columns configured")
	}
	return excel.GenerateSampleTemplate(c.SalarySheetColumns, c.Name)
}
