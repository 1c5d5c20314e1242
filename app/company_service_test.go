package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"paysheet/internal/apperr"
)

// TestExtractSalaryFormatPersists tests that extraction writes columns and templates
func TestExtractSalaryFormatPersists(t *testing.T) {
	companies := newFakeCompanyRepo()
	svc := NewCompanyService(companies)
	c := seedCompany(t, companies, nil)

	f := excelize.NewFile()
	cells := map[string]interface{}{
		"A1": "ACME SALARY SHEET",
		"A3": "Sr", "B3": "Name of Employees", "C3": "Email",
		"D3": "Basic", "E3": "HRA", "F3": "Gross Amt",
		"A4": 1, "B4": "Asha", "C4": "asha@example.com", "D4": 50000, "E4": 20000,
	}
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.SetCellFormula("Sheet1", "F4", "D4+E4"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	result, err := svc.ExtractSalaryFormat(context.Background(), c.ID, buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 2, result.HeaderRowIndex)
	require.Equal(t, []string{"Sr", "Name of Employees", "Email", "Basic", "HRA", "Gross Amt"}, result.Columns)
	require.Equal(t, "=D{row}+E{row}", result.Formulas["Gross Amt"])

	stored, err := companies.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, result.Columns, stored.SalarySheetColumns)
	require.Equal(t, result.Formulas, stored.SalarySheetFormulas)
}

// TestExtractSalaryFormatMalformed tests the unreadable-bytes failure
func TestExtractSalaryFormatMalformed(t *testing.T) {
	companies := newFakeCompanyRepo()
	svc := NewCompanyService(companies)
	c := seedCompany(t, companies, nil)

	_, err := svc.ExtractSalaryFormat(context.Background(), c.ID, []byte("junk"))
	require.Error(t, err)
	require.Equal(t, apperr.CodeMalformedWorkbook, apperr.CodeOf(err))
}

// TestTemplatesRequireColumns tests the guard on template generation
func TestTemplatesRequireColumns(t *testing.T) {
	companies := newFakeCompanyRepo()
	svc := NewCompanyService(companies)
	c := seedCompany(t, companies, nil)

	_, err := svc.BlankTemplate(context.Background(), c.ID)
	require.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	require.NoError(t, companies.UpdateSalaryColumns(context.Background(), c.ID, testColumns))

	data, err := svc.BlankTemplate(context.Background(), c.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A3")
	require.NoError(t, err)
	require.Equal(t, "Sr", got)
}
