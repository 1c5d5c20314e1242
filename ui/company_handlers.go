package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"paysheet/app"
	"paysheet/domain/core"
	"paysheet/internal/apperr"
)

func companyIDParam(r *http.Request) (core.CompanyID, error) {
	id, err := core.ParseCompanyID(chi.URLParam(r, "companyID"))
	if err != nil {
		return "", apperr.InvalidInput(err.Error())
	}
	return id, nil
}

func (a *App) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var input app.CreateCompanyInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	c, err := a.companies.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (a *App) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := a.companies.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *App) handleUpdateSalaryFormat(w http.ResponseWriter, r *http.Request) {
	id, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Columns []string `json:"columns"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := a.companies.UpdateSalaryFormat(r.Context(), id, body.Columns); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"columns": body.Columns})
}

func (a *App) handleExtractSalaryFormat(w http.ResponseWriter, r *http.Request) {
	id, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := a.companies.ExtractSalaryFormat(r.Context(), id, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleImportFormulaTemplates(w http.ResponseWriter, r *http.Request) {
	id, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	formulas, err := a.companies.ImportFormulaTemplates(r.Context(), id, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"formula_templates": formulas})
}

func (a *App) handleBlankTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := a.companies.BlankTemplate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeWorkbook(w, "employee_template.xlsx", data)
}

func (a *App) handleSampleTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := a.companies.SampleTemplate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeWorkbook(w, "employee_sample_template.xlsx", data)
}
