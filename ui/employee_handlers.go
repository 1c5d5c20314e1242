package ui

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"paysheet/domain/core"
	"paysheet/internal/apperr"
)

// reservedQueryKeys are pagination and export controls, never filters.
var reservedQueryKeys = map[string]bool{
	"skip":  true,
	"limit": true,
	"month": true,
	"year":  true,
}

func employeeIDParam(r *http.Request) (core.EmployeeID, error) {
	id, err := core.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		return "", apperr.InvalidInput(err.Error())
	}
	return id, nil
}

// filterParams lifts non-reserved query params into a raw filter map.
// Numeric-looking values are converted so range operators compare as
// numbers.
func filterParams(r *http.Request) map[string]interface{} {
	raw := make(map[string]interface{})
	for key, values := range r.URL.Query() {
		if reservedQueryKeys[key] || len(values) == 0 || values[0] == "" {
			continue
		}
		if n, err := strconv.ParseFloat(values[0], 64); err == nil {
			raw[key] = n
		} else {
			raw[key] = values[0]
		}
	}
	return raw
}

func intQuery(r *http.Request, key, fallback string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		raw = fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidInput(key + " must be an integer")
	}
	return n, nil
}

func (a *App) handleUploadEmployees(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var headerRow *int
	if raw := r.FormValue("header_row"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, apperr.InvalidInput("header_row must be a non-negative integer"))
			return
		}
		headerRow = &n
	}

	result, err := a.employees.Upload(r.Context(), companyID, data, headerRow)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID string                 `json:"company_id"`
		Record    map[string]interface{} `json:"record"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	companyID, err := core.ParseCompanyID(body.CompanyID)
	if err != nil {
		writeError(w, apperr.InvalidInput(err.Error()))
		return
	}

	emp, err := a.employees.Add(r.Context(), companyID, body.Record)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, emp)
}

func (a *App) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	skip, err := intQuery(r, "skip", "0")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := intQuery(r, "limit", "50")
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := a.employees.List(r.Context(), companyID, filterParams(r), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *App) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	emp, err := a.employees.Get(r.Context(), companyID, employeeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

func (a *App) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var updates map[string]interface{}
	if err := decodeJSON(r, &updates); err != nil {
		writeError(w, err)
		return
	}

	emp, err := a.employees.UpdateRecord(r.Context(), companyID, employeeID, updates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

func (a *App) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := a.employees.Delete(r.Context(), companyID, employeeID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": employeeID.String()})
}

func (a *App) handleEmployeeStats(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := a.employees.Stats(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"columns": result})
}

func (a *App) handleExportEmployees(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	month, err := intQuery(r, "month", strconv.Itoa(int(now.Month())))
	if err != nil {
		writeError(w, err)
		return
	}
	year, err := intQuery(r, "year", strconv.Itoa(now.Year()))
	if err != nil {
		writeError(w, err)
		return
	}

	data, filename, err := a.employees.Export(r.Context(), companyID, time.Month(month), year, filterParams(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeWorkbook(w, filename, data)
}
