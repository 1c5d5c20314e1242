package ui

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"paysheet/app"
	"paysheet/domain/core"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

func attendanceIDParam(r *http.Request) (core.AttendanceID, error) {
	id, err := core.ParseAttendanceID(chi.URLParam(r, "recordID"))
	if err != nil {
		return "", apperr.InvalidInput(err.Error())
	}
	return id, nil
}

func (a *App) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID string `json:"company_id"`
		app.MarkAttendanceInput
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

	rec, updated, err := a.attendance.Mark(r.Context(), companyID, body.MarkAttendanceInput)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if updated {
		status = http.StatusOK
	}
	writeJSON(w, status, rec)
}

func (a *App) handleBulkMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID string                    `json:"company_id"`
		Records   []app.MarkAttendanceInput `json:"records"`
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

	result, err := a.attendance.BulkMark(r.Context(), companyID, body.Records)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleListAttendance(w http.ResponseWriter, r *http.Request) {
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

	q := ports.AttendanceQuery{
		EmployeeID: core.EmployeeID(r.URL.Query().Get("employee_id")),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		Status:     r.URL.Query().Get("status"),
		Skip:       skip,
		Limit:      limit,
	}

	page, err := a.attendance.List(r.Context(), companyID, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *App) handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := a.attendance.Summary(r.Context(), companyID, employeeID, time.Month(month), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *App) handleUpdateAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := attendanceIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	rec, err := a.attendance.UpdateRecord(r.Context(), id, body.Status, body.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *App) handleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := attendanceIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := a.attendance.DeleteRecord(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}
