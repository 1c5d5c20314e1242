package app

import (
	"context"
	"fmt"
	"time"

	"paysheet/domain/attendance"
	"paysheet/domain/core"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

const dateLayout = "2006-01-02"

var validStatuses = map[string]bool{
	attendance.StatusPresent: true,
	attendance.StatusAbsent:  true,
	attendance.StatusHalfDay: true,
	attendance.StatusLeave:   true,
}

// MarkAttendanceInput is one attendance entry to record.
type MarkAttendanceInput struct {
	EmployeeID core.EmployeeID `json:"employee_id"`
	Date       string          `json:"date"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes,omitempty"`
}

// AttendancePage is one page of an attendance listing.
type AttendancePage struct {
	Records []*attendance.Record `json:"records"`
	Total   int                  `json:"total"`
	Skip    int                  `json:"skip"`
	Limit   int                  `json:"limit"`
}

// AttendanceService records per-day attendance and computes monthly
// rollups. Marking is an upsert on (employee, date), so re-submitting a
// day replaces the earlier status instead of duplicating it.
type AttendanceService struct {
	companies  ports.CompanyRepository
	employees  ports.EmployeeRepository
	attendance ports.AttendanceRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(companies ports.CompanyRepository, employees ports.EmployeeRepository, attendance ports.AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		companies:  companies,
		employees:  employees,
		attendance: attendance,
	}
}

func validateInput(in MarkAttendanceInput) error {
	if in.EmployeeID == "" {
		return apperr.InvalidInput("employee_id is required")
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return apperr.InvalidInput(fmt.Sprintf("date %q must be formatted as YYYY-MM-DD", in.Date))
	}
	if !validStatuses[in.Status] {
		return apperr.InvalidInput(fmt.Sprintf("status %q must be one of present, absent, half-day, leave", in.Status))
	}
	return nil
}

// Mark records one employee's attendance for one date, replacing any
// existing record for that date.
func (s *AttendanceService) Mark(ctx context.Context, companyID core.CompanyID, in MarkAttendanceInput) (*attendance.Record, bool, error) {
	if err := validateInput(in); err != nil {
		return nil, false, err
	}
	if _, err := s.employees.GetByID(ctx, companyID, in.EmployeeID); err != nil {
		return nil, false, err
	}

	now := time.Now()
	rec := &attendance.Record{
		ID:         core.AttendanceID(core.NewID()),
		CompanyID:  companyID,
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		Status:     in.Status,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	updated, err := s.attendance.Upsert(ctx, rec)
	if err != nil {
		return nil, false, err
	}
	return rec, updated, nil
}

// BulkMark records a batch of attendance entries. Per-entry failures are
// collected and do not abort the batch.
func (s *AttendanceService) BulkMark(ctx context.Context, companyID core.CompanyID, inputs []MarkAttendanceInput) (*attendance.BulkResult, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	result := &attendance.BulkResult{}
	for i, in := range inputs {
		_, updated, err := s.Mark(ctx, companyID, in)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d (%s %s): %v", i+1, in.EmployeeID, in.Date, err))
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

// List returns a filtered, paginated attendance listing for a company.
func (s *AttendanceService) List(ctx context.Context, companyID core.CompanyID, q ports.AttendanceQuery) (*AttendancePage, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, err
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 || q.Limit > 500 {
		q.Limit = 50
	}
	if q.Status != "" && !validStatuses[q.Status] {
		return nil, apperr.InvalidInput(fmt.Sprintf("status %q must be one of present, absent, half-day, leave", q.Status))
	}

	records, total, err := s.attendance.List(ctx, companyID, q)
	if err != nil {
		return nil, err
	}
	return &AttendancePage{Records: records, Total: total, Skip: q.Skip, Limit: q.Limit}, nil
}

// Summary rolls up one employee's attendance for a calendar month. Days
// of the month with no record at all count as absent and are reported as
// missing records.
func (s *AttendanceService) Summary(ctx context.Context, companyID core.CompanyID, employeeID core.EmployeeID, month time.Month, year int) (*attendance.Summary, error) {
	if month < time.January || month > time.December {
		return nil, apperr.InvalidInput("month must be between 1 and 12")
	}
	if _, err := s.employees.GetByID(ctx, companyID, employeeID); err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	last := time.Date(year, month, daysInMonth, 0, 0, 0, 0, time.UTC)

	records, err := s.attendance.GetRange(ctx, companyID, employeeID,
		first.Format(dateLayout), last.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	summary := &attendance.Summary{TotalDays: daysInMonth}
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusHalfDay:
			summary.HalfDays++
		case attendance.StatusLeave:
			summary.Leaves++
		}
	}
	summary.MissingRecords = daysInMonth - len(records)
	summary.AbsentDays += summary.MissingRecords
	return summary, nil
}

// UpdateRecord changes the status and notes on an existing record.
func (s *AttendanceService) UpdateRecord(ctx context.Context, id core.AttendanceID, status, notes string) (*attendance.Record, error) {
	if !validStatuses[status] {
		return nil, apperr.InvalidInput(fmt.Sprintf("status %q must be one of present, absent, half-day, leave", status))
	}
	if err := s.attendance.Update(ctx, id, status, notes); err != nil {
		return nil, err
	}
	return s.attendance.GetByID(ctx, id)
}

// DeleteRecord removes an attendance record
func (s *AttendanceService) DeleteRecord(ctx context.Context, id core.AttendanceID) error {
	return s.attendance.Delete(ctx, id)
}
