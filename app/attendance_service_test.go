package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paysheet/domain/attendance"
	"paysheet/domain/core"
	"paysheet/domain/employee"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

func seedEmployee(t *testing.T, repo *fakeEmployeeRepo, companyID core.CompanyID) *employee.Employee {
	t.Helper()
	now := time.Now()
	emp := &employee.Employee{
		ID:        core.EmployeeID(core.NewID()),
		CompanyID: companyID,
		Data:      employee.Record{"email": "asha@example.com"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Insert(context.Background(), emp))
	return emp
}

// TestMarkUpsertsByDate tests that re-marking a date replaces, not duplicates
func TestMarkUpsertsByDate(t *testing.T) {
	companies := newFakeCompanyRepo()
	employees := newFakeEmployeeRepo()
	records := newFakeAttendanceRepo()
	svc := NewAttendanceService(companies, employees, records)

	c := seedCompany(t, companies, testColumns)
	emp := seedEmployee(t, employees, c.ID)

	_, updated, err := svc.Mark(context.Background(), c.ID, MarkAttendanceInput{
		EmployeeID: emp.ID, Date: "2026-08-03", Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	require.False(t, updated)

	_, updated, err = svc.Mark(context.Background(), c.ID, MarkAttendanceInput{
		EmployeeID: emp.ID, Date: "2026-08-03", Status: attendance.StatusHalfDay,
	})
	require.NoError(t, err)
	require.True(t, updated)

	page, err := svc.List(context.Background(), c.ID, ports.AttendanceQuery{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, attendance.StatusHalfDay, page.Records[0].Status)
}

// TestMarkReturnsStoredID tests that re-marking hands back the stored
// record's id, so follow-up updates and deletes by id resolve
func TestMarkReturnsStoredID(t *testing.T) {
	companies := newFakeCompanyRepo()
	employees := newFakeEmployeeRepo()
	records := newFakeAttendanceRepo()
	svc := NewAttendanceService(companies, employees, records)

	c := seedCompany(t, companies, testColumns)
	emp := seedEmployee(t, employees, c.ID)

	first, _, err := svc.Mark(context.Background(), c.ID, MarkAttendanceInput{
		EmployeeID: emp.ID, Date: "2026-08-03", Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	second, updated, err := svc.Mark(context.Background(), c.ID, MarkAttendanceInput{
		EmployeeID: emp.ID, Date: "2026-08-03", Status: attendance.StatusLeave,
	})
	require.NoError(t, err)
	require.True(t, updated)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.CreatedAt, second.CreatedAt)

	rec, err := svc.UpdateRecord(context.Background(), second.ID, attendance.StatusAbsent, "")
	require.NoError(t, err)
	require.Equal(t, attendance.StatusAbsent, rec.Status)

	require.NoError(t, svc.DeleteRecord(context.Background(), second.ID))
}

// TestMarkValidation tests date and status validation
func TestMarkValidation(t *testing.T) {
	companies := newFakeCompanyRepo()
	employees := newFakeEmployeeRepo()
	records := newFakeAttendanceRepo()
	svc := NewAttendanceService(companies, employees, records)

	c := seedCompany(t, companies, testColumns)
	emp := seedEmployee(t, employees, c.ID)

	_, _, err := svc.Mark(context.Background(), c.ID, MarkAttendanceInput{
		EmployeeID: emp.ID, Date: "03-08-2026", Status: attendance.StatusPresent,
	})
	require.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, _, err = svc.Mark(context.Background(), c.ID, MarkAttendanceInput{
		EmployeeID: emp.ID, Date: "2026-08-03", Status: "vacationing",
	})
	require.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, _, err = svc.Mark(context.Background(), c.ID, MarkAttendanceInput{
		EmployeeID: "missing", Date: "2026-08-03", Status: attendance.StatusPresent,
	})
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

// TestBulkMarkCollectsErrors tests that bad entries never abort the batch
func TestBulkMarkCollectsErrors(t *testing.T) {
	companies := newFakeCompanyRepo()
	employees := newFakeEmployeeRepo()
	records := newFakeAttendanceRepo()
	svc := NewAttendanceService(companies, employees, records)

	c := seedCompany(t, companies, testColumns)
	emp := seedEmployee(t, employees, c.ID)

	result, err := svc.BulkMark(context.Background(), c.ID, []MarkAttendanceInput{
		{EmployeeID: emp.ID, Date: "2026-08-03", Status: attendance.StatusPresent},
		{EmployeeID: emp.ID, Date: "not-a-date", Status: attendance.StatusPresent},
		{EmployeeID: emp.ID, Date: "2026-08-04", Status: attendance.StatusAbsent},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Inserted)
	require.Len(t, result.Errors, 1)
}

// TestSummaryCountsMissingDaysAsAbsent tests the monthly rollup
func TestSummaryCountsMissingDaysAsAbsent(t *testing.T) {
	companies := newFakeCompanyRepo()
	employees := newFakeEmployeeRepo()
	records := newFakeAttendanceRepo()
	svc := NewAttendanceService(companies, employees, records)

	c := seedCompany(t, companies, testColumns)
	emp := seedEmployee(t, employees, c.ID)

	marks := []MarkAttendanceInput{
		{EmployeeID: emp.ID, Date: "2026-02-02", Status: attendance.StatusPresent},
		{EmployeeID: emp.ID, Date: "2026-02-03", Status: attendance.StatusPresent},
		{EmployeeID: emp.ID, Date: "2026-02-04", Status: attendance.StatusHalfDay},
		{EmployeeID: emp.ID, Date: "2026-02-05", Status: attendance.StatusLeave},
		{EmployeeID: emp.ID, Date: "2026-02-06", Status: attendance.StatusAbsent},
	}
	for _, m := range marks {
		_, _, err := svc.Mark(context.Background(), c.ID, m)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(context.Background(), c.ID, emp.ID, time.February, 2026)
	require.NoError(t, err)

	// 2026 is not a leap year: February has 28 days.
	require.Equal(t, 28, summary.TotalDays)
	require.Equal(t, 2, summary.PresentDays)
	require.Equal(t, 1, summary.HalfDays)
	require.Equal(t, 1, summary.Leaves)
	require.Equal(t, 23, summary.MissingRecords)
	require.Equal(t, 24, summary.AbsentDays)
}
