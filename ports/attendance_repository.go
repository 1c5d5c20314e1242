package ports

import (
	"context"

	"paysheet/domain/attendance"
	"paysheet/domain/core"
)

// AttendanceQuery filters attendance listings. Zero values mean "no
// constraint"; dates are ISO calendar dates.
type AttendanceQuery struct {
	EmployeeID core.EmployeeID
	StartDate  string
	EndDate    string
	Status     string
	Skip       int
	Limit      int
}

// AttendanceRepository persists per-day attendance records, at most one per
// (company, employee, date).
type AttendanceRepository interface {
	// Upsert inserts or updates the record for its (employee, date) key and
	// reports whether an existing record was updated. On update rec is
	// rewritten in place with the stored row's id and creation time.
	Upsert(ctx context.Context, rec *attendance.Record) (updated bool, err error)
	GetByID(ctx context.Context, id core.AttendanceID) (*attendance.Record, error)
	Update(ctx context.Context, id core.AttendanceID, status, notes string) error
	Delete(ctx context.Context, id core.AttendanceID) error
	List(ctx context.Context, companyID core.CompanyID, q AttendanceQuery) ([]*attendance.Record, int, error)
	// GetRange returns all records for one employee between two dates
	// inclusive, for summary computation.
	GetRange(ctx context.Context, companyID core.CompanyID, employeeID core.EmployeeID, startDate, endDate string) ([]*attendance.Record, error)
}
