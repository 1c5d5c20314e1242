package attendance

import (
	"time"

	"paysheet/domain/core"
)

// Status values recognized on attendance records.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
	StatusLeave   = "leave"
)

// Record is one employee's attendance on one date. Date is stored as an
// ISO calendar date; one record exists per (company, employee, date).
type Record struct {
	ID         core.AttendanceID `json:"id"`
	CompanyID  core.CompanyID    `json:"company_id"`
	EmployeeID core.EmployeeID   `json:"employee_id"`
	Date       string            `json:"date"`
	Status     string            `json:"status"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Summary is a monthly attendance rollup. Days without any record are
// counted as absent and reported separately as missing records.
type Summary struct {
	TotalDays      int `json:"total_days"`
	PresentDays    int `json:"present_days"`
	AbsentDays     int `json:"absent_days"`
	HalfDays       int `json:"half_days"`
	Leaves         int `json:"leaves"`
	MissingRecords int `json:"missing_records"`
}

// BulkResult reports the outcome of a bulk attendance update.
type BulkResult struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Errors   []string `json:"errors"`
}
