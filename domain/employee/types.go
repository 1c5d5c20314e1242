package employee

import (
	"time"

	"paysheet/domain/core"
)

// Record is the open mapping from storage-normalized field key to scalar
// value. Canonical columns define the projection used at read and export
// boundaries, not the storage shape: arbitrary extra fields survive
// round-trips.
type Record map[string]interface{}

// Employee is a stored employee document with its company back-reference.
type Employee struct {
	ID        core.EmployeeID `json:"id"`
	CompanyID core.CompanyID  `json:"company_id"`
	Data      Record          `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BulkUploadResult reports the outcome of a bulk upload. Per-record
// failures are collected, never fatal for the batch; rows without a
// populated email are counted as skipped, not as errors.
type BulkUploadResult struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ColumnStats summarizes one monetary column across stored records.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}
