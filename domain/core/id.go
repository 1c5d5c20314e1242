package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	CompanyID    ID
	EmployeeID   ID
	AttendanceID ID
)

func (id CompanyID) String() string    { return ID(id).String() }
func (id EmployeeID) String() string   { return ID(id).String() }
func (id AttendanceID) String() string { return ID(id).String() }

// ParseCompanyID parses a string into CompanyID
func ParseCompanyID(s string) (CompanyID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("company ID cannot be empty")
	}
	return CompanyID(s), nil
}

// ParseEmployeeID parses a string into EmployeeID
func ParseEmployeeID(s string) (EmployeeID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("employee ID cannot be empty")
	}
	return EmployeeID(s), nil
}

// ParseAttendanceID parses a string into AttendanceID
func ParseAttendanceID(s string) (AttendanceID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("attendance record ID cannot be empty")
	}
	return AttendanceID(s), nil
}
