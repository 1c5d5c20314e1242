package ports

import (
	"context"

	"paysheet/domain/core"
	"paysheet/domain/employee"
	"paysheet/domain/schema"
)

// EmployeeRepository persists open-shaped employee records. The record
// payload is stored as a document; canonical columns only project it at
// read/export boundaries.
type EmployeeRepository interface {
	Insert(ctx context.Context, emp *employee.Employee) error
	GetByID(ctx context.Context, companyID core.CompanyID, id core.EmployeeID) (*employee.Employee, error)
	Update(ctx context.Context, companyID core.CompanyID, id core.EmployeeID, data employee.Record) error
	Delete(ctx context.Context, companyID core.CompanyID, id core.EmployeeID) error
	// FindByEmail matches case-insensitively on the record's email field;
	// returns (nil, nil) when no record matches.
	FindByEmail(ctx context.Context, companyID core.CompanyID, email string) (*employee.Employee, error)
	// List applies the closed filter-operator set with pagination and
	// returns the page plus the total match count.
	List(ctx context.Context, companyID core.CompanyID, filters []schema.Filter, skip, limit int) ([]*employee.Employee, int, error)
	// ListAll returns every matching record, for export.
	ListAll(ctx context.Context, companyID core.CompanyID, filters []schema.Filter) ([]*employee.Employee, error)
}
