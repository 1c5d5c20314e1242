package app

import (
	"context"
	"sort"
	"strings"

	"paysheet/domain/attendance"
	"paysheet/domain/company"
	"paysheet/domain/core"
	"paysheet/domain/employee"
	"paysheet/domain/schema"
	"paysheet/internal/apperr"
	"paysheet/ports"
)

// In-memory repository fakes for service tests.

type fakeCompanyRepo struct {
	companies map[core.CompanyID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[core.CompanyID]*company.Company{}}
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *company.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id core.CompanyID) (*company.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, apperr.NotFound("company")
	}
	return c, nil
}

func (r *fakeCompanyRepo) UpdateSalaryColumns(_ context.Context, id core.CompanyID, columns []string) error {
	c, ok := r.companies[id]
	if !ok {
		return apperr.NotFound("company")
	}
	c.SalarySheetColumns = columns
	return nil
}

func (r *fakeCompanyRepo) UpdateSalaryFormulas(_ context.Context, id core.CompanyID, formulas map[string]string) error {
	c, ok := r.companies[id]
	if !ok {
		return apperr.NotFound("company")
	}
	c.SalarySheetFormulas = formulas
	return nil
}

func (r *fakeCompanyRepo) UpdateSalaryFormat(_ context.Context, id core.CompanyID, columns []string, formulas map[string]string) error {
	if err := r.UpdateSalaryColumns(context.Background(), id, columns); err != nil {
		return err
	}
	return r.UpdateSalaryFormulas(context.Background(), id, formulas)
}

type fakeEmployeeRepo struct {
	employees map[core.EmployeeID]*employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[core.EmployeeID]*employee.Employee{}}
}

func (r *fakeEmployeeRepo) Insert(_ context.Context, emp *employee.Employee) error {
	r.employees[emp.ID] = emp
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, companyID core.CompanyID, id core.EmployeeID) (*employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok || emp.CompanyID != companyID {
		return nil, apperr.NotFound("employee")
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, companyID core.CompanyID, id core.EmployeeID, data employee.Record) error {
	emp, ok := r.employees[id]
	if !ok || emp.CompanyID != companyID {
		return apperr.NotFound("employee")
	}
	emp.Data = data
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, companyID core.CompanyID, id core.EmployeeID) error {
	emp, ok := r.employees[id]
	if !ok || emp.CompanyID != companyID {
		return apperr.NotFound("employee")
	}
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) FindByEmail(_ context.Context, companyID core.CompanyID, email string) (*employee.Employee, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, emp := range r.employees {
		if emp.CompanyID != companyID {
			continue
		}
		stored, _ := emp.Data["email"].(string)
		if strings.ToLower(strings.TrimSpace(stored)) == needle {
			return emp, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) all(companyID core.CompanyID) []*employee.Employee {
	var out []*employee.Employee
	for _, emp := range r.employees {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeEmployeeRepo) List(_ context.Context, companyID core.CompanyID, _ []schema.Filter, skip, limit int) ([]*employee.Employee, int, error) {
	all := r.all(companyID)
	total := len(all)
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (r *fakeEmployeeRepo) ListAll(_ context.Context, companyID core.CompanyID, _ []schema.Filter) ([]*employee.Employee, error) {
	return r.all(companyID), nil
}

type fakeAttendanceRepo struct {
	records map[core.AttendanceID]*attendance.Record
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[core.AttendanceID]*attendance.Record{}}
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, rec *attendance.Record) (bool, error) {
	for _, existing := range r.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Date == rec.Date {
			existing.Status = rec.Status
			existing.Notes = rec.Notes
			existing.UpdatedAt = rec.UpdatedAt
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			return true, nil
		}
	}
	r.records[rec.ID] = rec
	return false, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id core.AttendanceID) (*attendance.Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, apperr.NotFound("attendance record")
	}
	return rec, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, id core.AttendanceID, status, notes string) error {
	rec, ok := r.records[id]
	if !ok {
		return apperr.NotFound("attendance record")
	}
	rec.Status = status
	rec.Notes = notes
	return nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id core.AttendanceID) error {
	if _, ok := r.records[id]; !ok {
		return apperr.NotFound("attendance record")
	}
	delete(r.records, id)
	return nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, companyID core.CompanyID, q ports.AttendanceQuery) ([]*attendance.Record, int, error) {
	var out []*attendance.Record
	for _, rec := range r.records {
		if rec.CompanyID != companyID {
			continue
		}
		if q.EmployeeID != "" && rec.EmployeeID != q.EmployeeID {
			continue
		}
		if q.Status != "" && rec.Status != q.Status {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, len(out), nil
}

func (r *fakeAttendanceRepo) GetRange(_ context.Context, companyID core.CompanyID, employeeID core.EmployeeID, startDate, endDate string) ([]*attendance.Record, error) {
	var out []*attendance.Record
	for _, rec := range r.records {
		if rec.CompanyID != companyID || rec.EmployeeID != employeeID {
			continue
		}
		if rec.Date < startDate || rec.Date > endDate {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
