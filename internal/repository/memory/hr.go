package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
)

// Employees, leave and worklogs are owned by other modules. The memory store
// only reads them, so they are loaded through these Put methods.

func (s *Store) PutEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.StartDate = attendance.DateOf(e.StartDate)
	if e.TerminationDate != nil {
		t := attendance.DateOf(*e.TerminationDate)
		e.TerminationDate = &t
	}
	s.employees[e.ID] = e
}

func (s *Store) PutLeaveRecord(l leave.LeaveRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaveRecords = append(s.leaveRecords, l)
}

func (s *Store) PutWorklog(w worklog.Worklog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worklogs = append(s.worklogs, w)
}

func sortByName(employees []employee.Employee) {
	sort.Slice(employees, func(i, j int) bool {
		a, b := strings.ToLower(employees[i].FullName), strings.ToLower(employees[j].FullName)
		if a != b {
			return a < b
		}
		return employees[i].ID < employees[j].ID
	})
}

type employeeRepository struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) ListByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []employee.Employee
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if e, ok := r.s.employees[id]; ok && !seen[id] {
			seen[id] = true
			result = append(result, e)
		}
	}
	sortByName(result)
	return result, nil
}

func (r *employeeRepository) ListEmployedBetween(_ context.Context, from, to time.Time) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []employee.Employee
	for _, e := range r.s.employees {
		if e.EmployedBetween(from, to) {
			result = append(result, e)
		}
	}
	sortByName(result)
	return result, nil
}

type leaveReader struct {
	s *Store
}

func NewApprovedLeaveReader(s *Store) leave.ApprovedLeaveReader {
	return &leaveReader{s: s}
}

func (r *leaveReader) ApprovedLeaveRecords(_ context.Context, employeeIDs []string, from, to time.Time) ([]leave.LeaveRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	set := idSet(employeeIDs)
	var result []leave.LeaveRecord
	for _, l := range r.s.leaveRecords {
		if !l.IsApproved() || !selected(set, l.EmployeeID) {
			continue
		}
		if dateKey(l.EndDate) < dateKey(from) || dateKey(l.StartDate) > dateKey(to) {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

type worklogSource struct {
	s *Store
}

func NewWorklogSource(s *Store) worklog.WorklogSource {
	return &worklogSource{s: s}
}

func (r *worklogSource) ListBetween(_ context.Context, employeeIDs []string, from, to time.Time) ([]worklog.Worklog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	set := idSet(employeeIDs)
	var result []worklog.Worklog
	for _, w := range r.s.worklogs {
		if selected(set, w.EmployeeID) && inDateRange(w.Date, from, to) {
			result = append(result, w)
		}
	}
	return result, nil
}
