package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Seed is the HR snapshot loaded into a memory store at startup.
type Seed struct {
	Employees []struct {
		ID                      string  `json:"id"`
		FullName                string  `json:"full_name"`
		EmploymentStatus        string  `json:"employment_status"`
		StartDate               string  `json:"start_date"`
		TerminationDate         *string `json:"termination_date"`
		BillableHoursApplicable bool    `json:"billable_hours_applicable"`
	} `json:"employees"`
	LeaveRecords []struct {
		EmployeeID string `json:"employee_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
		Status     string `json:"status"`
		PolicyName string `json:"policy_name"`
	} `json:"leave_records"`
	Worklogs []struct {
		EmployeeID string          `json:"employee_id"`
		Date       string          `json:"date"`
		Hours      decimal.Decimal `json:"hours"`
	} `json:"worklogs"`
}

// LoadSeedFile reads a JSON seed from path into s.
func LoadSeedFile(s *Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return LoadSeed(s, f)
}

func LoadSeed(s *Store, r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("failed to decode seed: %w", err)
	}

	for i, e := range seed.Employees {
		start, err := parseSeedDate(e.StartDate)
		if err != nil {
			return fmt.Errorf("employees[%d].start_date: %w", i, err)
		}
		emp := employee.Employee{
			ID:                      e.ID,
			FullName:                e.FullName,
			EmploymentStatus:        employee.EmploymentStatus(e.EmploymentStatus),
			StartDate:               start,
			BillableHoursApplicable: e.BillableHoursApplicable,
		}
		if emp.EmploymentStatus == "" {
			emp.EmploymentStatus = employee.EmploymentStatusActive
		}
		if e.TerminationDate != nil {
			end, err := parseSeedDate(*e.TerminationDate)
			if err != nil {
				return fmt.Errorf("employees[%d].termination_date: %w", i, err)
			}
			emp.TerminationDate = &end
		}
		s.PutEmployee(emp)
	}

	for i, l := range seed.LeaveRecords {
		start, err := parseSeedDate(l.StartDate)
		if err != nil {
			return fmt.Errorf("leave_records[%d].start_date: %w", i, err)
		}
		end, err := parseSeedDate(l.EndDate)
		if err != nil {
			return fmt.Errorf("leave_records[%d].end_date: %w", i, err)
		}
		s.PutLeaveRecord(leave.LeaveRecord{
			EmployeeID: l.EmployeeID,
			StartDate:  start,
			EndDate:    end,
			Status:     leave.LeaveRequestStatus(l.Status),
			PolicyName: l.PolicyName,
		})
	}

	for i, w := range seed.Worklogs {
		date, err := parseSeedDate(w.Date)
		if err != nil {
			return fmt.Errorf("worklogs[%d].date: %w", i, err)
		}
		s.PutWorklog(worklog.Worklog{EmployeeID: w.EmployeeID, Date: date, Hours: w.Hours})
	}

	return nil
}

func parseSeedDate(s string) (time.Time, error) {
	d, ok := validator.IsValidDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}
