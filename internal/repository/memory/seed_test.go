package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed(t *testing.T) {
	s := NewStore()
	seed := `{
		"employees": [
			{"id": "e1", "full_name": "Nour Salem", "start_date": "2024-01-01"},
			{"id": "e2", "full_name": "Adam Fathy", "start_date": "2023-05-01", "termination_date": "2024-02-29", "employment_status": "resigned"}
		],
		"leave_records": [
			{"employee_id": "e1", "start_date": "2024-03-20", "end_date": "2024-03-21", "status": "approved", "policy_name": "Annual"}
		],
		"worklogs": [
			{"employee_id": "e1", "date": "2024-03-04", "hours": "6.5"}
		]
	}`

	require.NoError(t, LoadSeed(s, strings.NewReader(seed)))

	repo := NewEmployeeRepository(s)
	emp, err := repo.GetByID(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, employee.EmploymentStatusActive, emp.EmploymentStatus)

	employees, err := repo.ListByIDs(context.Background(), []string{"e1", "e2"})
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Adam Fathy", employees[0].FullName)

	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	employed, err := repo.ListEmployedBetween(context.Background(), march, march.AddDate(0, 1, -1))
	require.NoError(t, err)
	require.Len(t, employed, 1)
	assert.Equal(t, "e1", employed[0].ID)

	leaves, err := NewApprovedLeaveReader(s).ApprovedLeaveRecords(context.Background(), nil, march, march.AddDate(0, 1, -1))
	require.NoError(t, err)
	assert.Len(t, leaves, 1)
}

func TestLoadSeed_InvalidDate(t *testing.T) {
	err := LoadSeed(NewStore(), strings.NewReader(`{"employees":[{"id":"e1","full_name":"X","start_date":"03/01/2024"}]}`))
	assert.ErrorContains(t, err, "employees[0].start_date")
}
