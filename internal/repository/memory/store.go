// Package memory keeps every repository in process memory. It backs the
// "memory" storage driver and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

type empDate struct {
	employeeID string
	date       string
}

type punchKey struct {
	employeeID string
	at         int64
}

// Store holds all tables. Uniqueness constraints mirror the SQL schema.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	now  func() time.Time

	punches      map[punchKey]attendance.RawPunch
	usages       map[empDate]attendance.PermissionUsage
	overrides    map[empDate]attendance.PermissionOverride
	grants       []attendance.OverrideGrant
	holidays     map[string]attendance.PublicHoliday
	wfh          map[string]attendance.WfhRecord
	ruleConfigs  map[rule.RuleType]rule.RuleConfig
	tiers        []rule.LatePenaltyTier
	settings     map[string]setting.Setting
	employees    map[string]employee.Employee
	leaveRecords []leave.LeaveRecord
	worklogs     []worklog.Worklog
}

func NewStore() *Store {
	return &Store{
		now:         time.Now,
		punches:     make(map[punchKey]attendance.RawPunch),
		usages:      make(map[empDate]attendance.PermissionUsage),
		overrides:   make(map[empDate]attendance.PermissionOverride),
		holidays:    make(map[string]attendance.PublicHoliday),
		wfh:         make(map[string]attendance.WfhRecord),
		ruleConfigs: make(map[rule.RuleType]rule.RuleConfig),
		settings:    make(map[string]setting.Setting),
		employees:   make(map[string]employee.Employee),
	}
}

// WithinTransaction serializes fn against other transactions. Individual
// repository calls stay atomic on their own.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

func NewTransactor(s *Store) database.Transactor {
	return s
}

func newID() string {
	return uuid.NewString()
}

func dateKey(t time.Time) string {
	return attendance.DateKey(t)
}

// inDateRange compares civil dates inclusively.
func inDateRange(d, from, to time.Time) bool {
	k := dateKey(d)
	return k >= dateKey(from) && k <= dateKey(to)
}

// idSet returns nil for an empty selection, meaning everyone.
func idSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func selected(set map[string]bool, id string) bool {
	return set == nil || set[id]
}
