package memory

import (
	"context"
	"sort"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
)

// ========================================
// PUNCHES
// ========================================

type punchRepository struct {
	s *Store
}

func NewPunchRepository(s *Store) attendance.PunchRepository {
	return &punchRepository{s: s}
}

func (r *punchRepository) insertLocked(p attendance.RawPunch) (attendance.RawPunch, bool) {
	k := punchKey{p.EmployeeID, p.PunchedAt.Truncate(time.Second).Unix()}
	if _, exists := r.s.punches[k]; exists {
		return attendance.RawPunch{}, false
	}
	p.ID = newID()
	p.PunchedAt = p.PunchedAt.Truncate(time.Second)
	p.CreatedAt = r.s.now()
	r.s.punches[k] = p
	return p, true
}

func (r *punchRepository) BulkInsert(_ context.Context, punches []attendance.RawPunch) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var inserted int64
	for _, p := range punches {
		if _, ok := r.insertLocked(p); ok {
			inserted++
		}
	}
	return inserted, nil
}

func (r *punchRepository) Create(_ context.Context, punch attendance.RawPunch) (attendance.RawPunch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created, ok := r.insertLocked(punch)
	if !ok {
		return attendance.RawPunch{}, attendance.ErrDuplicatePunch
	}
	return created, nil
}

func (r *punchRepository) ListBetween(_ context.Context, employeeIDs []string, from, to time.Time) ([]attendance.RawPunch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	set := idSet(employeeIDs)
	var result []attendance.RawPunch
	for _, p := range r.s.punches {
		if !selected(set, p.EmployeeID) {
			continue
		}
		if p.PunchedAt.Before(from) || !p.PunchedAt.Before(to) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].EmployeeID != result[j].EmployeeID {
			return result[i].EmployeeID < result[j].EmployeeID
		}
		return result[i].PunchedAt.Before(result[j].PunchedAt)
	})
	return result, nil
}

// ========================================
// PERMISSION USAGE
// ========================================

type permissionUsageRepository struct {
	s *Store
}

func NewPermissionUsageRepository(s *Store) attendance.PermissionUsageRepository {
	return &permissionUsageRepository{s: s}
}

func (r *permissionUsageRepository) Create(_ context.Context, usage attendance.PermissionUsage) (attendance.PermissionUsage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := empDate{usage.EmployeeID, dateKey(usage.Date)}
	if _, exists := r.s.usages[k]; exists {
		return attendance.PermissionUsage{}, attendance.ErrPermissionAlreadyUsed
	}
	usage.ID = newID()
	usage.Date = attendance.DateOf(usage.Date)
	usage.CreatedAt = r.s.now()
	r.s.usages[k] = usage
	return usage, nil
}

func (r *permissionUsageRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.PermissionUsage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	usage, ok := r.s.usages[empDate{employeeID, dateKey(date)}]
	if !ok {
		return attendance.PermissionUsage{}, attendance.ErrPermissionUsageNotFound
	}
	return usage, nil
}

func (r *permissionUsageRepository) Delete(_ context.Context, employeeID string, date time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := empDate{employeeID, dateKey(date)}
	if _, ok := r.s.usages[k]; !ok {
		return attendance.ErrPermissionUsageNotFound
	}
	delete(r.s.usages, k)
	return nil
}

func (r *permissionUsageRepository) ListBetween(_ context.Context, employeeIDs []string, from, to time.Time) ([]attendance.PermissionUsage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	set := idSet(employeeIDs)
	var result []attendance.PermissionUsage
	for _, u := range r.s.usages {
		if selected(set, u.EmployeeID) && inDateRange(u.Date, from, to) {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}

func (r *permissionUsageRepository) CountBetween(_ context.Context, employeeID string, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, u := range r.s.usages {
		if u.EmployeeID == employeeID && inDateRange(u.Date, from, to) {
			count++
		}
	}
	return count, nil
}

// ========================================
// PERMISSION OVERRIDES
// ========================================

// LockPeriod is a no-op: Store.WithinTransaction already runs quota checks
// one at a time.
func (r *permissionUsageRepository) LockPeriod(context.Context, string, time.Time) error {
	return nil
}

type permissionOverrideRepository struct {
	s *Store
}

func NewPermissionOverrideRepository(s *Store) attendance.PermissionOverrideRepository {
	return &permissionOverrideRepository{s: s}
}

func (r *permissionOverrideRepository) AddGrant(_ context.Context, grant attendance.OverrideGrant) (attendance.PermissionOverride, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	grant.ID = newID()
	grant.PeriodStart = attendance.DateOf(grant.PeriodStart)
	grant.GrantedAt = now
	r.s.grants = append(r.s.grants, grant)

	k := empDate{grant.EmployeeID, dateKey(grant.PeriodStart)}
	override, ok := r.s.overrides[k]
	if !ok {
		override = attendance.PermissionOverride{
			EmployeeID:  grant.EmployeeID,
			PeriodStart: grant.PeriodStart,
		}
	}
	override.ExtraPermissionsGranted += grant.Amount
	override.UpdatedAt = now
	r.s.overrides[k] = override
	return override, nil
}

func (r *permissionOverrideRepository) Get(_ context.Context, employeeID string, periodStart time.Time) (attendance.PermissionOverride, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	override, ok := r.s.overrides[empDate{employeeID, dateKey(periodStart)}]
	if !ok {
		return attendance.PermissionOverride{}, attendance.ErrPermissionOverrideNotFound
	}
	return override, nil
}

func (r *permissionOverrideRepository) ListGrants(_ context.Context, employeeID string, periodStart time.Time) ([]attendance.OverrideGrant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []attendance.OverrideGrant
	for _, g := range r.s.grants {
		if g.EmployeeID == employeeID && dateKey(g.PeriodStart) == dateKey(periodStart) {
			result = append(result, g)
		}
	}
	return result, nil
}

// ========================================
// PUBLIC HOLIDAYS
// ========================================

type holidayRepository struct {
	s *Store
}

func NewHolidayRepository(s *Store) attendance.HolidayRepository {
	return &holidayRepository{s: s}
}

func (r *holidayRepository) Create(_ context.Context, holiday attendance.PublicHoliday) (attendance.PublicHoliday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range r.s.holidays {
		if dateKey(h.Date) == dateKey(holiday.Date) {
			return attendance.PublicHoliday{}, attendance.ErrHolidayAlreadyExists
		}
	}
	holiday.ID = newID()
	holiday.Date = attendance.DateOf(holiday.Date)
	holiday.CreatedAt = r.s.now()
	r.s.holidays[holiday.ID] = holiday
	return holiday, nil
}

func (r *holidayRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.holidays[id]; !ok {
		return attendance.ErrHolidayNotFound
	}
	delete(r.s.holidays, id)
	return nil
}

func (r *holidayRepository) ListBetween(_ context.Context, from, to time.Time) ([]attendance.PublicHoliday, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []attendance.PublicHoliday
	for _, h := range r.s.holidays {
		if inDateRange(h.Date, from, to) {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// ========================================
// WFH RECORDS
// ========================================

type wfhRepository struct {
	s *Store
}

func NewWfhRepository(s *Store) attendance.WfhRepository {
	return &wfhRepository{s: s}
}

func (r *wfhRepository) Create(_ context.Context, record attendance.WfhRecord) (attendance.WfhRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, w := range r.s.wfh {
		if w.EmployeeID == record.EmployeeID && dateKey(w.Date) == dateKey(record.Date) {
			return attendance.WfhRecord{}, attendance.ErrWfhAlreadyExists
		}
	}
	record.ID = newID()
	record.Date = attendance.DateOf(record.Date)
	record.CreatedAt = r.s.now()
	r.s.wfh[record.ID] = record
	return record, nil
}

func (r *wfhRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.wfh[id]; !ok {
		return attendance.ErrWfhRecordNotFound
	}
	delete(r.s.wfh, id)
	return nil
}

func (r *wfhRepository) ListBetween(_ context.Context, employeeIDs []string, from, to time.Time) ([]attendance.WfhRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	set := idSet(employeeIDs)
	var result []attendance.WfhRecord
	for _, w := range r.s.wfh {
		if selected(set, w.EmployeeID) && inDateRange(w.Date, from, to) {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}

func (r *wfhRepository) CountBetween(_ context.Context, employeeID string, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, w := range r.s.wfh {
		if w.EmployeeID == employeeID && inDateRange(w.Date, from, to) {
			count++
		}
	}
	return count, nil
}

// LockPeriod is a no-op, see permissionUsageRepository.LockPeriod.
func (r *wfhRepository) LockPeriod(context.Context, string, time.Time) error {
	return nil
}
