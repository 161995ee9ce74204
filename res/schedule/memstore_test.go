package schedule

import (
	"context"
	"errors"
	"sort"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
)

// memStore is an in-memory store.Store used by the tests in this package.
// Reads and writes copy rows so callers never alias stored data, and
// WithinTransaction snapshots the whole state and restores it when the
// callback fails, matching the rollback behaviour of the real store.
type memStore struct {
	profiles  map[string]*store.TradesmanProfile // keyed by user ID
	hours     map[string]*store.WorkingHours
	customers map[string]*store.Customer
	bookings  map[string]*store.Booking
	statusLog []*store.BookingStatusLog
	rules     map[string]*store.RecurrenceRule
	holidays  map[string]*store.UkPublicHoliday

	// failBookingCreateAfter fails the Nth booking insert when positive,
	// for exercising transaction rollback.
	failBookingCreateAfter int
	bookingCreates         int

	// beforeTx runs once at the next WithinTransaction, simulating a
	// concurrent writer sneaking in between pre-check and transaction.
	beforeTx func()
}

func newMemStore() *memStore {
	return &memStore{
		profiles:  map[string]*store.TradesmanProfile{},
		hours:     map[string]*store.WorkingHours{},
		customers: map[string]*store.Customer{},
		bookings:  map[string]*store.Booking{},
		rules:     map[string]*store.RecurrenceRule{},
		holidays:  map[string]*store.UkPublicHoliday{},
	}
}

func (m *memStore) TradesmanProfiles() store.TradesmanProfileStore { return memProfileStore{m} }

func (m *memStore) WorkingHours() store.WorkingHoursStore { return memHoursStore{m} }

func (m *memStore) Customers() store.CustomerStore { return memCustomerStore{m} }

func (m *memStore) Bookings() store.BookingStore { return memBookingStore{m} }

func (m *memStore) BookingStatusLog() store.BookingStatusLogStore { return memStatusLogStore{m} }

func (m *memStore) RecurrenceRules() store.RecurrenceRuleStore { return memRuleStore{m} }

func (m *memStore) Holidays() store.UkPublicHolidayStore { return memHolidayStore{m} }

func (m *memStore) WithinTransaction(ctx context.Context, fn func(txStore store.Store) error) error {
	if m.beforeTx != nil {
		hook := m.beforeTx
		m.beforeTx = nil
		hook()
	}
	snapshot := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

type memSnapshot struct {
	profiles  map[string]*store.TradesmanProfile
	hours     map[string]*store.WorkingHours
	customers map[string]*store.Customer
	bookings  map[string]*store.Booking
	statusLog []*store.BookingStatusLog
	rules     map[string]*store.RecurrenceRule
	holidays  map[string]*store.UkPublicHoliday
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		profiles:  map[string]*store.TradesmanProfile{},
		hours:     map[string]*store.WorkingHours{},
		customers: map[string]*store.Customer{},
		bookings:  map[string]*store.Booking{},
		statusLog: append([]*store.BookingStatusLog{}, m.statusLog...),
		rules:     map[string]*store.RecurrenceRule{},
		holidays:  map[string]*store.UkPublicHoliday{},
	}
	for k, v := range m.profiles {
		s.profiles[k] = v
	}
	for k, v := range m.hours {
		s.hours[k] = v
	}
	for k, v := range m.customers {
		s.customers[k] = v
	}
	for k, v := range m.bookings {
		s.bookings[k] = v
	}
	for k, v := range m.rules {
		s.rules[k] = v
	}
	for k, v := range m.holidays {
		s.holidays[k] = v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.profiles = s.profiles
	m.hours = s.hours
	m.customers = s.customers
	m.bookings = s.bookings
	m.statusLog = s.statusLog
	m.rules = s.rules
	m.holidays = s.holidays
}

type memProfileStore struct{ m *memStore }

func (ps memProfileStore) Create(ctx context.Context, profile *store.TradesmanProfile) error {
	row := *profile
	ps.m.profiles[profile.UserID] = &row
	return nil
}

func (ps memProfileStore) GetByUserID(ctx context.Context, userID string) (*store.TradesmanProfile, error) {
	profile, ok := ps.m.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	row := *profile
	return &row, nil
}

func (ps memProfileStore) Update(ctx context.Context, profile *store.TradesmanProfile) error {
	if _, ok := ps.m.profiles[profile.UserID]; !ok {
		return store.ErrNotFound
	}
	row := *profile
	ps.m.profiles[profile.UserID] = &row
	return nil
}

type memHoursStore struct{ m *memStore }

func (hs memHoursStore) Create(ctx context.Context, hours *store.WorkingHours) error {
	row := *hours
	hs.m.hours[hours.ID] = &row
	return nil
}

func (hs memHoursStore) GetActiveByDay(ctx context.Context, tradesmanID string, dayOfWeek int) ([]*store.WorkingHours, error) {
	var result []*store.WorkingHours
	for _, h := range hs.m.hours {
		if h.TradesmanID == tradesmanID && h.DayOfWeek == dayOfWeek && h.IsActive {
			row := *h
			result = append(result, &row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (hs memHoursStore) GetByTradesman(ctx context.Context, tradesmanID string) ([]*store.WorkingHours, error) {
	var result []*store.WorkingHours
	for _, h := range hs.m.hours {
		if h.TradesmanID == tradesmanID {
			row := *h
			result = append(result, &row)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (hs memHoursStore) ReplaceForTradesman(ctx context.Context, tradesmanID string, hours []*store.WorkingHours) error {
	for id, h := range hs.m.hours {
		if h.TradesmanID == tradesmanID {
			delete(hs.m.hours, id)
		}
	}
	for _, h := range hours {
		row := *h
		hs.m.hours[h.ID] = &row
	}
	return nil
}

type memCustomerStore struct{ m *memStore }

func (cs memCustomerStore) Create(ctx context.Context, customer *store.Customer) error {
	row := *customer
	cs.m.customers[customer.ID] = &row
	return nil
}

func (cs memCustomerStore) Get(ctx context.Context, id string) (*store.Customer, error) {
	customer, ok := cs.m.customers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	row := *customer
	return &row, nil
}

func (cs memCustomerStore) GetByEmail(ctx context.Context, email string) (*store.Customer, error) {
	for _, c := range cs.m.customers {
		if c.Email == email && !c.IsAnonymised {
			row := *c
			return &row, nil
		}
	}
	return nil, store.ErrNotFound
}

func (cs memCustomerStore) Update(ctx context.Context, customer *store.Customer) error {
	if _, ok := cs.m.customers[customer.ID]; !ok {
		return store.ErrNotFound
	}
	row := *customer
	cs.m.customers[customer.ID] = &row
	return nil
}

type memBookingStore struct{ m *memStore }

func (bs memBookingStore) Create(ctx context.Context, booking *store.Booking) error {
	bs.m.bookingCreates++
	if bs.m.failBookingCreateAfter > 0 && bs.m.bookingCreates >= bs.m.failBookingCreateAfter {
		return errors.New("storage write refused")
	}
	row := *booking
	bs.m.bookings[booking.ID] = &row
	return nil
}

func (bs memBookingStore) Get(ctx context.Context, id string) (*store.Booking, error) {
	booking, ok := bs.m.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	row := *booking
	return &row, nil
}

func (bs memBookingStore) Update(ctx context.Context, booking *store.Booking) error {
	if _, ok := bs.m.bookings[booking.ID]; !ok {
		return store.ErrNotFound
	}
	row := *booking
	bs.m.bookings[booking.ID] = &row
	return nil
}

func (bs memBookingStore) GetActiveByTradesmanAndDate(ctx context.Context, tradesmanID, date string, forUpdate bool) ([]*store.Booking, error) {
	var result []*store.Booking
	for _, b := range bs.m.bookings {
		if b.TradesmanID == tradesmanID && b.Date == date && b.IsActive() {
			row := *b
			result = append(result, &row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (bs memBookingStore) GetByTradesman(ctx context.Context, tradesmanID string, filters store.BookingFilters) ([]*store.Booking, error) {
	var result []*store.Booking
	for _, b := range bs.m.bookings {
		if b.TradesmanID != tradesmanID {
			continue
		}
		if !matchesFilters(b, filters) {
			continue
		}
		row := *b
		result = append(result, &row)
	}
	sortBookings(result)
	return result, nil
}

func (bs memBookingStore) GetByCustomer(ctx context.Context, customerID string, filters store.BookingFilters) ([]*store.Booking, error) {
	var result []*store.Booking
	for _, b := range bs.m.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if !matchesFilters(b, filters) {
			continue
		}
		row := *b
		result = append(result, &row)
	}
	sortBookings(result)
	return result, nil
}

func (bs memBookingStore) GetByRecurrenceGroup(ctx context.Context, groupID string) ([]*store.Booking, error) {
	var result []*store.Booking
	for _, b := range bs.m.bookings {
		if b.RecurrenceGroupID != nil && *b.RecurrenceGroupID == groupID {
			row := *b
			result = append(result, &row)
		}
	}
	sortBookings(result)
	return result, nil
}

func (bs memBookingStore) GetByMultiDayGroup(ctx context.Context, groupID string) ([]*store.Booking, error) {
	var result []*store.Booking
	for _, b := range bs.m.bookings {
		if b.MultiDayGroupID != nil && *b.MultiDayGroupID == groupID {
			row := *b
			result = append(result, &row)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return *result[i].MultiDaySequence < *result[j].MultiDaySequence
	})
	return result, nil
}

func matchesFilters(b *store.Booking, filters store.BookingFilters) bool {
	if filters.Status != nil && b.Status != *filters.Status {
		return false
	}
	if filters.StartDate != nil && b.Date < *filters.StartDate {
		return false
	}
	if filters.EndDate != nil && b.Date > *filters.EndDate {
		return false
	}
	if filters.IsRecurring != nil && b.IsRecurring != *filters.IsRecurring {
		return false
	}
	return true
}

func sortBookings(bookings []*store.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].StartTime < bookings[j].StartTime
	})
}

type memStatusLogStore struct{ m *memStore }

func (ls memStatusLogStore) Create(ctx context.Context, entry *store.BookingStatusLog) error {
	row := *entry
	ls.m.statusLog = append(ls.m.statusLog, &row)
	return nil
}

func (ls memStatusLogStore) GetByBooking(ctx context.Context, bookingID string) ([]*store.BookingStatusLog, error) {
	var result []*store.BookingStatusLog
	for _, entry := range ls.m.statusLog {
		if entry.BookingID == bookingID {
			row := *entry
			result = append(result, &row)
		}
	}
	return result, nil
}

type memRuleStore struct{ m *memStore }

func (rs memRuleStore) Create(ctx context.Context, rule *store.RecurrenceRule) error {
	row := *rule
	rs.m.rules[rule.ID] = &row
	return nil
}

func (rs memRuleStore) Get(ctx context.Context, id string) (*store.RecurrenceRule, error) {
	rule, ok := rs.m.rules[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	row := *rule
	return &row, nil
}

func (rs memRuleStore) GetByTradesman(ctx context.Context, tradesmanID string) ([]*store.RecurrenceRule, error) {
	var result []*store.RecurrenceRule
	for _, rule := range rs.m.rules {
		if rule.TradesmanID == tradesmanID {
			row := *rule
			result = append(result, &row)
		}
	}
	return result, nil
}

type memHolidayStore struct{ m *memStore }

func (hs memHolidayStore) Create(ctx context.Context, holiday *store.UkPublicHoliday) error {
	row := *holiday
	hs.m.holidays[holiday.ID] = &row
	return nil
}

func (hs memHolidayStore) FindByDate(ctx context.Context, date string, region *store.HolidayRegion) (*store.UkPublicHoliday, error) {
	for _, h := range hs.m.holidays {
		if h.Date != date {
			continue
		}
		if region != nil && *region != store.HolidayRegionAll &&
			h.Region != *region && h.Region != store.HolidayRegionAll {
			continue
		}
		row := *h
		return &row, nil
	}
	return nil, nil
}

func (hs memHolidayStore) ListByDateRange(ctx context.Context, startDate, endDate string, region *store.HolidayRegion) ([]*store.UkPublicHoliday, error) {
	var result []*store.UkPublicHoliday
	for _, h := range hs.m.holidays {
		if h.Date < startDate || h.Date > endDate {
			continue
		}
		if region != nil && *region != store.HolidayRegionAll &&
			h.Region != *region && h.Region != store.HolidayRegionAll {
			continue
		}
		row := *h
		result = append(result, &row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (hs memHolidayStore) Delete(ctx context.Context, id string) error {
	if _, ok := hs.m.holidays[id]; !ok {
		return store.ErrNotFound
	}
	delete(hs.m.holidays, id)
	return nil
}
