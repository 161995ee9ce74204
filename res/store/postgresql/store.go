package postgresql

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/krazyjakee/uk-booking-calendar/res/store"

	sqlCommenter "github.com/gouyelliot/gorm-sqlcommenter-plugin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type storeImpl struct {
	db *gorm.DB

	tradesmanProfileStore *tradesmanProfileStore
	workingHoursStore     *workingHoursStore
	customerStore         *customerStore
	bookingStore          *bookingStore
	bookingStatusLogStore *bookingStatusLogStore
	recurrenceRuleStore   *recurrenceRuleStore
	holidayStore          *holidayStore
}

func (sImpl *storeImpl) TradesmanProfiles() store.TradesmanProfileStore {
	return sImpl.tradesmanProfileStore
}

func (sImpl *storeImpl) WorkingHours() store.WorkingHoursStore {
	return sImpl.workingHoursStore
}

func (sImpl *storeImpl) Customers() store.CustomerStore {
	return sImpl.customerStore
}

func (sImpl *storeImpl) Bookings() store.BookingStore {
	return sImpl.bookingStore
}

func (sImpl *storeImpl) BookingStatusLog() store.BookingStatusLogStore {
	return sImpl.bookingStatusLogStore
}

func (sImpl *storeImpl) RecurrenceRules() store.RecurrenceRuleStore {
	return sImpl.recurrenceRuleStore
}

func (sImpl *storeImpl) Holidays() store.UkPublicHolidayStore {
	return sImpl.holidayStore
}

// WithinTransaction runs fn against a store bound to a single transaction.
// Nested calls reuse the outer transaction (gorm savepoints are not needed
// for this core's flat transaction scopes).
func (sImpl *storeImpl) WithinTransaction(ctx context.Context, fn func(txStore store.Store) error) error {
	return sImpl.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newStoreWithDB(tx))
	})
}

func Connect(connectionUrl string) (*storeImpl, error) {
	db, err := gorm.Open(postgres.Open(connectionUrl), &gorm.Config{TranslateError: true, PrepareStmt: false})
	if err != nil {
		return nil, err
	}

	err = db.Use(sqlCommenter.New())
	if err != nil {
		return nil, err
	}

	err = decorateDBOperationsWithAdditionalInfo(db)
	if err != nil {
		return nil, err
	}

	// Schema is managed by external migrations, including the partial unique
	// index bookings_slot_unique on (tradesman_id, date, start_time) WHERE
	// status NOT IN ('cancelled', 'no-show') that backstops slot conflicts.
	// err = db.AutoMigrate(
	// 	&store.TradesmanProfile{},
	// 	&store.WorkingHours{},
	// 	&store.Customer{},
	// 	&store.Booking{},
	// 	&store.BookingStatusLog{},
	// 	&store.RecurrenceRule{},
	// 	&store.UkPublicHoliday{},
	// )
	// if err != nil {
	// 	return nil, fmt.Errorf("failed to auto-migrate tables: %w", err)
	// }

	return newStoreWithDB(db), nil
}

func newStoreWithDB(db *gorm.DB) *storeImpl {
	s := &storeImpl{db: db}

	s.tradesmanProfileStore = NewTradesmanProfileStore(s)
	s.workingHoursStore = NewWorkingHoursStore(s)
	s.customerStore = NewCustomerStore(s)
	s.bookingStore = NewBookingStore(s)
	s.bookingStatusLogStore = NewBookingStatusLogStore(s)
	s.recurrenceRuleStore = NewRecurrenceRuleStore(s)
	s.holidayStore = NewHolidayStore(s)

	return s
}

// COMMON UTILITIES

// translateError maps gorm errors onto the store package sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrUniqueViolation
	default:
		return err
	}
}

func identifyCallee(stackDepth int) string {
	function, _, line, ok := runtime.Caller(stackDepth)
	if !ok {
		return "<missing-runtime-info>"
	}
	return fmt.Sprintf("%s:%d", runtime.FuncForPC(function).Name(), line)
}

func annotateWithInfoHook(db *gorm.DB) {
	info := identifyCallee(4) // Skip the internal gorm calls & the 2 local setup calls
	db.Clauses(sqlCommenter.NewTag("action", info))
}

func decorateDBOperationsWithAdditionalInfo(db *gorm.DB) error {
	return db.Callback().Query().Before("gorm:query").Register("store::annotate_with_info", annotateWithInfoHook)
}
