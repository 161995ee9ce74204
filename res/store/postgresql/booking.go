package postgresql

import (
	"context"
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingStore struct {
	*storeImpl
}

func NewBookingStore(rootStore *storeImpl) *bookingStore {
	return &bookingStore{storeImpl: rootStore}
}

func (bs *bookingStore) Create(ctx context.Context, booking *store.Booking) error {
	result := bs.db.WithContext(ctx).Create(booking)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create booking")
	}
	return nil
}

func (bs *bookingStore) Get(ctx context.Context, id string) (*store.Booking, error) {
	var booking store.Booking
	result := bs.db.WithContext(ctx).Where("id = ?", id).First(&booking)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	return &booking, nil
}

func (bs *bookingStore) Update(ctx context.Context, booking *store.Booking) error {
	result := bs.db.WithContext(ctx).Save(booking)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("booking not found (id: %s)", booking.ID)
	}
	return nil
}

func (bs *bookingStore) GetActiveByTradesmanAndDate(ctx context.Context, tradesmanID, date string, forUpdate bool) ([]*store.Booking, error) {
	query := bs.db.WithContext(ctx).
		Where("tradesman_id = ?", tradesmanID).
		Where("date = ?", date).
		Where("status NOT IN ?", store.InactiveStatuses).
		Order("start_time ASC")

	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var bookings []*store.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

func (bs *bookingStore) GetByTradesman(ctx context.Context, tradesmanID string, filters store.BookingFilters) ([]*store.Booking, error) {
	query := bs.db.WithContext(ctx).Where("tradesman_id = ?", tradesmanID)
	query = bs.applyFilters(query, filters)

	var bookings []*store.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

func (bs *bookingStore) GetByCustomer(ctx context.Context, customerID string, filters store.BookingFilters) ([]*store.Booking, error) {
	query := bs.db.WithContext(ctx).Where("customer_id = ?", customerID)
	query = bs.applyFilters(query, filters)

	var bookings []*store.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

func (bs *bookingStore) GetByRecurrenceGroup(ctx context.Context, groupID string) ([]*store.Booking, error) {
	var bookings []*store.Booking
	err := bs.db.WithContext(ctx).
		Where("recurrence_group_id = ?", groupID).
		Order("date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

func (bs *bookingStore) GetByMultiDayGroup(ctx context.Context, groupID string) ([]*store.Booking, error) {
	var bookings []*store.Booking
	err := bs.db.WithContext(ctx).
		Where("multi_day_group_id = ?", groupID).
		Order("multi_day_sequence ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, translateError(err)
	}
	return bookings, nil
}

// Helper method to apply filters
func (bs *bookingStore) applyFilters(query *gorm.DB, filters store.BookingFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}
	if filters.IsRecurring != nil {
		query = query.Where("is_recurring = ?", *filters.IsRecurring)
	}

	if filters.OrderBy != "" {
		query = query.Order(filters.OrderBy)
	} else {
		query = query.Order("date ASC, start_time ASC")
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	return query
}
