package postgresql

import (
	"context"
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
)

type bookingStatusLogStore struct {
	*storeImpl
}

func NewBookingStatusLogStore(rootStore *storeImpl) *bookingStatusLogStore {
	return &bookingStatusLogStore{storeImpl: rootStore}
}

func (ls *bookingStatusLogStore) Create(ctx context.Context, entry *store.BookingStatusLog) error {
	result := ls.db.WithContext(ctx).Create(entry)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create booking status log entry")
	}
	return nil
}

func (ls *bookingStatusLogStore) GetByBooking(ctx context.Context, bookingID string) ([]*store.BookingStatusLog, error) {
	var entries []*store.BookingStatusLog
	err := ls.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}
