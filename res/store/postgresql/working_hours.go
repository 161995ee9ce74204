package postgresql

import (
	"context"
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"

	"gorm.io/gorm"
)

type workingHoursStore struct {
	*storeImpl
}

func NewWorkingHoursStore(rootStore *storeImpl) *workingHoursStore {
	return &workingHoursStore{storeImpl: rootStore}
}

func (ws *workingHoursStore) Create(ctx context.Context, hours *store.WorkingHours) error {
	result := ws.db.WithContext(ctx).Create(hours)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create working hours entry")
	}
	return nil
}

func (ws *workingHoursStore) GetActiveByDay(ctx context.Context, tradesmanID string, dayOfWeek int) ([]*store.WorkingHours, error) {
	var hours []*store.WorkingHours
	err := ws.db.WithContext(ctx).
		Where("tradesman_id = ?", tradesmanID).
		Where("day_of_week = ?", dayOfWeek).
		Where("is_active = ?", true).
		Order("start_time ASC").
		Find(&hours).Error
	if err != nil {
		return nil, translateError(err)
	}
	return hours, nil
}

func (ws *workingHoursStore) GetByTradesman(ctx context.Context, tradesmanID string) ([]*store.WorkingHours, error) {
	var hours []*store.WorkingHours
	err := ws.db.WithContext(ctx).
		Where("tradesman_id = ?", tradesmanID).
		Order("day_of_week ASC, start_time ASC").
		Find(&hours).Error
	if err != nil {
		return nil, translateError(err)
	}
	return hours, nil
}

func (ws *workingHoursStore) ReplaceForTradesman(ctx context.Context, tradesmanID string, hours []*store.WorkingHours) error {
	return ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tradesman_id = ?", tradesmanID).Delete(&store.WorkingHours{}).Error; err != nil {
			return translateError(err)
		}
		if len(hours) == 0 {
			return nil
		}
		if err := tx.Create(hours).Error; err != nil {
			return translateError(err)
		}
		return nil
	})
}
