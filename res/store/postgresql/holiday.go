package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"

	"gorm.io/gorm"
)

type holidayStore struct {
	*storeImpl
}

func NewHolidayStore(rootStore *storeImpl) *holidayStore {
	return &holidayStore{storeImpl: rootStore}
}

func (hs *holidayStore) Create(ctx context.Context, holiday *store.UkPublicHoliday) error {
	result := hs.db.WithContext(ctx).Create(holiday)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create holiday")
	}
	return nil
}

func (hs *holidayStore) FindByDate(ctx context.Context, date string, region *store.HolidayRegion) (*store.UkPublicHoliday, error) {
	query := hs.db.WithContext(ctx).Where("date = ?", date)
	query = applyRegionFilter(query, region)

	var holiday store.UkPublicHoliday
	result := query.First(&holiday)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// A date without a holiday row is not an error
			return nil, nil
		}
		return nil, translateError(result.Error)
	}
	return &holiday, nil
}

func (hs *holidayStore) ListByDateRange(ctx context.Context, startDate, endDate string, region *store.HolidayRegion) ([]*store.UkPublicHoliday, error) {
	query := hs.db.WithContext(ctx).
		Where("date >= ?", startDate).
		Where("date <= ?", endDate).
		Order("date ASC")
	query = applyRegionFilter(query, region)

	var holidays []*store.UkPublicHoliday
	if err := query.Find(&holidays).Error; err != nil {
		return nil, translateError(err)
	}
	return holidays, nil
}

func (hs *holidayStore) Delete(ctx context.Context, id string) error {
	result := hs.db.WithContext(ctx).Delete(&store.UkPublicHoliday{ID: id})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("holiday not found (id: %s)", id)
	}
	return nil
}

// applyRegionFilter restricts to a region only when one is given; region "all"
// rows always match, and a nil region matches any row on the date.
func applyRegionFilter(query *gorm.DB, region *store.HolidayRegion) *gorm.DB {
	if region != nil && *region != store.HolidayRegionAll {
		query = query.Where("region = ? OR region = ?", *region, store.HolidayRegionAll)
	}
	return query
}
