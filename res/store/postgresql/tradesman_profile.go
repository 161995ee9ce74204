package postgresql

import (
	"context"
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
)

type tradesmanProfileStore struct {
	*storeImpl
}

func NewTradesmanProfileStore(rootStore *storeImpl) *tradesmanProfileStore {
	return &tradesmanProfileStore{storeImpl: rootStore}
}

func (ps *tradesmanProfileStore) Create(ctx context.Context, profile *store.TradesmanProfile) error {
	result := ps.db.WithContext(ctx).Create(profile)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create tradesman profile")
	}
	return nil
}

func (ps *tradesmanProfileStore) GetByUserID(ctx context.Context, userID string) (*store.TradesmanProfile, error) {
	var profile store.TradesmanProfile
	result := ps.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	return &profile, nil
}

func (ps *tradesmanProfileStore) Update(ctx context.Context, profile *store.TradesmanProfile) error {
	result := ps.db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("tradesman profile not found (id: %s)", profile.ID)
	}
	return nil
}
