package postgresql

import (
	"context"
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
)

type recurrenceRuleStore struct {
	*storeImpl
}

func NewRecurrenceRuleStore(rootStore *storeImpl) *recurrenceRuleStore {
	return &recurrenceRuleStore{storeImpl: rootStore}
}

func (rs *recurrenceRuleStore) Create(ctx context.Context, rule *store.RecurrenceRule) error {
	result := rs.db.WithContext(ctx).Create(rule)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create recurrence rule")
	}
	return nil
}

func (rs *recurrenceRuleStore) Get(ctx context.Context, id string) (*store.RecurrenceRule, error) {
	var rule store.RecurrenceRule
	result := rs.db.WithContext(ctx).Where("id = ?", id).First(&rule)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	return &rule, nil
}

func (rs *recurrenceRuleStore) GetByTradesman(ctx context.Context, tradesmanID string) ([]*store.RecurrenceRule, error) {
	var rules []*store.RecurrenceRule
	err := rs.db.WithContext(ctx).
		Where("tradesman_id = ?", tradesmanID).
		Order("created_at DESC").
		Find(&rules).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rules, nil
}
