package postgresql

import (
	"context"
	"fmt"

	"github.com/krazyjakee/uk-booking-calendar/res/store"
)

type customerStore struct {
	*storeImpl
}

func NewCustomerStore(rootStore *storeImpl) *customerStore {
	return &customerStore{storeImpl: rootStore}
}

func (cs *customerStore) Create(ctx context.Context, customer *store.Customer) error {
	result := cs.db.WithContext(ctx).Create(customer)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create customer")
	}
	return nil
}

func (cs *customerStore) Get(ctx context.Context, id string) (*store.Customer, error) {
	var customer store.Customer
	result := cs.db.WithContext(ctx).Where("id = ?", id).First(&customer)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	return &customer, nil
}

// GetByEmail matches non-anonymised rows only; an anonymised customer must
// never be resurrected by a later booking with the same email.
func (cs *customerStore) GetByEmail(ctx context.Context, email string) (*store.Customer, error) {
	var customer store.Customer
	result := cs.db.WithContext(ctx).
		Where("email = ?", email).
		Where("is_anonymised = ?", false).
		First(&customer)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	return &customer, nil
}

func (cs *customerStore) Update(ctx context.Context, customer *store.Customer) error {
	result := cs.db.WithContext(ctx).Save(customer)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("customer not found (id: %s)", customer.ID)
	}
	return nil
}
