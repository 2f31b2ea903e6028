package customer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicateKundenNr = errors.New("kunden_nr already assigned to another customer")

	ErrUpdateConflict = errors.New("update conflict detected")
)

type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByKundenNr(ctx context.Context, kundenNr string) (*Customer, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	Delete(ctx context.Context, customerID int64) error

	AppendRemark(ctx context.Context, customerID int64, remark Remark) error

	AppendCorrespondence(ctx context.Context, customerID int64, entry Correspondence) error
}
