package vehicle

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("vehicle not found")
)

type VehicleRepository interface {
	Save(ctx context.Context, v *Vehicle) error

	FindByID(ctx context.Context, vehicleID int64) (*Vehicle, error)

	FindAll(ctx context.Context) ([]*Vehicle, error)

	FindByCustomerID(ctx context.Context, customerID int64) ([]*Vehicle, error)

	Delete(ctx context.Context, vehicleID int64) error
}
