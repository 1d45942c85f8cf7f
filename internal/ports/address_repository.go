package ports

import (
	"context"

	"commute-tracker/internal/domain"
)

// Persistence contract for saved addresses.
type AddressRepository interface {
	// Insert a new address and return it with its assigned ID.
	AddAddress(ctx context.Context, kind domain.Kind, label, location string) (*domain.Address, error)

	// Fetch one address by ID. Returns *domain.InvalidRouteError when
	// no such address exists.
	GetAddress(ctx context.Context, id int64) (*domain.Address, error)

	// List addresses, optionally filtered by kind (empty kind = all).
	ListAddresses(ctx context.Context, kind domain.Kind) ([]*domain.Address, error)

	// Delete an address and, by cascade, every sample referencing it.
	// Returns *domain.InvalidRouteError when no such address exists.
	DeleteAddress(ctx context.Context, id int64) error
}
