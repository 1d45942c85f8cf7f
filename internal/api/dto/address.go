package dto

import (
	"time"

	"commute-tracker/internal/domain"
)

type AddressResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

func FromAddress(a *domain.Address) AddressResponse {
	return AddressResponse{
		ID:        a.ID,
		Kind:      string(a.Kind),
		Label:     a.Label,
		Location:  a.Location,
		CreatedAt: a.CreatedAt,
	}
}
