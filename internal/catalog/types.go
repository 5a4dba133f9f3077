package catalog

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("catalog item not found")

// Item is a produce listing as published by a farmer. Prices are in minor units of
// the shop currency (paise for INR).
type Item struct {
	ID            string    `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	PriceCents    int64     `json:"price_cents" validate:"gte=0,lte=100000000"`
	Unit          string    `json:"unit" validate:"required"`
	Stock         int       `json:"stock" validate:"gte=0"`
	Organic       bool      `json:"organic"`
	FarmerID      string    `json:"farmer_id,omitempty"`
	FarmerName    string    `json:"farmer_name,omitempty"`
	Location      string    `json:"location,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	ImagePublicID string    `json:"image_public_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Filter mirrors the marketplace filters. Zero values mean "no constraint".
type Filter struct {
	Search        string
	Category      string
	MinPriceCents *int64
	MaxPriceCents *int64
	OrganicOnly   bool
	FarmerID      string
}

// Store is the read side of the product catalog. Listing CRUD lives with the
// farmer-facing service; this service only reads.
type Store interface {
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Item, int, error)
}
