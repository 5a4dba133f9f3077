package cart

import (
	"errors"
	"time"
)

// MaxLineQuantity caps the units on one line so line totals cannot overflow.
const MaxLineQuantity = 9999

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 9999")
	ErrInvalidItem     = errors.New("invalid catalog item")
)

// Line is one product in the cart. Price and display fields are copied from the
// catalog when the product is first added and are not refreshed by later adds.
type Line struct {
	ItemID     string    `json:"item_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"price_cents"`
	Unit       string    `json:"unit"`
	Organic    bool      `json:"organic"`
	FarmerName string    `json:"farmer_name,omitempty"`
	Location   string    `json:"location,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

func (l Line) TotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// Snapshot is a read-only copy of the cart. It shares no memory with the Ledger.
type Snapshot struct {
	Lines         []Line `json:"lines"`
	SubtotalCents int64  `json:"subtotal_cents"`
	ItemCount     int    `json:"item_count"` // total units, shown on the cart badge
	LineCount     int    `json:"line_count"`
}

func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}
