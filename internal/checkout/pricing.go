package checkout

import (
	"time"

	"kisansetu/internal/cart"
)

const (
	DefaultShippingFeeCents int64 = 4000
	DefaultTaxRateBPS       int64 = 500
	DefaultCurrency               = "INR"
)

// Pricing holds the order-level charges added on top of the cart subtotal.
// TaxRateBPS is in basis points (500 = 5%).
type Pricing struct {
	ShippingFeeCents int64
	TaxRateBPS       int64
	Currency         string
}

func DefaultPricing() Pricing {
	return Pricing{
		ShippingFeeCents: DefaultShippingFeeCents,
		TaxRateBPS:       DefaultTaxRateBPS,
		Currency:         DefaultCurrency,
	}
}

// OrderSummary is the value frozen when the shopper moves to payment.
type OrderSummary struct {
	Lines         []cart.Line `json:"lines"`
	SubtotalCents int64       `json:"subtotal_cents"`
	ShippingCents int64       `json:"shipping_cents"`
	TaxCents      int64       `json:"tax_cents"`
	TotalCents    int64       `json:"total_cents"`
	ItemCount     int         `json:"item_count"`
	Currency      string      `json:"currency"`
	FrozenAt      time.Time   `json:"frozen_at"`
}

// Quote prices a cart snapshot. The snapshot's lines are owned by the result.
func (p Pricing) Quote(snap cart.Snapshot, at time.Time) OrderSummary {
	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	tax := TaxCents(snap.SubtotalCents, p.TaxRateBPS)
	return OrderSummary{
		Lines:         snap.Lines,
		SubtotalCents: snap.SubtotalCents,
		ShippingCents: p.ShippingFeeCents,
		TaxCents:      tax,
		TotalCents:    snap.SubtotalCents + p.ShippingFeeCents + tax,
		ItemCount:     snap.ItemCount,
		Currency:      currency,
		FrozenAt:      at,
	}
}

// TaxCents applies a basis-point rate to a non-negative amount, rounding half up
// to the nearest minor unit.
func TaxCents(subtotal, rateBPS int64) int64 {
	if subtotal <= 0 || rateBPS <= 0 {
		return 0
	}
	return (subtotal*rateBPS + 5000) / 10000
}

func (s OrderSummary) clone() OrderSummary {
	out := s
	if s.Lines != nil {
		out.Lines = make([]cart.Line, len(s.Lines))
		copy(out.Lines, s.Lines)
	}
	return out
}
