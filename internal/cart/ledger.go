package cart

import (
	"fmt"
	"time"

	"kisansetu/internal/catalog"
)

// Ledger holds the lines of one shopper's cart. It performs no I/O and is not safe
// for concurrent use; the owning session serializes access.
type Ledger struct {
	lines []Line
	now   func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

func (l *Ledger) find(itemID string) int {
	for i := range l.lines {
		if l.lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// AddItem adds qty units of item. A repeated add merges into the existing line and
// keeps the price captured by the first add. A line never exceeds MaxLineQuantity;
// an add that would push it over leaves the ledger unchanged.
func (l *Ledger) AddItem(item catalog.Item, qty int) error {
	if qty < 1 || qty > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	if i := l.find(item.ID); i >= 0 {
		if l.lines[i].Quantity > MaxLineQuantity-qty {
			return fmt.Errorf("%w: %s already has %d in the cart", ErrInvalidQuantity, item.ID, l.lines[i].Quantity)
		}
		l.lines[i].Quantity += qty
		return nil
	}

	l.lines = append(l.lines, Line{
		ItemID:     item.ID,
		Name:       item.Name,
		Quantity:   qty,
		PriceCents: item.PriceCents,
		Unit:       item.Unit,
		Organic:    item.Organic,
		FarmerName: item.FarmerName,
		Location:   item.Location,
		ImageURL:   item.ImageURL,
		AddedAt:    l.now(),
	})
	return nil
}

func (l *Ledger) RemoveItem(itemID string) {
	i := l.find(itemID)
	if i < 0 {
		return
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
}

// UpdateQuantity sets the absolute quantity of an existing line; qty <= 0 removes it.
// Unknown ids and quantities above MaxLineQuantity are ignored.
func (l *Ledger) UpdateQuantity(itemID string, qty int) {
	if qty <= 0 {
		l.RemoveItem(itemID)
		return
	}
	if qty > MaxLineQuantity {
		return
	}
	if i := l.find(itemID); i >= 0 {
		l.lines[i].Quantity = qty
	}
}

func (l *Ledger) Total() int64 {
	var total int64
	for _, line := range l.lines {
		total += line.TotalCents()
	}
	return total
}

func (l *Ledger) ItemCount() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

func (l *Ledger) Clear() {
	l.lines = nil
}

func (l *Ledger) Snapshot() Snapshot {
	lines := make([]Line, len(l.lines))
	copy(lines, l.lines)

	return Snapshot{
		Lines:         lines,
		SubtotalCents: l.Total(),
		ItemCount:     l.ItemCount(),
		LineCount:     len(lines),
	}
}
