package checkout

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/speps/go-hashids/v2"
)

// ReceiptGenerator produces short, non-sequential-looking receipt numbers that are
// sent to the payment gateway and shown to the shopper.
type ReceiptGenerator struct {
	h   *hashids.HashID
	seq atomic.Int64
}

func NewReceiptGenerator(salt string) (*ReceiptGenerator, error) {
	if salt == "" {
		salt = uuid.NewString()
	}

	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 10

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("receipt generator: %w", err)
	}
	return &ReceiptGenerator{h: h}, nil
}

// Next returns a receipt number unique for this process.
func (g *ReceiptGenerator) Next(at time.Time) (string, error) {
	n := g.seq.Add(1)
	code, err := g.h.EncodeInt64([]int64{at.Unix(), n})
	if err != nil {
		return "", fmt.Errorf("encode receipt: %w", err)
	}
	return "KS-" + code, nil
}
