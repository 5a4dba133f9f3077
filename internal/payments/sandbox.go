package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SandboxAdapter is an offline gateway for local development and tests. Orders are
// fabricated locally and signatures use the same scheme as Razorpay.
type SandboxAdapter struct {
	Secret string
}

// NewSandboxAdapter signs with secret. An empty secret is replaced by a random one,
// so signatures can only come from this process.
func NewSandboxAdapter(secret string) *SandboxAdapter {
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
	}
	return &SandboxAdapter{Secret: secret}
}

func (s *SandboxAdapter) InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error) {
	if err := ctx.Err(); err != nil {
		return PaymentResponse{}, err
	}
	if req.AmountCents <= 0 {
		return PaymentResponse{}, fmt.Errorf("sandbox initiate: amount must be positive, got %d", req.AmountCents)
	}

	orderID := "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
	return PaymentResponse{
		OrderID: orderID,
		Data: map[string]string{
			"order_id": orderID,
			"amount":   strconv.FormatInt(req.AmountCents, 10),
			"currency": req.Currency,
			"receipt":  req.Receipt,
			"sandbox":  "true",
		},
	}, nil
}

func (s *SandboxAdapter) VerifyPayment(ctx context.Context, req PaymentVerifyRequest) (PaymentVerifyResponse, error) {
	if req.OrderID == "" || req.PaymentID == "" {
		return PaymentVerifyResponse{Success: false}, fmt.Errorf("sandbox verify requires order_id and payment_id")
	}
	if !validSignature(s.Secret, req.OrderID+"|"+req.PaymentID, req.Signature) {
		return PaymentVerifyResponse{Success: false, State: "signature_mismatch", ProviderRef: req.PaymentID}, ErrInvalidSignature
	}
	return PaymentVerifyResponse{Success: true, State: "captured", ProviderRef: req.PaymentID}, nil
}

// Sign returns the signature a real gateway would hand to the client for this payment.
func (s *SandboxAdapter) Sign(orderID, paymentID string) string {
	return sign(s.Secret, orderID+"|"+paymentID)
}
