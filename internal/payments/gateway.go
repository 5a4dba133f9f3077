package payments

import (
	"context"
	"errors"
)

var (
	ErrUnknownGateway   = errors.New("gateway not registered")
	ErrInvalidSignature = errors.New("invalid payment signature")
)

// PaymentGateway defines a common interface for all payment providers
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error)
	VerifyPayment(ctx context.Context, req PaymentVerifyRequest) (PaymentVerifyResponse, error)
}
