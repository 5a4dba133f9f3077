package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidState    = errors.New("checkout: operation not allowed in current step")
	ErrAlreadyComplete = errors.New("checkout: order already complete")
	ErrEmptyCart       = errors.New("checkout: cart is empty")
	ErrPaymentFailed   = errors.New("checkout: payment failed")
)

// ValidationError maps a shipping form field to its problem.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid shipping address: " + strings.Join(parts, "; ")
}

// PaymentError is returned when the payment collaborator reports a failure, either
// while creating the gateway order or through a failure callback. The session stays
// in the payment step, so the caller may retry or go back.
type PaymentError struct {
	Reason string
	Err    error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment failed: %s: %v", e.Reason, e.Err)
	}
	return "payment failed: " + e.Reason
}

func (e *PaymentError) Is(target error) bool {
	return target == ErrPaymentFailed
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
