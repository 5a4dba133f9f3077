package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentManager(t *testing.T) {
	m := NewPaymentManager()
	sandbox := NewSandboxAdapter("sandbox-secret")
	m.RegisterGateway("sandbox", sandbox)
	m.RegisterGateway("razorpay", NewRazorpayAdapter("k", "s", "KisanSetu"))

	assert.Equal(t, []string{"razorpay", "sandbox"}, m.Methods())

	_, err := m.Gateway("paypal")
	assert.ErrorIs(t, err, ErrUnknownGateway)

	_, err = m.InitiatePayment(context.Background(), "paypal", PaymentRequest{AmountCents: 1})
	assert.ErrorIs(t, err, ErrUnknownGateway)

	resp, err := m.InitiatePayment(context.Background(), "sandbox", PaymentRequest{AmountCents: 23950, Currency: "INR", Receipt: "KS-1"})
	require.NoError(t, err)
	assert.Regexp(t, `^order_[0-9a-f]{14}$`, resp.OrderID)
	assert.Equal(t, "23950", resp.Data["amount"])

	res, err := m.VerifyPayment(context.Background(), "sandbox", PaymentVerifyRequest{
		OrderID:   resp.OrderID,
		PaymentID: "pay_local",
		Signature: sandbox.Sign(resp.OrderID, "pay_local"),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestSandboxRejectsForeignSignature(t *testing.T) {
	a := NewSandboxAdapter("one")
	b := NewSandboxAdapter("two")

	_, err := a.VerifyPayment(context.Background(), PaymentVerifyRequest{
		OrderID:   "order_x",
		PaymentID: "pay_x",
		Signature: b.Sign("order_x", "pay_x"),
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSandboxHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSandboxAdapter("s").InitiatePayment(ctx, PaymentRequest{AmountCents: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSandboxWithoutSecretIsNotForgeable(t *testing.T) {
	a := NewSandboxAdapter("")
	b := NewSandboxAdapter("")
	require.NotEmpty(t, a.Secret)
	assert.NotEqual(t, a.Secret, b.Secret)

	forged := sign("", "order_x|pay_x")
	_, err := a.VerifyPayment(context.Background(), PaymentVerifyRequest{
		OrderID:   "order_x",
		PaymentID: "pay_x",
		Signature: forged,
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = a.VerifyPayment(context.Background(), PaymentVerifyRequest{
		OrderID:   "order_x",
		PaymentID: "pay_x",
		Signature: a.Sign("order_x", "pay_x"),
	})
	assert.NoError(t, err)
}
