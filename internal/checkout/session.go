package checkout

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kisansetu/internal/cart"
	"kisansetu/internal/payments"
)

type Step string

const (
	StepShippingInfo Step = "shipping_info"
	StepPayment      Step = "payment"
	StepComplete     Step = "complete"
)

type PaymentStatus string

const (
	StatusNone      PaymentStatus = "none"
	StatusPending   PaymentStatus = "pending"
	StatusSucceeded PaymentStatus = "success"
	StatusFailed    PaymentStatus = "failed"
)

// Cart is the part of the cart ledger checkout reads and clears.
type Cart interface {
	Snapshot() cart.Snapshot
	Clear()
}

// PaymentInitiator creates the gateway-side order for an attempt.
type PaymentInitiator interface {
	InitiatePayment(ctx context.Context, req payments.PaymentRequest) (payments.PaymentResponse, error)
}

// PaymentAttempt is one call to the gateway for the frozen total.
type PaymentAttempt struct {
	Method          string            `json:"method"`
	Receipt         string            `json:"receipt"`
	ExternalOrderID string            `json:"external_order_id"`
	AmountCents     int64             `json:"amount_cents"`
	Currency        string            `json:"currency"`
	PaymentURL      string            `json:"payment_url,omitempty"`
	Data            map[string]string `json:"data,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (a PaymentAttempt) clone() PaymentAttempt {
	out := a
	if a.Data != nil {
		out.Data = make(map[string]string, len(a.Data))
		for k, v := range a.Data {
			out.Data[k] = v
		}
	}
	return out
}

// PaymentIntent is a gateway request prepared for the frozen total. The gateway is
// called with Request and its answer is handed back to RecordPayment.
type PaymentIntent struct {
	Method  string
	Request payments.PaymentRequest

	checkoutID string
	generation int
}

// PaymentSuccess is what the gateway reports back once the shopper has paid.
// Method, when set, must name the gateway that created the pending order.
type PaymentSuccess struct {
	Method    string
	PaymentID string
	OrderID   string
	Signature string
}

// View is a read-only copy of the session for presentation.
type View struct {
	ID                string           `json:"id"`
	Step              Step             `json:"step"`
	Address           *ShippingAddress `json:"shipping_address,omitempty"`
	Summary           *OrderSummary    `json:"summary,omitempty"`
	PaymentStatus     PaymentStatus    `json:"payment_status"`
	Attempt           *PaymentAttempt  `json:"payment,omitempty"`
	ExternalOrderID   string           `json:"external_order_id,omitempty"`
	ExternalPaymentID string           `json:"external_payment_id,omitempty"`
	FailureReason     string           `json:"failure_reason,omitempty"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
}

type Config struct {
	Pricing  Pricing
	Receipts *ReceiptGenerator
	Logger   *zap.SugaredLogger
	Now      func() time.Time
}

// Session walks one shopper through shipping, payment and completion.
// It is not safe for concurrent use; the owner serializes calls.
type Session struct {
	id       string
	cart     Cart
	pricing  Pricing
	receipts *ReceiptGenerator
	logger   *zap.SugaredLogger
	now      func() time.Time

	step        Step
	address     *ShippingAddress
	summary     *OrderSummary
	attempt     *PaymentAttempt
	status      PaymentStatus
	failure     string
	orderID     string
	paymentID   string
	completedAt time.Time
	cartCleared bool
	// bumped whenever a prepared intent stops being current
	generation  int
}

func New(id string, c Cart, cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Pricing == (Pricing{}) {
		cfg.Pricing = DefaultPricing()
	}

	return &Session{
		id:       id,
		cart:     c,
		pricing:  cfg.Pricing,
		receipts: cfg.Receipts,
		logger:   cfg.Logger.With("checkout_id", id),
		now:      cfg.Now,
		step:     StepShippingInfo,
		status:   StatusNone,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Step() Step { return s.step }

func (s *Session) invalid(op string) error {
	s.logger.Warnw("checkout operation rejected", "op", op, "step", s.step)
	return fmt.Errorf("%w: %s during %s", ErrInvalidState, op, s.step)
}

// SubmitShipping validates the address and freezes the order summary from the
// current cart. The session moves to the payment step.
func (s *Session) SubmitShipping(addr ShippingAddress) error {
	if s.step != StepShippingInfo {
		return s.invalid("submit shipping")
	}

	addr = addr.Normalize()
	if err := addr.Validate(); err != nil {
		return err
	}

	snap := s.cart.Snapshot()
	if snap.Empty() {
		return ErrEmptyCart
	}

	summary := s.pricing.Quote(snap, s.now())
	s.address = &addr
	s.summary = &summary
	s.attempt = nil
	s.status = StatusNone
	s.failure = ""
	s.step = StepPayment
	s.generation++

	s.logger.Infow("shipping captured", "total_cents", summary.TotalCents, "items", summary.ItemCount)
	return nil
}

// Back returns to the shipping step keeping the address. Any pending attempt is dropped.
func (s *Session) Back() error {
	if s.step != StepPayment {
		return s.invalid("back")
	}
	s.step = StepShippingInfo
	s.summary = nil
	s.attempt = nil
	s.status = StatusNone
	s.failure = ""
	s.generation++
	return nil
}

// InitiatePayment asks the gateway to create an order for the frozen total.
// On failure the session stays in the payment step and may be retried.
func (s *Session) InitiatePayment(ctx context.Context, method string, gw PaymentInitiator) (PaymentAttempt, error) {
	in, err := s.PreparePayment(method)
	if err != nil {
		return PaymentAttempt{}, err
	}
	resp, err := gw.InitiatePayment(ctx, in.Request)
	return s.RecordPayment(in, resp, err)
}

// PreparePayment builds the gateway request for the frozen total. Only the most
// recently prepared intent can be recorded.
func (s *Session) PreparePayment(method string) (PaymentIntent, error) {
	if s.step != StepPayment || s.summary == nil || s.address == nil {
		return PaymentIntent{}, s.invalid("initiate payment")
	}

	receipt, err := s.nextReceipt()
	if err != nil {
		return PaymentIntent{}, err
	}

	s.generation++
	return PaymentIntent{
		Method: method,
		Request: payments.PaymentRequest{
			Receipt:       receipt,
			AmountCents:   s.summary.TotalCents,
			Currency:      s.summary.Currency,
			Description:   fmt.Sprintf("Order %s (%d items)", receipt, s.summary.ItemCount),
			CustomerName:  s.address.FullName,
			CustomerEmail: s.address.Email,
			CustomerPhone: s.address.Phone,
		},
		checkoutID: s.id,
		generation: s.generation,
	}, nil
}

// RecordPayment applies the gateway's answer to a prepared intent. An intent
// overtaken by Back, a new shipping submission or a newer intent is rejected.
func (s *Session) RecordPayment(in PaymentIntent, resp payments.PaymentResponse, gwErr error) (PaymentAttempt, error) {
	if in.checkoutID != s.id || in.generation != s.generation || s.step != StepPayment {
		if gwErr == nil {
			s.logger.Warnw("discarding gateway order for stale payment request", "receipt", in.Request.Receipt, "order_id", resp.OrderID)
		}
		return PaymentAttempt{}, s.invalid("record payment")
	}

	if gwErr != nil {
		s.attempt = nil
		s.status = StatusFailed
		s.failure = "could not create payment order"
		s.logger.Errorw("payment initiation failed", "method", in.Method, "receipt", in.Request.Receipt, "error", gwErr)
		return PaymentAttempt{}, &PaymentError{Reason: s.failure, Err: gwErr}
	}

	attempt := PaymentAttempt{
		Method:          in.Method,
		Receipt:         in.Request.Receipt,
		ExternalOrderID: resp.OrderID,
		AmountCents:     in.Request.AmountCents,
		Currency:        in.Request.Currency,
		PaymentURL:      resp.PaymentURL,
		Data:            resp.Data,
		CreatedAt:       s.now(),
	}
	s.attempt = &attempt
	s.status = StatusPending
	s.failure = ""

	s.logger.Infow("payment initiated", "method", in.Method, "receipt", attempt.Receipt, "order_id", resp.OrderID, "amount_cents", attempt.AmountCents)
	return attempt.clone(), nil
}

func (s *Session) nextReceipt() (string, error) {
	if s.receipts == nil {
		return fmt.Sprintf("KS-%s-%d", s.id, s.now().UnixNano()), nil
	}
	return s.receipts.Next(s.now())
}

// HandleSuccess records a successful payment and clears the cart. A second success
// returns ErrAlreadyComplete without touching anything.
func (s *Session) HandleSuccess(p PaymentSuccess) error {
	switch {
	case s.step == StepComplete:
		s.logger.Warnw("duplicate payment success ignored", "order_id", p.OrderID, "payment_id", p.PaymentID)
		return ErrAlreadyComplete
	case s.step != StepPayment:
		return s.invalid("payment success")
	case s.attempt == nil:
		return s.invalid("payment success without initiated payment")
	case p.OrderID != s.attempt.ExternalOrderID:
		s.logger.Warnw("payment success for unknown order", "order_id", p.OrderID, "expected", s.attempt.ExternalOrderID)
		return fmt.Errorf("%w: order id %q does not match pending payment", ErrInvalidState, p.OrderID)
	case p.Method != "" && p.Method != s.attempt.Method:
		s.logger.Warnw("payment success from another gateway", "method", p.Method, "expected", s.attempt.Method)
		return fmt.Errorf("%w: payment method %q does not match pending payment", ErrInvalidState, p.Method)
	}

	s.orderID = p.OrderID
	s.paymentID = p.PaymentID
	s.status = StatusSucceeded
	s.failure = ""
	s.completedAt = s.now()
	s.step = StepComplete

	if !s.cartCleared {
		s.cart.Clear()
		s.cartCleared = true
	}

	s.logger.Infow("checkout complete", "order_id", s.orderID, "payment_id", s.paymentID, "total_cents", s.summary.TotalCents)
	return nil
}

// HandleFailure records a failed payment. The cart is left alone and the shopper may
// retry or go back.
func (s *Session) HandleFailure(reason string) error {
	if s.step != StepPayment {
		return s.invalid("payment failure")
	}
	if reason == "" {
		reason = "payment was not completed"
	}
	s.status = StatusFailed
	s.failure = reason

	s.logger.Infow("payment failed", "reason", reason)
	return &PaymentError{Reason: reason}
}

func (s *Session) View() View {
	v := View{
		ID:                s.id,
		Step:              s.step,
		PaymentStatus:     s.status,
		ExternalOrderID:   s.orderID,
		ExternalPaymentID: s.paymentID,
		FailureReason:     s.failure,
	}
	if s.address != nil {
		a := *s.address
		v.Address = &a
	}
	if s.summary != nil {
		sum := s.summary.clone()
		v.Summary = &sum
	}
	if s.attempt != nil {
		a := s.attempt.clone()
		v.Attempt = &a
	}
	if !s.completedAt.IsZero() {
		t := s.completedAt
		v.CompletedAt = &t
	}
	return v
}
