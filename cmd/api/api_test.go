package main

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kisansetu/internal/auth"
	"kisansetu/internal/cart"
	"kisansetu/internal/catalog"
	"kisansetu/internal/checkout"
	"kisansetu/internal/payments"
	"kisansetu/internal/session"
)

type memCatalog struct {
	items []catalog.Item
}

func (m *memCatalog) GetByID(ctx context.Context, id string) (*catalog.Item, error) {
	for _, it := range m.items {
		if it.ID == id {
			it := it
			return &it, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (m *memCatalog) List(ctx context.Context, f catalog.Filter, limit, offset int) ([]catalog.Item, int, error) {
	var matched []catalog.Item
	for _, it := range m.items {
		if f.OrganicOnly && !it.Organic {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.MaxPriceCents != nil && it.PriceCents > *f.MaxPriceCents {
			continue
		}
		matched = append(matched, it)
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

type sentMail struct {
	template string
	email    string
	data     any
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(templateFile, username, email string, data any) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{template: templateFile, email: email, data: data})
	return 1, nil
}

type testEnv struct {
	app     *application
	handler http.Handler
	sandbox *payments.SandboxAdapter
	mail    *recordingMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop().Sugar()

	sessions := session.NewRegistry(session.Config{TTL: time.Hour, SweepInterval: time.Hour}, logger)
	t.Cleanup(sessions.Close)

	sandbox := payments.NewSandboxAdapter("sandbox-secret")
	pm := payments.NewPaymentManager()
	pm.RegisterGateway("sandbox", sandbox)

	mail := &recordingMailer{}

	cfg := config{env: "test"}
	cfg.auth.token.exp = time.Hour
	cfg.payment.defaultMethod = "sandbox"

	app := &application{
		config:        cfg,
		logger:        logger,
		catalog:       &memCatalog{items: testItems()},
		sessions:      sessions,
		payments:      pm,
		mailer:        mail,
		authenticator: auth.NewJWTAuthenticator("test-secret", "kisansetu", "kisansetu", time.Hour),
	}
	return &testEnv{app: app, handler: app.mount(), sandbox: sandbox, mail: mail}
}

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: "tomato", Name: "Organic Tomatoes", PriceCents: 5000, Unit: "kg", Stock: 40, Organic: true, FarmerName: "Ramesh Kumar", Location: "Nashik"},
		{ID: "spinach", Name: "Fresh Spinach", PriceCents: 3000, Unit: "bunch", Stock: 25, FarmerName: "Lakshmi Devi", Location: "Pune"},
		{ID: "rice", Name: "Basmati Rice", PriceCents: 12000, Unit: "kg", Stock: 100, Organic: true, FarmerName: "Gurpreet Singh", Location: "Amritsar"},
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env.Data
}

type errorBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Errors  map[string]string `json:"errors"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeData[sessionResponse](t, rr).Token
}

func shippingBody() map[string]string {
	return map[string]string{
		"full_name": "Asha Patil",
		"email":     "asha@example.com",
		"phone":     "9876543210",
		"address":   "12 Market Road",
		"city":      "Pune",
		"state":     "Maharashtra",
		"pincode":   "411001",
	}
}

func TestCheckoutFlow(t *testing.T) {
	e := newTestEnv(t)
	token := e.newSession(t)

	rr := e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "tomato", "quantity": 2})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "spinach", "quantity": 3})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	snap := decodeData[cart.Snapshot](t, rr)
	assert.Equal(t, int64(19000), snap.SubtotalCents)
	assert.Equal(t, 5, snap.ItemCount)

	rr = e.do(t, http.MethodPost, "/v1/checkout", token, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, checkout.StepShippingInfo, decodeData[checkout.View](t, rr).Step)

	// payment before shipping is captured
	rr = e.do(t, http.MethodPost, "/v1/checkout/payment", token, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	bad := shippingBody()
	bad["pincode"] = "4110"
	rr = e.do(t, http.MethodPut, "/v1/checkout/shipping", token, bad)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decodeError(t, rr).Errors, "pincode")

	rr = e.do(t, http.MethodPut, "/v1/checkout/shipping", token, shippingBody())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	view := decodeData[checkout.View](t, rr)
	assert.Equal(t, checkout.StepPayment, view.Step)
	require.NotNil(t, view.Summary)
	assert.Equal(t, int64(23950), view.Summary.TotalCents)

	rr = e.do(t, http.MethodPost, "/v1/checkout/payment?method=sandbox", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	pay := decodeData[paymentResponse](t, rr)
	assert.Equal(t, "sandbox", pay.Method)
	assert.Equal(t, int64(23950), pay.Attempt.AmountCents)
	orderID := pay.Attempt.ExternalOrderID
	require.NotEmpty(t, orderID)

	// forged signature is recorded as a failed payment
	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{
		"status":     "success",
		"order_id":   orderID,
		"payment_id": "pay_forged",
		"signature":  "deadbeef",
	})
	require.Equal(t, http.StatusPaymentRequired, rr.Code, rr.Body.String())
	assert.Equal(t, "payment verification failed", decodeError(t, rr).Message)

	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.Equal(t, int64(19000), decodeData[cart.Snapshot](t, rr).SubtotalCents)

	success := map[string]string{
		"status":     "success",
		"method":     "sandbox",
		"order_id":   orderID,
		"payment_id": "pay_123",
		"signature":  e.sandbox.Sign(orderID, "pay_123"),
	}
	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, success)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	view = decodeData[checkout.View](t, rr)
	assert.Equal(t, checkout.StepComplete, view.Step)
	assert.Equal(t, checkout.StatusSucceeded, view.PaymentStatus)
	assert.Equal(t, "pay_123", view.ExternalPaymentID)

	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.True(t, decodeData[cart.Snapshot](t, rr).Empty())

	// replayed callback is acknowledged without side effects
	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, success)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, checkout.StepComplete, decodeData[checkout.View](t, rr).Step)

	e.app.wg.Wait()
	e.mail.mu.Lock()
	defer e.mail.mu.Unlock()
	require.Len(t, e.mail.sent, 1)
	assert.Equal(t, "asha@example.com", e.mail.sent[0].email)
	data, ok := e.mail.sent[0].data.(confirmationData)
	require.True(t, ok)
	assert.Equal(t, "₹239.50", data.Total)
	assert.Len(t, data.Lines, 2)
}

// withRazorpay registers a Razorpay gateway whose order API is served by h.
func (e *testEnv) withRazorpay(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	rzp := payments.NewRazorpayAdapter("rzp_test_key", "rzp_test_secret", "KisanSetu")
	rzp.BaseURL = srv.URL
	e.app.payments.RegisterGateway("razorpay", rzp)
}

func razorpayOrder(id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + id + `","amount":12000,"currency":"INR","status":"created"}`))
	}
}

func razorpaySignature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte("rzp_test_secret"))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (e *testEnv) readyForPayment(t *testing.T, token string) {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "rice", "quantity": 1})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = e.do(t, http.MethodPost, "/v1/checkout", token, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = e.do(t, http.MethodPut, "/v1/checkout/shipping", token, shippingBody())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestCallbackIsVerifiedByInitiatingGateway(t *testing.T) {
	e := newTestEnv(t)
	e.withRazorpay(t, razorpayOrder("order_RZP1"))
	token := e.newSession(t)
	e.readyForPayment(t, token)

	rr := e.do(t, http.MethodPost, "/v1/checkout/payment?method=razorpay", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	pay := decodeData[paymentResponse](t, rr)
	assert.Equal(t, "razorpay", pay.Attempt.Method)
	assert.Equal(t, "order_RZP1", pay.Attempt.ExternalOrderID)

	// a sandbox signature cannot complete a Razorpay order
	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{
		"status":     "success",
		"method":     "sandbox",
		"order_id":   "order_RZP1",
		"payment_id": "pay_1",
		"signature":  e.sandbox.Sign("order_RZP1", "pay_1"),
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{
		"status":     "success",
		"order_id":   "order_RZP1",
		"payment_id": "pay_1",
		"signature":  e.sandbox.Sign("order_RZP1", "pay_1"),
	})
	require.Equal(t, http.StatusPaymentRequired, rr.Code, rr.Body.String())
	assert.Equal(t, "payment verification failed", decodeError(t, rr).Message)

	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.Equal(t, int64(12000), decodeData[cart.Snapshot](t, rr).SubtotalCents)
	rr = e.do(t, http.MethodGet, "/v1/checkout", token, nil)
	assert.Equal(t, checkout.StepPayment, decodeData[checkout.View](t, rr).Step)

	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{
		"status":     "success",
		"order_id":   "order_RZP1",
		"payment_id": "pay_1",
		"signature":  razorpaySignature("order_RZP1", "pay_1"),
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, checkout.StepComplete, decodeData[checkout.View](t, rr).Step)

	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.True(t, decodeData[cart.Snapshot](t, rr).Empty())
	e.app.wg.Wait()
}

func TestCallbackWithoutPaymentAttempt(t *testing.T) {
	e := newTestEnv(t)
	token := e.newSession(t)
	e.readyForPayment(t, token)

	rr := e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{
		"status":     "success",
		"order_id":   "order_x",
		"payment_id": "pay_x",
		"signature":  e.sandbox.Sign("order_x", "pay_x"),
	})
	assert.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())

	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.Equal(t, int64(12000), decodeData[cart.Snapshot](t, rr).SubtotalCents)
}

func TestCallbackTrimsIdentifiers(t *testing.T) {
	e := newTestEnv(t)
	token := e.newSession(t)
	e.readyForPayment(t, token)

	rr := e.do(t, http.MethodPost, "/v1/checkout/payment", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	orderID := decodeData[paymentResponse](t, rr).Attempt.ExternalOrderID

	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{
		"status":     "success",
		"method":     " sandbox ",
		"order_id":   " " + orderID + "\n",
		"payment_id": "pay_9 ",
		"signature":  e.sandbox.Sign(orderID, "pay_9"),
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	view := decodeData[checkout.View](t, rr)
	assert.Equal(t, checkout.StepComplete, view.Step)
	assert.Equal(t, orderID, view.ExternalOrderID)
	assert.Equal(t, "pay_9", view.ExternalPaymentID)
	e.app.wg.Wait()
}

func TestGatewayCallDoesNotHoldSession(t *testing.T) {
	e := newTestEnv(t)
	arrived := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	e.withRazorpay(t, func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		razorpayOrder("order_SLOW")(w, r)
	})
	t.Cleanup(func() { once.Do(func() { close(release) }) })

	token := e.newSession(t)
	e.readyForPayment(t, token)

	paid := make(chan int, 1)
	go func() {
		rr := e.do(t, http.MethodPost, "/v1/checkout/payment?method=razorpay", token, nil)
		paid <- rr.Code
	}()

	select {
	case <-arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("gateway was never called")
	}

	read := make(chan int, 1)
	go func() {
		rr := e.do(t, http.MethodGet, "/v1/cart", token, nil)
		read <- rr.Code
	}()
	select {
	case code := <-read:
		assert.Equal(t, http.StatusOK, code)
	case <-time.After(2 * time.Second):
		t.Fatal("cart read blocked behind the gateway call")
	}

	once.Do(func() { close(release) })
	select {
	case code := <-paid:
		assert.Equal(t, http.StatusOK, code)
	case <-time.After(5 * time.Second):
		t.Fatal("payment initiation did not finish")
	}

	rr := e.do(t, http.MethodGet, "/v1/checkout", token, nil)
	view := decodeData[checkout.View](t, rr)
	require.NotNil(t, view.Attempt)
	assert.Equal(t, "order_SLOW", view.Attempt.ExternalOrderID)
	assert.Equal(t, checkout.StatusPending, view.PaymentStatus)
}

func TestPaymentFailureKeepsCart(t *testing.T) {
	e := newTestEnv(t)
	token := e.newSession(t)

	e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "rice", "quantity": 1})
	e.do(t, http.MethodPost, "/v1/checkout", token, nil)
	e.do(t, http.MethodPut, "/v1/checkout/shipping", token, shippingBody())
	rr := e.do(t, http.MethodPost, "/v1/checkout/payment", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{
		"status": "failure",
		"reason": "Payment cancelled",
	})
	require.Equal(t, http.StatusPaymentRequired, rr.Code)
	assert.Equal(t, "Payment cancelled", decodeError(t, rr).Message)

	rr = e.do(t, http.MethodGet, "/v1/checkout", token, nil)
	view := decodeData[checkout.View](t, rr)
	assert.Equal(t, checkout.StepPayment, view.Step)
	assert.Equal(t, checkout.StatusFailed, view.PaymentStatus)

	rr = e.do(t, http.MethodPost, "/v1/checkout/back", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, checkout.StepShippingInfo, decodeData[checkout.View](t, rr).Step)

	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.Equal(t, int64(12000), decodeData[cart.Snapshot](t, rr).SubtotalCents)

	rr = e.do(t, http.MethodDelete, "/v1/checkout", token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = e.do(t, http.MethodGet, "/v1/checkout", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	e.app.wg.Wait()
	assert.Empty(t, e.mail.sent)
}

func TestEmptyCartCannotCheckout(t *testing.T) {
	e := newTestEnv(t)
	token := e.newSession(t)

	e.do(t, http.MethodPost, "/v1/checkout", token, nil)
	rr := e.do(t, http.MethodPut, "/v1/checkout/shipping", token, shippingBody())
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCartEndpoints(t *testing.T) {
	e := newTestEnv(t)
	token := e.newSession(t)

	rr := e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "tomato", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "mango", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "tomato", "quantity": 1})
	e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "spinach", "quantity": 1})

	rr = e.do(t, http.MethodPatch, "/v1/cart/items/tomato", token, map[string]any{"quantity": 4})
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decodeData[cart.Snapshot](t, rr)
	assert.Equal(t, 5, snap.ItemCount)
	assert.Equal(t, int64(23000), snap.SubtotalCents)

	rr = e.do(t, http.MethodPatch, "/v1/cart/items/spinach", token, map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeData[cart.Snapshot](t, rr).LineCount)

	rr = e.do(t, http.MethodPatch, "/v1/cart/items/tomato", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = e.do(t, http.MethodPatch, "/v1/cart/items/tomato", token, map[string]any{"quantity": cart.MaxLineQuantity + 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "tomato", "quantity": cart.MaxLineQuantity + 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "tomato", "quantity": cart.MaxLineQuantity})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "merge would exceed the line cap")
	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.Equal(t, 4, decodeData[cart.Snapshot](t, rr).ItemCount)

	rr = e.do(t, http.MethodDelete, "/v1/cart/items/tomato", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeData[cart.Snapshot](t, rr).Empty())

	e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "rice", "quantity": 2})
	rr = e.do(t, http.MethodDelete, "/v1/cart", token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.True(t, decodeData[cart.Snapshot](t, rr).Empty())
}

func TestSessionsAreIsolated(t *testing.T) {
	e := newTestEnv(t)
	alice := e.newSession(t)
	bob := e.newSession(t)

	e.do(t, http.MethodPost, "/v1/cart/items", alice, map[string]any{"item_id": "rice", "quantity": 3})

	rr := e.do(t, http.MethodGet, "/v1/cart", bob, nil)
	assert.True(t, decodeData[cart.Snapshot](t, rr).Empty())
}

func TestAuthRequired(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodGet, "/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = e.do(t, http.MethodGet, "/v1/cart", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// token for a session the registry no longer knows
	token, err := e.app.authenticator.GenerateToken("gone")
	require.NoError(t, err)
	rr = e.do(t, http.MethodGet, "/v1/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUnknownPaymentMethod(t *testing.T) {
	e := newTestEnv(t)
	token := e.newSession(t)

	e.do(t, http.MethodPost, "/v1/cart/items", token, map[string]any{"item_id": "rice", "quantity": 1})
	e.do(t, http.MethodPost, "/v1/checkout", token, nil)
	e.do(t, http.MethodPut, "/v1/checkout/shipping", token, shippingBody())

	rr := e.do(t, http.MethodPost, "/v1/checkout/payment?method=paypal", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCallbackWithoutCheckout(t *testing.T) {
	e := newTestEnv(t)
	token := e.newSession(t)

	rr := e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{"status": "failure"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = e.do(t, http.MethodPost, "/v1/checkout/payment/callback", token, map[string]string{"status": "maybe"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodGet, "/v1/catalog?organic=true", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page := decodeData[catalogPage](t, rr)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Pagination.Total)

	rr = e.do(t, http.MethodGet, "/v1/catalog?max_price=50&limit=1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page = decodeData[catalogPage](t, rr)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Pagination.Total)
	assert.True(t, page.Pagination.HasNext)

	rr = e.do(t, http.MethodGet, "/v1/catalog?min_price=100&max_price=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = e.do(t, http.MethodGet, "/v1/catalog?search=zucchini", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"items":[]`)

	rr = e.do(t, http.MethodGet, "/v1/catalog/spinach", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Fresh Spinach", decodeData[catalog.Item](t, rr).Name)

	rr = e.do(t, http.MethodGet, "/v1/catalog/mango", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	rr := e.do(t, http.MethodGet, "/v1/health", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeData[map[string]string](t, rr)["status"])
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₹239.50", formatMoney(23950, "INR"))
	assert.Equal(t, "₹0.05", formatMoney(5, ""))
	assert.Equal(t, "USD 12.00", formatMoney(1200, "USD"))
	assert.Equal(t, "-₹1.50", formatMoney(-150, "INR"))
}
