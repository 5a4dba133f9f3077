package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const razorpayBaseURL = "https://api.razorpay.com"

type RazorpayAdapter struct {
	KeyID        string
	KeySecret    string
	MerchantName string
	BaseURL      string
	httpClient   *http.Client
}

func NewRazorpayAdapter(keyID, keySecret, merchantName string) *RazorpayAdapter {
	return &RazorpayAdapter{
		KeyID:        keyID,
		KeySecret:    keySecret,
		MerchantName: merchantName,
		BaseURL:      razorpayBaseURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *RazorpayAdapter) InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error) {
	if req.AmountCents <= 0 {
		return PaymentResponse{}, fmt.Errorf("razorpay initiate: amount must be positive, got %d", req.AmountCents)
	}

	payload := map[string]any{
		"amount":   req.AmountCents,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes": map[string]string{
			"customer_name":  req.CustomerName,
			"customer_email": req.CustomerEmail,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("razorpay initiate encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(r.BaseURL, "/")+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("razorpay initiate request: %w", err)
	}
	httpReq.SetBasicAuth(r.KeyID, r.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("razorpay initiate request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// raw body kept for support, razorpay puts the reason under error.description
		return PaymentResponse{}, fmt.Errorf("razorpay initiate failed: http=%d body=%s", resp.StatusCode, string(raw))
	}

	var res struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return PaymentResponse{}, fmt.Errorf("razorpay initiate decode: %w body=%s", err, string(raw))
	}
	if res.ID == "" {
		return PaymentResponse{}, fmt.Errorf("razorpay initiate: response without order id")
	}

	return PaymentResponse{
		OrderID: res.ID,
		Data: map[string]string{
			"key":            r.KeyID,
			"order_id":       res.ID,
			"amount":         strconv.FormatInt(res.Amount, 10),
			"currency":       res.Currency,
			"name":           r.MerchantName,
			"description":    req.Description,
			"prefill_name":   req.CustomerName,
			"prefill_email":  req.CustomerEmail,
			"prefill_phone":  req.CustomerPhone,
			"receipt":        res.Receipt,
			"gateway_status": res.Status,
		},
	}, nil
}

// VerifyPayment checks the checkout signature the widget hands back to the client.
// No network call is made.
func (r *RazorpayAdapter) VerifyPayment(ctx context.Context, req PaymentVerifyRequest) (PaymentVerifyResponse, error) {
	orderID := strings.TrimSpace(req.OrderID)
	paymentID := strings.TrimSpace(req.PaymentID)
	if orderID == "" || paymentID == "" {
		return PaymentVerifyResponse{Success: false}, fmt.Errorf("razorpay verify requires order_id and payment_id")
	}

	if !validSignature(r.KeySecret, orderID+"|"+paymentID, req.Signature) {
		return PaymentVerifyResponse{Success: false, State: "signature_mismatch", ProviderRef: paymentID}, ErrInvalidSignature
	}

	return PaymentVerifyResponse{
		Success:     true,
		State:       "captured",
		ProviderRef: paymentID,
	}, nil
}

func sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func validSignature(secret, message, signature string) bool {
	expected := sign(secret, message)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}
