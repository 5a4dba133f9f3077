package payments

// PaymentRequest describes the amount to collect for one checkout attempt.
// Amounts are in minor units (paise for INR).
type PaymentRequest struct {
	Receipt       string
	AmountCents   int64
	Currency      string
	Description   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type PaymentResponse struct {
	OrderID    string            // gateway-side order id
	PaymentURL string            // hosted page, empty for widget based gateways
	Data       map[string]string // fields the client needs to open the gateway widget
}

type PaymentVerifyRequest struct {
	OrderID   string
	PaymentID string
	Signature string
	Data      map[string]string
}

type PaymentVerifyResponse struct {
	Success     bool
	State       string
	ProviderRef string
}
