package main

import (
	"fmt"
	"strings"

	"kisansetu/internal/checkout"
	"kisansetu/internal/mailer"
)

// background runs fn on its own goroutine. Panics are logged, and run waits for
// outstanding jobs before shutting down.
func (app *application) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background job panicked", "error", err)
			}
		}()
		fn()
	}()
}

type confirmationLine struct {
	Name     string
	Quantity int
	Unit     string
	Total    string
}

type confirmationData struct {
	Name      string
	Receipt   string
	PaymentID string
	Lines     []confirmationLine
	Subtotal  string
	Shipping  string
	Tax       string
	Total     string
	Address   string
}

func (app *application) sendOrderConfirmation(view checkout.View) {
	if app.mailer == nil || view.Address == nil || view.Summary == nil {
		return
	}

	data := confirmationData{
		Name:      view.Address.FullName,
		PaymentID: view.ExternalPaymentID,
		Subtotal:  formatMoney(view.Summary.SubtotalCents, view.Summary.Currency),
		Shipping:  formatMoney(view.Summary.ShippingCents, view.Summary.Currency),
		Tax:       formatMoney(view.Summary.TaxCents, view.Summary.Currency),
		Total:     formatMoney(view.Summary.TotalCents, view.Summary.Currency),
		Address: strings.Join([]string{
			view.Address.Street,
			view.Address.City,
			view.Address.State + " " + view.Address.PostalCode,
		}, ", "),
	}
	if view.Attempt != nil {
		data.Receipt = view.Attempt.Receipt
	}
	for _, l := range view.Summary.Lines {
		data.Lines = append(data.Lines, confirmationLine{
			Name:     l.Name,
			Quantity: l.Quantity,
			Unit:     l.Unit,
			Total:    formatMoney(l.TotalCents(), view.Summary.Currency),
		})
	}

	name, email := view.Address.FullName, view.Address.Email
	app.background(func() {
		attempts, err := app.mailer.Send(mailer.OrderConfirmationTemplate, name, email, data)
		if err != nil {
			app.logger.Errorw("order confirmation not sent", "order_id", view.ExternalOrderID, "attempts", attempts, "error", err)
			return
		}
		app.logger.Infow("order confirmation sent", "order_id", view.ExternalOrderID, "attempts", attempts)
	})
}

// formatMoney renders minor units as a display amount, e.g. 23950 INR -> ₹239.50.
func formatMoney(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	symbol := currency + " "
	if currency == "INR" || currency == "" {
		symbol = "₹"
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}
