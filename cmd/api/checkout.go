package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kisansetu/internal/checkout"
	"kisansetu/internal/payments"
	"kisansetu/internal/session"
)

type paymentResponse struct {
	Method   string                  `json:"method"`
	Attempt  checkout.PaymentAttempt `json:"payment"`
	Checkout checkout.View           `json:"checkout"`
}

type paymentCallbackPayload struct {
	Status    string `json:"status" validate:"required,oneof=success failure"`
	Method    string `json:"method"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
	Reason    string `json:"reason"`
}

// withCheckout runs fn against the shopper's checkout in progress.
func (app *application) withCheckout(r *http.Request, fn func(*checkout.Session) error) error {
	return app.sessions.With(getSessionIDFromContext(r), func(s *session.Session) error {
		ck := s.Checkout()
		if ck == nil {
			return errNoCheckout
		}
		return fn(ck)
	})
}

// beginCheckoutHandler godoc
//
//	@Summary		Start checkout
//	@Description	Starts a new checkout over the current cart, replacing any earlier one
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	checkout.View
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/checkout [post]
func (app *application) beginCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var view checkout.View
	err := app.sessions.With(getSessionIDFromContext(r), func(s *session.Session) error {
		view = s.BeginCheckout().View()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, view)
}

func (app *application) getCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var view checkout.View
	err := app.withCheckout(r, func(ck *checkout.Session) error {
		view = ck.View()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, view)
}

func (app *application) abandonCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	err := app.sessions.With(getSessionIDFromContext(r), func(s *session.Session) error {
		s.AbandonCheckout()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// submitShippingHandler godoc
//
//	@Summary		Submit the shipping address
//	@Description	Validates the address, freezes the order total and moves checkout to the payment step
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		checkout.ShippingAddress	true	"Shipping address"
//	@Success		200		{object}	checkout.View
//	@Failure		409		{object}	error	"Wrong step or empty cart"
//	@Failure		422		{object}	error	"Invalid fields"
//	@Security		ApiKeyAuth
//	@Router			/checkout/shipping [put]
func (app *application) submitShippingHandler(w http.ResponseWriter, r *http.Request) {
	var addr checkout.ShippingAddress
	if err := readJSON(w, r, &addr); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var view checkout.View
	err := app.withCheckout(r, func(ck *checkout.Session) error {
		if err := ck.SubmitShipping(addr); err != nil {
			return err
		}
		view = ck.View()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, view)
}

func (app *application) checkoutBackHandler(w http.ResponseWriter, r *http.Request) {
	var view checkout.View
	err := app.withCheckout(r, func(ck *checkout.Session) error {
		if err := ck.Back(); err != nil {
			return err
		}
		view = ck.View()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, view)
}

// initiatePaymentHandler godoc
//
//	@Summary		Create a payment order
//	@Description	Creates a gateway order for the frozen total and returns the fields needed to open the payment widget
//	@Tags			Checkout
//	@Produce		json
//	@Param			method	query		string	false	"Payment gateway (razorpay, sandbox)"
//	@Success		200		{object}	paymentResponse
//	@Failure		402		{object}	error	"Gateway refused"
//	@Failure		409		{object}	error	"Shipping address not captured"
//	@Security		ApiKeyAuth
//	@Router			/checkout/payment [post]
func (app *application) initiatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	method := strings.TrimSpace(r.URL.Query().Get("method"))
	if method == "" {
		method = app.config.payment.defaultMethod
	}

	gateway, err := app.payments.Gateway(method)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var intent checkout.PaymentIntent
	err = app.withCheckout(r, func(ck *checkout.Session) error {
		var err error
		intent, err = ck.PreparePayment(method)
		return err
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	// the gateway call runs without holding the shopper's session
	order, gwErr := gateway.InitiatePayment(ctx, intent.Request)

	var resp paymentResponse
	err = app.withCheckout(r, func(ck *checkout.Session) error {
		attempt, err := ck.RecordPayment(intent, order, gwErr)
		if err != nil {
			return err
		}
		resp = paymentResponse{Method: method, Attempt: attempt, Checkout: ck.View()}
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, resp)
}

// paymentCallbackHandler godoc
//
//	@Summary		Report the payment outcome
//	@Description	Success callbacks are verified with the gateway before the order completes. A callback that fails verification is recorded as a failed payment.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		paymentCallbackPayload	true	"Gateway result"
//	@Success		200		{object}	checkout.View
//	@Failure		402		{object}	error	"Payment failed"
//	@Failure		409		{object}	error	"No pending payment"
//	@Security		ApiKeyAuth
//	@Router			/checkout/payment/callback [post]
func (app *application) paymentCallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var in paymentCallbackPayload
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	in.Method = strings.TrimSpace(in.Method)
	in.OrderID = strings.TrimSpace(in.OrderID)
	in.PaymentID = strings.TrimSpace(in.PaymentID)
	in.Signature = strings.TrimSpace(in.Signature)

	success := in.Status == "success"
	reason := in.Reason
	if success {
		// verify with the gateway that created the pending order, never the one the
		// client names
		var attempt *checkout.PaymentAttempt
		err := app.withCheckout(r, func(ck *checkout.Session) error {
			attempt = ck.View().Attempt
			return nil
		})
		if err != nil {
			app.domainErrorResponse(w, r, err)
			return
		}
		if attempt == nil {
			app.domainErrorResponse(w, r, fmt.Errorf("%w: no payment has been initiated", checkout.ErrInvalidState))
			return
		}
		if in.Method != "" && in.Method != attempt.Method {
			app.badRequestResponse(w, r, fmt.Errorf("payment method %q does not match the pending %q payment", in.Method, attempt.Method))
			return
		}
		in.Method = attempt.Method

		_, err = app.payments.VerifyPayment(ctx, in.Method, payments.PaymentVerifyRequest{
			OrderID:   in.OrderID,
			PaymentID: in.PaymentID,
			Signature: in.Signature,
		})
		if errors.Is(err, payments.ErrUnknownGateway) {
			app.badRequestResponse(w, r, err)
			return
		}
		if err != nil {
			app.logger.Warnw("payment verification failed", "method", in.Method, "order_id", in.OrderID, "payment_id", in.PaymentID, "error", err)
			success = false
			reason = "payment verification failed"
		}
	}

	var (
		view      checkout.View
		completed bool
	)
	err := app.withCheckout(r, func(ck *checkout.Session) error {
		var err error
		if success {
			err = ck.HandleSuccess(checkout.PaymentSuccess{
				Method:    in.Method,
				PaymentID: in.PaymentID,
				OrderID:   in.OrderID,
				Signature: in.Signature,
			})
			completed = err == nil
		} else {
			err = ck.HandleFailure(reason)
		}
		view = ck.View()
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, checkout.ErrAlreadyComplete):
		// replayed success callbacks are acknowledged with the completed order
		app.jsonResponse(w, http.StatusOK, view)
		return
	default:
		app.domainErrorResponse(w, r, err)
		return
	}

	if completed {
		app.sendOrderConfirmation(view)
	}

	app.jsonResponse(w, http.StatusOK, view)
}
