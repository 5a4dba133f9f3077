package main

import (
	"errors"
	"net/http"

	"kisansetu/internal/cart"
	"kisansetu/internal/catalog"
	"kisansetu/internal/checkout"
	"kisansetu/internal/payments"
	"kisansetu/internal/session"
)

var errNoCheckout = errors.New("no checkout in progress")

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict response", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusConflict, err.Error())
}

func (app *application) unprocessableResponse(w http.ResponseWriter, r *http.Request, err *checkout.ValidationError) {
	app.logger.Warnw("validation failed", "method", r.Method, "path", r.URL.Path, "fields", err.Fields)

	writeJSONFieldErrors(w, http.StatusUnprocessableEntity, "please correct the highlighted fields", err.Fields)
}

func (app *application) paymentFailedResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("payment failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	msg := "payment failed"
	var perr *checkout.PaymentError
	if errors.As(err, &perr) {
		msg = perr.Reason
	}
	writeJSONError(w, http.StatusPaymentRequired, msg)
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// domainErrorResponse maps cart, checkout and payment errors onto HTTP statuses.
func (app *application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		app.unprocessableResponse(w, r, verr)
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidItem):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, payments.ErrUnknownGateway):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, errNoCheckout):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, session.ErrSessionNotFound):
		app.unauthorizedErrorResponse(w, r, err)
	case errors.Is(err, checkout.ErrInvalidState),
		errors.Is(err, checkout.ErrAlreadyComplete),
		errors.Is(err, checkout.ErrEmptyCart):
		app.conflictResponse(w, r, err)
	case errors.Is(err, checkout.ErrPaymentFailed):
		app.paymentFailedResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
