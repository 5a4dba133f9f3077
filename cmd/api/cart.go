package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kisansetu/internal/cart"
	"kisansetu/internal/session"
)

type addCartItemPayload struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"lte=9999"`
}

type updateCartItemPayload struct {
	Quantity *int `json:"quantity" validate:"required,lte=9999"`
}

// cartSnapshot reads the shopper's cart under the session lock.
func (app *application) cartSnapshot(r *http.Request) (cart.Snapshot, error) {
	var snap cart.Snapshot
	err := app.sessions.With(getSessionIDFromContext(r), func(s *session.Session) error {
		snap = s.Cart().Snapshot()
		return nil
	})
	return snap, err
}

func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := app.cartSnapshot(r)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}
	app.jsonResponse(w, http.StatusOK, snap)
}

// addCartItemHandler godoc
//
//	@Summary		Add produce to the cart
//	@Description	Adds quantity units of a catalog item. Adding an item already in the cart increases its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		addCartItemPayload	true	"Item and quantity"
//	@Success		200		{object}	cart.Snapshot
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in addCartItemPayload
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if in.Quantity < 1 || in.Quantity > cart.MaxLineQuantity {
		app.badRequestResponse(w, r, cart.ErrInvalidQuantity)
		return
	}
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.catalog.GetByID(ctx, in.ItemID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}
	*item = app.thumbnails.Apply(*item)

	var snap cart.Snapshot
	err = app.sessions.With(getSessionIDFromContext(r), func(s *session.Session) error {
		if err := s.Cart().AddItem(*item, in.Quantity); err != nil {
			return err
		}
		snap = s.Cart().Snapshot()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, snap)
}

// PATCH /v1/cart/items/{itemID} {quantity}; zero or less removes the line
func (app *application) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var in updateCartItemPayload
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if in.Quantity == nil {
		app.badRequestResponse(w, r, errors.New("quantity is required"))
		return
	}
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, cart.ErrInvalidQuantity)
		return
	}

	itemID := chi.URLParam(r, "itemID")

	var snap cart.Snapshot
	err := app.sessions.With(getSessionIDFromContext(r), func(s *session.Session) error {
		s.Cart().UpdateQuantity(itemID, *in.Quantity)
		snap = s.Cart().Snapshot()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, snap)
}

func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var snap cart.Snapshot
	err := app.sessions.With(getSessionIDFromContext(r), func(s *session.Session) error {
		s.Cart().RemoveItem(itemID)
		snap = s.Cart().Snapshot()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, snap)
}

func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	err := app.sessions.With(getSessionIDFromContext(r), func(s *session.Session) error {
		s.Cart().Clear()
		return nil
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
