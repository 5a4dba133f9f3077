package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"kisansetu/internal/catalog"
	"kisansetu/internal/params"
)

type catalogPage struct {
	Items      []catalog.Item    `json:"items"`
	Pagination params.Pagination `json:"pagination"`
}

// listCatalogHandler godoc
//
//	@Summary		List produce
//	@Description	Lists active catalog items with search and filters
//	@Tags			Catalog
//	@Produce		json
//	@Param			search		query		string	false	"Search in name and description"
//	@Param			category	query		string	false	"Category"
//	@Param			min_price	query		string	false	"Minimum price in rupees"
//	@Param			max_price	query		string	false	"Maximum price in rupees"
//	@Param			organic		query		bool	false	"Organic only"
//	@Param			farmer_id	query		string	false	"Farmer"
//	@Param			page		query		int		false	"Page"
//	@Param			limit		query		int		false	"Items per page"
//	@Success		200			{object}	catalogPage
//	@Failure		400			{object}	error
//	@Router			/catalog [get]
func (app *application) listCatalogHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	p := params.ParsePagination(q)

	minPrice, err := params.ParseRupees(q, "min_price")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	maxPrice, err := params.ParseRupees(q, "max_price")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		app.badRequestResponse(w, r, errors.New("min_price must not exceed max_price"))
		return
	}

	f := catalog.Filter{
		Search:        strings.TrimSpace(q.Get("search")),
		Category:      strings.TrimSpace(q.Get("category")),
		MinPriceCents: minPrice,
		MaxPriceCents: maxPrice,
		OrganicOnly:   params.ParseBool(q, "organic"),
		FarmerID:      strings.TrimSpace(q.Get("farmer_id")),
	}

	items, total, err := app.catalog.List(ctx, f, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}
	p.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, catalogPage{Items: items, Pagination: p})
}

// getCatalogItemHandler godoc
//
//	@Summary	Get a catalog item
//	@Tags		Catalog
//	@Produce	json
//	@Param		itemID	path		string	true	"Item ID"
//	@Success	200		{object}	catalog.Item
//	@Failure	404		{object}	error
//	@Router		/catalog/{itemID} [get]
func (app *application) getCatalogItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := app.catalog.GetByID(ctx, chi.URLParam(r, "itemID"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, item)
}
