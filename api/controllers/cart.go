package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cafe-companion/api/responses"
	"github.com/angelmondragon/cafe-companion/api/validators"
	"github.com/angelmondragon/cafe-companion/internal/cart"
	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
)

const maxNoteLength = 200

type addCartItemRequest struct {
	ItemID         string            `json:"item_id" validate:"required"`
	Quantity       *int              `json:"quantity"`
	Customizations map[string]string `json:"customizations"`
	Note           string            `json:"note" validate:"max=200"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartLineResponse struct {
	ID             string            `json:"id"`
	ItemID         string            `json:"item_id"`
	Name           string            `json:"name"`
	Image          string            `json:"image,omitempty"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	Quantity       int               `json:"quantity"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Customizations map[string]string `json:"customizations,omitempty"`
	Note           string            `json:"note,omitempty"`
}

type cartResponse struct {
	Lines     []cartLineResponse `json:"lines"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"item_count"`
}

func newCartResponse(snap cart.Snapshot) cartResponse {
	lines := make([]cartLineResponse, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, cartLineResponse{
			ID:             l.ID,
			ItemID:         l.Item.ID,
			Name:           l.Item.Name,
			Image:          l.Item.Image,
			UnitPrice:      l.Item.Price,
			Quantity:       l.Quantity,
			Subtotal:       l.Subtotal(),
			Customizations: l.Customizations,
			Note:           l.Note,
		})
	}
	return cartResponse{Lines: lines, Total: snap.Total, ItemCount: snap.ItemCount}
}

// CartFetch returns the session cart.
func CartFetch(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionForRead(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(session.Cart.Snapshot()))
	}
}

// CartAddItem appends a new line. Quantity defaults to one when omitted.
func CartAddItem(menu *catalog.Catalog, store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := menu.Get(payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}
		note := validators.SanitizeString(payload.Note, maxNoteLength)

		if _, err := session.Cart.AddItem(item, quantity, payload.Customizations, note); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(session.Cart.Snapshot()))
	}
}

// CartUpdateItem sets a line's quantity; zero or less removes the line.
// Unknown line ids leave the cart unchanged.
func CartUpdateItem(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.Cart.UpdateQuantity(chi.URLParam(r, "lineId"), *payload.Quantity)
		responses.WriteSuccess(w, newCartResponse(session.Cart.Snapshot()))
	}
}

func CartRemoveItem(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session.Cart.RemoveItem(chi.URLParam(r, "lineId"))
		responses.WriteSuccess(w, newCartResponse(session.Cart.Snapshot()))
	}
}

func CartClear(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session.Cart.Clear()
		responses.WriteSuccess(w, newCartResponse(session.Cart.Snapshot()))
	}
}
