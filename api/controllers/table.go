package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/cafe-companion/api/responses"
	"github.com/angelmondragon/cafe-companion/api/validators"
	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/internal/loyalty"
	"github.com/angelmondragon/cafe-companion/internal/tableorder"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
)

const maxInstructionsLength = 200

type tableItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type placeTableOrderRequest struct {
	Instructions string `json:"instructions" validate:"max=200"`
}

type placeTableOrderResponse struct {
	tableorder.Placement
	PointsEarned []loyalty.Entry `json:"points_earned"`
	Balance      int             `json:"balance"`
}

func TableScan(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		table, err := session.Table.Scan(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"table": table})
	}
}

func TableOrderFetch(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionForRead(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session.Table.View())
	}
}

// TableOrderAdd puts one of the item on the table order, merging with an
// existing entry for the same item.
func TableOrderAdd(menu *catalog.Catalog, store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tableItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := menu.Get(payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.Table.Add(item)
		responses.WriteSuccess(w, session.Table.View())
	}
}

func TableOrderDecrement(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID := chi.URLParam(r, "itemId")
		if !session.Table.Decrement(itemID) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item is not on the table order").
				WithDetails(map[string]string{"item_id": itemID}))
			return
		}
		responses.WriteSuccess(w, session.Table.View())
	}
}

// TableOrderPlace pushes the table order into the session cart and credits
// loyalty points for it.
func TableOrderPlace(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload placeTableOrderRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		instructions := validators.SanitizeString(payload.Instructions, maxInstructionsLength)
		placement, err := session.Table.Place(session.Cart, instructions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		earned := session.Loyalty.EarnForOrder(placement.Total, placement.ItemIDs())
		if earned == nil {
			earned = []loyalty.Entry{}
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"order_number": placement.OrderNumber,
				"table":        placement.Table,
				"total":        placement.Total.StringFixed(2),
			})
			logg.Info(ctx, "table.order_placed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, placeTableOrderResponse{
			Placement:    placement,
			PointsEarned: earned,
			Balance:      session.Loyalty.Balance(),
		})
	}
}
