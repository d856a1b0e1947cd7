package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/cafe-companion/api/responses"
	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
)

// MenuList returns the menu, optionally filtered by ?category= or limited to
// the featured picks with ?featured=true.
func MenuList(menu *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if menu == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query := r.URL.Query()
		if strings.EqualFold(query.Get("featured"), "true") {
			responses.WriteSuccess(w, menu.Featured())
			return
		}

		raw := strings.TrimSpace(query.Get("category"))
		if raw == "" {
			responses.WriteSuccess(w, menu.List())
			return
		}
		category, err := enums.ParseMenuCategory(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category").
				WithDetails(map[string]string{"category": "is invalid"}))
			return
		}
		responses.WriteSuccess(w, menu.ByCategory(category))
	}
}

func MenuItem(menu *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if menu == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		item, err := menu.Get(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
