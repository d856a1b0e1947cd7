package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/cafe-companion/api/responses"
	"github.com/angelmondragon/cafe-companion/api/validators"
	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/internal/recommend"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
)

const maxRecommendationLimit = 20

// Recommender ranks menu items for a shopper.
type Recommender interface {
	Recommend(ctx context.Context, candidates []catalog.MenuItem, pref recommend.Preference, excludeID string, limit int) recommend.Ranking
}

// Recommendations ranks the customizable menu against the preference derived
// from the session cart. ?exclude= drops the item being viewed.
func Recommendations(menu *catalog.Catalog, engine Recommender, store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if menu == nil || engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recommendations unavailable"))
			return
		}
		session, err := sessionForRead(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxRecommendationLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		exclude := strings.TrimSpace(r.URL.Query().Get("exclude"))

		ranking := engine.Recommend(r.Context(), menu.Customizable(), session.Preference(), exclude, limit)
		responses.WriteSuccess(w, ranking)
	}
}
