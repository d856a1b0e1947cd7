package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/cafe-companion/api/responses"
	"github.com/angelmondragon/cafe-companion/internal/loyalty"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
)

type loyaltySummaryResponse struct {
	Balance int             `json:"balance"`
	History []loyalty.Entry `json:"history"`
}

type redeemResponse struct {
	Entry   loyalty.Entry `json:"entry"`
	Balance int           `json:"balance"`
}

func LoyaltySummary(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionForRead(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		history := session.Loyalty.History()
		if history == nil {
			history = []loyalty.Entry{}
		}
		responses.WriteSuccess(w, loyaltySummaryResponse{
			Balance: session.Loyalty.Balance(),
			History: history,
		})
	}
}

func LoyaltyRewards(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionForRead(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session.Loyalty.Rewards())
	}
}

func LoyaltyRedeem(store SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := session.Loyalty.Redeem(chi.URLParam(r, "rewardId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "points", entry.Points), "loyalty.redeemed")
		}
		responses.WriteSuccess(w, redeemResponse{Entry: entry, Balance: session.Loyalty.Balance()})
	}
}
