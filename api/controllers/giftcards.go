package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cafe-companion/api/responses"
	"github.com/angelmondragon/cafe-companion/api/validators"
	"github.com/angelmondragon/cafe-companion/internal/giftcards"
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
)

// GiftCardService issues gift cards.
type GiftCardService interface {
	Send(ctx context.Context, req giftcards.Request) (giftcards.GiftCard, error)
	DefaultAmount() decimal.Decimal
	Limits() (minAmount, maxAmount decimal.Decimal)
}

type giftCardTemplatesResponse struct {
	Templates     []giftcards.Template `json:"templates"`
	PresetAmounts []decimal.Decimal    `json:"preset_amounts"`
	DefaultAmount decimal.Decimal      `json:"default_amount"`
	MinAmount     decimal.Decimal      `json:"min_amount"`
	MaxAmount     decimal.Decimal      `json:"max_amount"`
}

type sendGiftCardRequest struct {
	Template       string          `json:"template"`
	Amount         decimal.Decimal `json:"amount"`
	RecipientName  string          `json:"recipient_name"`
	RecipientEmail string          `json:"recipient_email"`
	SenderName     string          `json:"sender_name"`
	Message        string          `json:"message"`
}

func GiftCardTemplates(svc GiftCardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minAmount, maxAmount := svc.Limits()
		responses.WriteSuccess(w, giftCardTemplatesResponse{
			Templates:     giftcards.Templates(),
			PresetAmounts: giftcards.PresetAmounts(),
			DefaultAmount: svc.DefaultAmount(),
			MinAmount:     minAmount,
			MaxAmount:     maxAmount,
		})
	}
}

// GiftCardSend validates the wizard input and issues a card.
func GiftCardSend(svc GiftCardService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift card service unavailable"))
			return
		}

		var payload sendGiftCardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.Send(r.Context(), giftcards.Request{
			Template:       enums.GiftCardTemplate(payload.Template),
			Amount:         payload.Amount,
			RecipientName:  payload.RecipientName,
			RecipientEmail: payload.RecipientEmail,
			SenderName:     payload.SenderName,
			Message:        payload.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, card)
	}
}
