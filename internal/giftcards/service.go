package giftcards

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/angelmondragon/cafe-companion/pkg/config"
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/ids"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
	"github.com/angelmondragon/cafe-companion/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	// StatusSent marks a card that was handed to the sender.
	StatusSent = "sent"

	codePrefix = "GC"
)

// Request is what the gift card wizard collects.
type Request struct {
	Template       enums.GiftCardTemplate `json:"template" validate:"required"`
	Amount         decimal.Decimal        `json:"amount"`
	RecipientName  string                 `json:"recipient_name" validate:"required,max=100"`
	RecipientEmail string                 `json:"recipient_email" validate:"required,email"`
	SenderName     string                 `json:"sender_name" validate:"required,max=100"`
	Message        string                 `json:"message" validate:"max=500"`
}

// GiftCard is a card that has been issued.
type GiftCard struct {
	Code           string                 `json:"code"`
	Template       enums.GiftCardTemplate `json:"template"`
	Amount         decimal.Decimal        `json:"amount"`
	RecipientName  string                 `json:"recipient_name"`
	RecipientEmail string                 `json:"recipient_email"`
	SenderName     string                 `json:"sender_name"`
	Message        string                 `json:"message,omitempty"`
	Status         string                 `json:"status"`
	SentAt         time.Time              `json:"sent_at"`
}

// Sender delivers an issued card to its recipient.
type Sender interface {
	Send(ctx context.Context, card GiftCard) error
}

// LogSender pretends to deliver cards by logging them.
type LogSender struct {
	Logger *logger.Logger
}

func (s LogSender) Send(ctx context.Context, card GiftCard) error {
	if s.Logger == nil {
		return nil
	}
	ctx = s.Logger.WithFields(ctx, map[string]any{
		"code":     card.Code,
		"template": card.Template.String(),
		"amount":   card.Amount.StringFixed(2),
	})
	s.Logger.Info(ctx, "giftcard.delivered")
	return nil
}

// Service validates and issues gift cards.
type Service struct {
	cfg      config.GiftCardConfig
	sender   Sender
	ids      *ids.Generator
	metrics  *metrics.Storefront
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires the gift card flow.
func NewService(cfg config.GiftCardConfig, sender Sender, gen *ids.Generator, m *metrics.Storefront, logg *logger.Logger) (*Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("gift card sender required")
	}
	if gen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return &Service{
		cfg:      cfg,
		sender:   sender,
		ids:      gen,
		metrics:  m,
		logg:     logg,
		validate: v,
		now:      time.Now,
	}, nil
}

// DefaultAmount is the amount preselected in the wizard.
func (s *Service) DefaultAmount() decimal.Decimal {
	return s.cfg.DefaultAmount
}

// Limits returns the accepted amount range.
func (s *Service) Limits() (minAmount, maxAmount decimal.Decimal) {
	return s.cfg.MinAmount, s.cfg.MaxAmount
}

// Send validates the request, issues a code and hands the card to the sender.
func (s *Service) Send(ctx context.Context, req Request) (GiftCard, error) {
	req.RecipientName = strings.TrimSpace(req.RecipientName)
	req.RecipientEmail = strings.TrimSpace(req.RecipientEmail)
	req.SenderName = strings.TrimSpace(req.SenderName)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.check(req); err != nil {
		return GiftCard{}, err
	}

	card := GiftCard{
		Code:           s.ids.Code(codePrefix),
		Template:       req.Template,
		Amount:         req.Amount.Round(2),
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		SenderName:     req.SenderName,
		Message:        req.Message,
		Status:         StatusSent,
		SentAt:         s.now().UTC(),
	}
	if err := s.sender.Send(ctx, card); err != nil {
		return GiftCard{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "gift card delivery failed")
	}

	s.metrics.IncGiftCardSent(card.Template.String())
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "code", card.Code), "giftcard.sent")
	}
	return card, nil
}

func (s *Service) check(req Request) error {
	details := map[string]string{}
	if err := s.validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				details[fe.Field()] = fieldMessage(fe)
			}
		} else {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
		}
	}
	if _, ok := details["template"]; !ok {
		if _, known := templateByID(req.Template); !known {
			details["template"] = "is not a known template"
		}
	}
	switch {
	case req.Amount.LessThan(s.cfg.MinAmount):
		details["amount"] = fmt.Sprintf("must be at least %s", s.cfg.MinAmount.String())
	case req.Amount.GreaterThan(s.cfg.MaxAmount):
		details["amount"] = fmt.Sprintf("must be at most %s", s.cfg.MaxAmount.String())
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	}
	return "is invalid"
}
