package giftcards

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/angelmondragon/cafe-companion/pkg/config"
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/ids"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
	"github.com/angelmondragon/cafe-companion/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	sent []GiftCard
	err  error
}

func (s *stubSender) Send(ctx context.Context, card GiftCard) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, card)
	return nil
}

func testConfig() config.GiftCardConfig {
	return config.GiftCardConfig{
		DefaultAmount: decimal.NewFromInt(25),
		MinAmount:     decimal.NewFromInt(5),
		MaxAmount:     decimal.NewFromInt(500),
	}
}

func newTestService(t *testing.T, sender Sender, reg prometheus.Registerer) *Service {
	t.Helper()
	gen, err := ids.NewGenerator(7)
	require.NoError(t, err)
	svc, err := NewService(testConfig(), sender, gen, metrics.NewStorefront(reg), logger.Nop())
	require.NoError(t, err)
	return svc
}

func validRequest() Request {
	return Request{
		Template:       enums.GiftCardTemplateBirthday,
		Amount:         decimal.NewFromInt(25),
		RecipientName:  "Sam",
		RecipientEmail: "sam@example.com",
		SenderName:     "Alex",
		Message:        "Happy birthday!",
	}
}

func TestTemplatesAndPresets(t *testing.T) {
	got := Templates()
	require.Len(t, got, 6)
	for _, tpl := range got {
		assert.True(t, tpl.ID.IsValid(), tpl.ID)
	}
	assert.Equal(t, enums.GiftCardTemplateCustom, got[5].ID)

	presets := PresetAmounts()
	require.Len(t, presets, 4)
	assert.Equal(t, "10", presets[0].String())
	assert.Equal(t, "100", presets[3].String())
}

func TestSendIssuesCard(t *testing.T) {
	sender := &stubSender{}
	reg := prometheus.NewRegistry()
	svc := newTestService(t, sender, reg)

	card, err := svc.Send(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(card.Code, "GC-"), card.Code)
	assert.Equal(t, StatusSent, card.Status)
	assert.Equal(t, "25.00", card.Amount.StringFixed(2))
	assert.False(t, card.SentAt.IsZero())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, card, sender.sent[0])

	second, err := svc.Send(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, card.Code, second.Code)
}

func TestSendValidation(t *testing.T) {
	tests := map[string]struct {
		mutate func(*Request)
		field  string
	}{
		"unknown template": {func(r *Request) { r.Template = "anniversary" }, "template"},
		"missing template": {func(r *Request) { r.Template = "" }, "template"},
		"amount too low":   {func(r *Request) { r.Amount = decimal.RequireFromString("4.99") }, "amount"},
		"amount too high":  {func(r *Request) { r.Amount = decimal.NewFromInt(501) }, "amount"},
		"no recipient":     {func(r *Request) { r.RecipientName = "   " }, "recipient_name"},
		"bad email":        {func(r *Request) { r.RecipientEmail = "sam-at-example" }, "recipient_email"},
		"no sender":        {func(r *Request) { r.SenderName = "" }, "sender_name"},
		"long message":     {func(r *Request) { r.Message = strings.Repeat("x", 501) }, "message"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			sender := &stubSender{}
			svc := newTestService(t, sender, nil)
			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Send(context.Background(), req)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			details, ok := typed.Details().(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tc.field)
			assert.Empty(t, sender.sent)
		})
	}
}

func TestSendBoundaryAmountsAccepted(t *testing.T) {
	svc := newTestService(t, &stubSender{}, nil)
	for _, amt := range []string{"5", "500"} {
		req := validRequest()
		req.Amount = decimal.RequireFromString(amt)
		_, err := svc.Send(context.Background(), req)
		assert.NoError(t, err, amt)
	}
}

func TestSendSenderFailure(t *testing.T) {
	svc := newTestService(t, &stubSender{err: errors.New("smtp down")}, nil)
	_, err := svc.Send(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	gen, err := ids.NewGenerator(1)
	require.NoError(t, err)
	_, err = NewService(testConfig(), nil, gen, nil, nil)
	assert.Error(t, err)
	_, err = NewService(testConfig(), LogSender{}, nil, nil, nil)
	assert.Error(t, err)
}
