package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"rates-bot/internal/apperrors"
	"rates-bot/internal/commands"
	"rates-bot/internal/logger"
	"rates-bot/internal/metrics"
	"rates-bot/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sent struct {
	chatID  int64
	replyTo int
	text    string
	photo   []byte
}

type recordingSender struct {
	sent []sent
	err  error
}

func (s *recordingSender) SendText(_ context.Context, chatID int64, replyTo int, text string) error {
	s.sent = append(s.sent, sent{chatID: chatID, replyTo: replyTo, text: text})
	return s.err
}

func (s *recordingSender) SendPhoto(_ context.Context, chatID int64, replyTo int, png []byte) error {
	s.sent = append(s.sent, sent{chatID: chatID, replyTo: replyTo, photo: png})
	return s.err
}

type stubRates struct {
	err error
}

func (s stubRates) Latest(context.Context, string) (*models.RateSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RateSnapshot{
		Base:  "USD",
		Rates: models.Rates{{Currency: "CAD", Value: decimal.RequireFromString("1.4416")}},
	}, nil
}

func (s stubRates) History(_ context.Context, base, _ string, _, _ *time.Time) (*models.History, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.History{
		Base: base,
		Rates: map[string]models.Rates{
			"2020-03-16": {{Currency: "CAD", Value: decimal.RequireFromString("1.3975")}},
			"2020-03-17": {{Currency: "CAD", Value: decimal.RequireFromString("1.4150")}},
		},
	}, nil
}

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) Register(_ context.Context, user models.ChatUser) error {
	return m.Called(user).Error(0)
}

func newHandler(t *testing.T, rates stubRates, users UserRegistrar) (*CommandHandler, *recordingSender, *metrics.BotMetrics) {
	t.Helper()
	sender := &recordingSender{}
	m := metrics.NewBotMetrics(prometheus.NewRegistry())
	return NewCommandHandler(rates, users, sender, m, logger.Discard()), sender, m
}

func TestHandleRepliesToCommand(t *testing.T) {
	h, sender, m := newHandler(t, stubRates{}, nil)

	h.Handle(context.Background(), Message{ChatID: 1, MessageID: 10, Text: "/exchange 10 USD to CAD"})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, sent{chatID: 1, replyTo: 10, text: "14.42"}, sender.sent[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("exchange", "ok")))
}

func TestHandleHistorySendsPhoto(t *testing.T) {
	h, sender, _ := newHandler(t, stubRates{}, nil)

	h.Handle(context.Background(), Message{ChatID: 1, MessageID: 11, Text: "/history USD CAD for 7 days"})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, 11, sender.sent[0].replyTo)
	assert.NotEmpty(t, sender.sent[0].photo)
	assert.Empty(t, sender.sent[0].text)
}

func TestHandleErrorsBecomeText(t *testing.T) {
	h, sender, m := newHandler(t, stubRates{err: apperrors.Unavailable(errors.New("refused"))}, nil)

	h.Handle(context.Background(), Message{ChatID: 1, MessageID: 12, Text: "/list"})
	h.Handle(context.Background(), Message{ChatID: 1, MessageID: 13, Text: "/exchange"})

	require.Len(t, sender.sent, 2)
	assert.Equal(t, apperrors.MsgConnection, sender.sent[0].text)
	assert.Equal(t, apperrors.MsgInvalidArguments, sender.sent[1].text)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("list", "api_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("exchange", "invalid_argument")))
}

func TestHandleHelpAndStart(t *testing.T) {
	user := models.ChatUser{UserID: 42, UserName: "alice"}
	users := &mockRegistrar{}
	users.On("Register", user).Return(nil).Once()
	h, sender, _ := newHandler(t, stubRates{}, users)

	h.Handle(context.Background(), Message{ChatID: 1, MessageID: 14, Text: "/help"})
	h.Handle(context.Background(), Message{ChatID: 1, MessageID: 15, Text: "/start", From: &user})

	require.Len(t, sender.sent, 2)
	for _, s := range sender.sent {
		assert.Equal(t, commands.HelpText(), s.text)
		assert.Zero(t, s.replyTo)
	}
	users.AssertExpectations(t)
}

func TestHandleStartStillRepliesWhenRegisterFails(t *testing.T) {
	user := models.ChatUser{UserID: 42}
	users := &mockRegistrar{}
	users.On("Register", user).Return(errors.New("db down"))
	h, sender, _ := newHandler(t, stubRates{}, users)

	h.Handle(context.Background(), Message{ChatID: 1, Text: "/start", From: &user})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, commands.HelpText(), sender.sent[0].text)
}

func TestHandleIgnoresOtherText(t *testing.T) {
	h, sender, _ := newHandler(t, stubRates{}, nil)

	h.Handle(context.Background(), Message{ChatID: 1, Text: "hello there"})
	h.Handle(context.Background(), Message{ChatID: 1, Text: "/weather Moscow"})

	assert.Empty(t, sender.sent)
}

func TestHandleSurvivesSendFailure(t *testing.T) {
	h, sender, _ := newHandler(t, stubRates{}, nil)
	sender.err = errors.New("telegram unavailable")

	assert.NotPanics(t, func() {
		h.Handle(context.Background(), Message{ChatID: 1, Text: "/list"})
	})
}
