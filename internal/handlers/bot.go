package handlers

import (
	"context"
	"time"

	"rates-bot/internal/apperrors"
	"rates-bot/internal/commands"
	"rates-bot/internal/logger"
	"rates-bot/internal/metrics"
	"rates-bot/internal/models"
	"rates-bot/internal/views"

	"github.com/sirupsen/logrus"
)

// Message is an incoming chat message, independent of the transport.
type Message struct {
	ChatID    int64
	MessageID int
	Text      string
	From      *models.ChatUser
}

// Sender delivers replies. replyTo is the message being answered, 0 for none.
type Sender interface {
	SendText(ctx context.Context, chatID int64, replyTo int, text string) error
	SendPhoto(ctx context.Context, chatID int64, replyTo int, png []byte) error
}

type UserRegistrar interface {
	Register(ctx context.Context, user models.ChatUser) error
}

// CommandHandler routes bot commands to their views and sends the result.
type CommandHandler struct {
	views   map[commands.Name]views.Renderer
	users   UserRegistrar
	sender  Sender
	metrics *metrics.BotMetrics
	log     *logrus.Logger
}

// NewCommandHandler accepts a nil users, in which case /start only replies.
func NewCommandHandler(
	rates views.RatesSource,
	users UserRegistrar,
	sender Sender,
	m *metrics.BotMetrics,
	log *logrus.Logger,
) *CommandHandler {
	return &CommandHandler{
		views: map[commands.Name]views.Renderer{
			commands.List:     views.NewListView(rates),
			commands.Exchange: views.NewExchangeView(rates),
			commands.History:  views.NewHistoryView(rates, time.Now),
		},
		users:   users,
		sender:  sender,
		metrics: m,
		log:     log,
	}
}

// Handle answers one message. Anything that is not a known command is
// ignored.
func (h *CommandHandler) Handle(ctx context.Context, msg Message) {
	cmd, ok := commands.Parse(msg.Text)
	if !ok {
		return
	}

	entry := h.log.WithFields(logrus.Fields{
		"chat_id": msg.ChatID,
		"command": string(cmd.Name),
	})
	ctx = logger.WithLogger(ctx, entry)
	started := time.Now()

	switch cmd.Name {
	case commands.Start:
		h.register(ctx, msg)
		fallthrough
	case commands.Help:
		h.send(ctx, msg.ChatID, 0, views.Response{Text: commands.HelpText()})
		h.metrics.ObserveCommand(string(cmd.Name), "ok", time.Since(started).Seconds())
		return
	}

	view, ok := h.views[cmd.Name]
	if !ok {
		return
	}

	resp, err := views.Render(ctx, view, cmd.Args)
	outcome := "ok"
	if err != nil {
		outcome = apperrors.KindOf(err).String()
	}
	h.metrics.ObserveCommand(string(cmd.Name), outcome, time.Since(started).Seconds())

	entry = entry.WithField("outcome", outcome)
	switch {
	case err == nil:
		entry.Info("command handled")
	case apperrors.KindOf(err) == apperrors.KindUnexpected:
		entry.WithError(err).Error("command failed")
	default:
		entry.WithError(err).Info("command rejected")
	}

	h.send(ctx, msg.ChatID, msg.MessageID, resp)
}

func (h *CommandHandler) register(ctx context.Context, msg Message) {
	if h.users == nil || msg.From == nil {
		return
	}
	if err := h.users.Register(ctx, *msg.From); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("register user")
	}
}

func (h *CommandHandler) send(ctx context.Context, chatID int64, replyTo int, resp views.Response) {
	var err error
	if resp.IsImage() {
		err = h.sender.SendPhoto(ctx, chatID, replyTo, resp.Image)
	} else {
		err = h.sender.SendText(ctx, chatID, replyTo, resp.Text)
	}
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("send reply")
	}
}
