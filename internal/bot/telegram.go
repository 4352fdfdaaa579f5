package bot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"rates-bot/internal/handlers"
	"rates-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const pollTimeout = 60

// Telegram is the long-polling transport. It implements handlers.Sender.
type Telegram struct {
	api *tgbotapi.BotAPI
	log *logrus.Entry
}

// NewTelegram connects with token. proxy, when set, is used for every
// request to the Bot API (http, https and socks5 URLs are accepted).
func NewTelegram(token, proxy string, debug bool, log *logrus.Logger) (*Telegram, error) {
	client, err := httpClient(proxy)
	if err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	api.Debug = debug

	entry := log.WithField("bot", api.Self.UserName)
	entry.Info("telegram bot authorized")
	return &Telegram{api: api, log: entry}, nil
}

func httpClient(proxy string) (*http.Client, error) {
	if proxy == "" {
		return &http.Client{}, nil
	}
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("invalid PROXY_BACKEND: %w", err)
	}
	return &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)}}, nil
}

// Updates streams incoming text messages until ctx is done. The returned
// channel is closed afterwards.
func (t *Telegram) Updates(ctx context.Context) <-chan handlers.Message {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	updates := t.api.GetUpdatesChan(cfg)

	out := make(chan handlers.Message)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				t.api.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				msg, ok := toMessage(update)
				if !ok {
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					t.api.StopReceivingUpdates()
					return
				}
			}
		}
	}()
	return out
}

func toMessage(update tgbotapi.Update) (handlers.Message, bool) {
	m := update.Message
	if m == nil || m.Text == "" || m.Chat == nil {
		return handlers.Message{}, false
	}

	msg := handlers.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
	}
	if m.From != nil {
		msg.From = &models.ChatUser{
			UserID:    m.From.ID,
			UserName:  m.From.UserName,
			FirstName: m.From.FirstName,
			LastName:  m.From.LastName,
		}
	}
	return msg, true
}

func (t *Telegram) SendText(_ context.Context, chatID int64, replyTo int, text string) error {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyToMessageID = replyTo
	if _, err := t.api.Send(reply); err != nil {
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return nil
}

func (t *Telegram) SendPhoto(_ context.Context, chatID int64, replyTo int, png []byte) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "history.png", Bytes: png})
	photo.ReplyToMessageID = replyTo
	if _, err := t.api.Send(photo); err != nil {
		return fmt.Errorf("send photo to %d: %w", chatID, err)
	}
	return nil
}
