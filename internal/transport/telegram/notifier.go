package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/habeshapay/telebirr_verify_bot/internal/core/ports"
)

// Notifier implements the outbound notification edge on the Telegram Bot
// API.
type Notifier struct {
	api *tgbotapi.BotAPI
}

func NewNotifier(api *tgbotapi.BotAPI) *Notifier {
	return &Notifier{api: api}
}

var _ ports.Notifier = (*Notifier)(nil)

func (n *Notifier) SendText(ctx context.Context, to ports.Recipient, text string) error {
	msg := tgbotapi.NewMessage(int64(to), text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (n *Notifier) SendPhoto(ctx context.Context, to ports.Recipient, image []byte, caption string) error {
	photo := tgbotapi.NewPhoto(int64(to), tgbotapi.FileBytes{Name: "qr_code.png", Bytes: image})
	photo.Caption = caption
	if _, err := n.api.Send(photo); err != nil {
		return fmt.Errorf("failed to send photo: %w", err)
	}
	return nil
}

func (n *Notifier) SendLocation(ctx context.Context, to ports.Recipient, latitude, longitude float64) error {
	loc := tgbotapi.NewLocation(int64(to), latitude, longitude)
	if _, err := n.api.Send(loc); err != nil {
		return fmt.Errorf("failed to send location: %w", err)
	}
	return nil
}

func (n *Notifier) SendDocument(ctx context.Context, to ports.Recipient, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(int64(to), tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	if _, err := n.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}
