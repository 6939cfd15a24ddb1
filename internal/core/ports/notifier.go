// Package ports holds the capability interfaces the core depends on
// abstractly; concrete implementations are injected at wiring time.
package ports

import "context"

// Recipient identifies where a notification goes (a chat ID at the
// Telegram transport).
type Recipient int64

// Notifier is the outbound edge the core calls to emit user-visible
// outcomes. The core never inspects transport-specific error types; a
// failed send aborts only the current attempt.
type Notifier interface {
	// SendText delivers a plain text message.
	SendText(ctx context.Context, to Recipient, text string) error

	// SendPhoto delivers PNG image bytes with a caption.
	SendPhoto(ctx context.Context, to Recipient, image []byte, caption string) error

	// SendLocation delivers geo coordinates.
	SendLocation(ctx context.Context, to Recipient, latitude, longitude float64) error

	// SendDocument delivers a named file attachment with a caption.
	SendDocument(ctx context.Context, to Recipient, name string, data []byte, caption string) error
}

// TextExtractor turns an image (a payment-confirmation screenshot) into
// free text. Implemented by the OCR collaborator outside this core.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}
