// Package telegram is the chat transport: the update listen loop, command
// dispatch and the concrete Notifier. It holds no verification state of
// its own; every outcome comes from the service layer.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/habeshapay/telebirr_verify_bot/internal/apperrors"
	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
	"github.com/habeshapay/telebirr_verify_bot/internal/core/ports"
	portssvc "github.com/habeshapay/telebirr_verify_bot/internal/core/ports/services"
	"github.com/habeshapay/telebirr_verify_bot/internal/dto"
	"github.com/habeshapay/telebirr_verify_bot/internal/parser"
	"github.com/habeshapay/telebirr_verify_bot/internal/platform/config"
)

const (
	callbackBookShow     = "book_show"
	callbackConfirmReset = "confirm_reset"
)

var (
	ticketEventPattern = regexp.MustCompile(`event:\s*(.+)`)
	ticketDayPattern   = regexp.MustCompile(`Day:\s*(.+)`)
	ticketTimePattern  = regexp.MustCompile(`Time:\s*(.+)`)
)

// Bot runs the Telegram update loop and dispatches commands to the
// service layer.
type Bot struct {
	api       *tgbotapi.BotAPI
	notifier  ports.Notifier
	services  *portssvc.ServiceContainer
	extractor ports.TextExtractor // nil disables screenshot verification
	locations []config.Location
	webAppURL string
	logger    *slog.Logger
	http      *http.Client
}

func NewBot(
	api *tgbotapi.BotAPI,
	notifier ports.Notifier,
	services *portssvc.ServiceContainer,
	extractor ports.TextExtractor,
	locations []config.Location,
	webAppURL string,
	logger *slog.Logger,
) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		api:       api,
		notifier:  notifier,
		services:  services,
		extractor: extractor,
		locations: locations,
		webAppURL: webAppURL,
		logger:    logger,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Run blocks on the update channel until ctx is cancelled. A fault while
// handling one update never terminates the loop.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot listening for updates", slog.String("username", b.api.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("recovered from panic while handling update",
				slog.Int("update_id", update.UpdateID), slog.Any("panic", rec))
		}
	}()

	logger := b.logger.With(slog.Int("update_id", update.UpdateID))
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, logger, update.CallbackQuery)
	case update.Message != nil:
		if len(update.Message.Photo) > 0 {
			b.handlePhoto(ctx, logger, update.Message)
		} else {
			b.handleMessage(ctx, logger, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message) {
	text := m.Text
	if strings.TrimSpace(text) == "" {
		return
	}
	tokens := strings.Fields(text)
	command := strings.SplitN(tokens[0], "@", 2)[0]
	logger.Info("handling message",
		slog.Int64("user_id", m.From.ID), slog.String("command", command))

	chat := ports.Recipient(m.Chat.ID)
	switch command {
	case "/start", "/help":
		b.send(ctx, logger, chat, msgHelp)
	case "/verify":
		code := ""
		if len(tokens) > 1 {
			code = tokens[1]
		}
		b.handleVerify(ctx, logger, m, code)
	case "/ver":
		b.handleBulk(ctx, logger, m, text)
	case "/link1", "/link2":
		b.handleSetLink(ctx, logger, m, command, tokens)
	case "/ent":
		b.handleScheduleEntry(ctx, logger, m, tokens)
	case "/del":
		b.handleScheduleRemoval(ctx, logger, m, tokens)
	case "/ticket":
		b.handleTicket(ctx, logger, m)
	case "/booking":
		b.handleBooking(ctx, logger, m)
	case "/dat":
		b.handleExport(ctx, logger, m)
	case "/set":
		b.handleResetPrompt(logger, m)
	default:
		// Free text outside the command set goes to the AI chat
		// collaborator, which is not part of this deployment.
		logger.Info("ignoring non-command text", slog.Int64("user_id", m.From.ID))
	}
}

func (b *Bot) send(ctx context.Context, logger *slog.Logger, to ports.Recipient, text string) {
	if err := b.notifier.SendText(ctx, to, text); err != nil {
		logger.Error("failed to send message", slog.String("error", err.Error()))
	}
}

// handleVerify runs one step of the two-phase verification protocol and
// renders the outcome: plain text for registration and pending states, a
// location hint plus a QR artifact for a match.
func (b *Bot) handleVerify(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message, code string) {
	chat := ports.Recipient(m.Chat.ID)
	if !m.Chat.IsPrivate() {
		b.send(ctx, logger, chat, msgOnlyPrivateVerification)
		return
	}
	if code == "" {
		b.send(ctx, logger, chat, msgVerifyUsage)
		return
	}

	result, err := b.services.Verification.RequestVerification(ctx, code)
	if err != nil {
		logger.Error("verification request failed", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgUnavailable)
		return
	}

	switch result.Outcome {
	case dto.OutcomeRegistered:
		b.send(ctx, logger, chat, fmt.Sprintf("%s - \n%s", code, msgVerificationRecorded))
	case dto.OutcomeUnmatched:
		b.send(ctx, logger, chat, fmt.Sprintf("%s - \n%s", code, msgVerificationPending))
	case dto.OutcomeMatched:
		b.sendMatched(ctx, logger, chat, result)
	}
}

func (b *Bot) sendMatched(ctx context.Context, logger *slog.Logger, chat ports.Recipient, result dto.MatchResult) {
	if len(b.locations) > 0 {
		hint := b.locations[rand.Intn(len(b.locations))]
		if err := b.notifier.SendLocation(ctx, chat, hint.Latitude, hint.Longitude); err != nil {
			logger.Error("failed to send location hint", slog.String("error", err.Error()))
		}
	}

	png, err := qrcode.Encode(result.Code, qrcode.Medium, 256)
	if err != nil {
		logger.Error("failed to encode QR code", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, fmt.Sprintf("%s\n\n%s", msgPaymentVerified, result.Link))
		return
	}
	caption := fmt.Sprintf("%s\n\n%s\n\n%s", msgPaymentVerified, result.Link, msgScanQR)
	if err := b.notifier.SendPhoto(ctx, chat, png, caption); err != nil {
		logger.Error("failed to send QR photo", slog.String("error", err.Error()))
	}
}

// handleBulk registers a paid code from operator-pasted confirmation text.
// Text with no recognizable transaction grammar is a logged no-op.
func (b *Bot) handleBulk(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message, text string) {
	chat := ports.Recipient(m.Chat.ID)
	result, err := b.services.Verification.BulkRegister(ctx, text)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoTransaction) {
			logger.Error("failed to extract amount or transaction code from bulk text")
			return
		}
		logger.Error("bulk registration failed", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgUnavailable)
		return
	}

	switch result.Outcome {
	case dto.BulkStored:
		b.send(ctx, logger, chat, fmt.Sprintf("%s - \n%s", result.Code, msgPaidCodeStored))
	case dto.BulkAlreadyStored:
		b.send(ctx, logger, chat, msgPaidCodeExists)
	}
}

func (b *Bot) handleSetLink(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message, command string, tokens []string) {
	chat := ports.Recipient(m.Chat.ID)
	if len(tokens) < 2 {
		b.send(ctx, logger, chat, fmt.Sprintf("Usage: %s <url>", command))
		return
	}
	name := strings.TrimPrefix(command, "/")
	url := tokens[len(tokens)-1]
	if err := b.services.Schedule.SetLink(ctx, name, url); err != nil {
		logger.Error("failed to set link", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgUnavailable)
		return
	}
	b.send(ctx, logger, chat, fmt.Sprintf("%s set to: %s", capitalize(name), url))
}

func (b *Bot) handleScheduleEntry(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message, tokens []string) {
	chat := ports.Recipient(m.Chat.ID)
	req := dto.ScheduleEntryRequest{}
	if len(tokens) >= 4 {
		req = dto.ScheduleEntryRequest{Event: tokens[1], Day: tokens[2], TimeOfDay: tokens[3]}
	}
	err := b.services.Schedule.AddEntry(ctx, req)
	switch {
	case err == nil:
		b.send(ctx, logger, chat, fmt.Sprintf("%s '%s %s %s'", msgScheduleUpdated, req.Event, req.Day, req.TimeOfDay))
	case errors.Is(err, apperrors.ErrDuplicate):
		b.send(ctx, logger, chat, msgScheduleExists)
	case errors.Is(err, apperrors.ErrValidation):
		b.send(ctx, logger, chat, "Invalid schedule data. Provide all details: /ent <event> <day> <HHMM>.")
	default:
		logger.Error("failed to add schedule entry", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgUnavailable)
	}
}

func (b *Bot) handleScheduleRemoval(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message, tokens []string) {
	chat := ports.Recipient(m.Chat.ID)
	if len(tokens) < 2 {
		b.send(ctx, logger, chat, "Usage: /del <term>")
		return
	}
	term := strings.Join(tokens[1:], " ")
	removed, err := b.services.Schedule.RemoveEntries(ctx, term)
	if err != nil {
		logger.Error("failed to remove schedule entries", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgUnavailable)
		return
	}
	if removed == 0 {
		b.send(ctx, logger, chat, fmt.Sprintf("%s '%s'.", msgNoEntriesFound, term))
		return
	}
	b.send(ctx, logger, chat, fmt.Sprintf("%s '%s'.", msgRemovedEntries, term))
}

// handleTicket sends one bookable message per schedule entry. The message
// text is parsed back by the book_show callback.
func (b *Bot) handleTicket(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message) {
	chat := ports.Recipient(m.Chat.ID)
	entries, err := b.services.Schedule.ListEntries(ctx)
	if err != nil {
		logger.Error("failed to list schedule entries", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgErrorLoadingData)
		return
	}
	if len(entries) == 0 {
		b.send(ctx, logger, chat, msgNoScheduleEntries)
		return
	}

	for _, e := range entries {
		msg := tgbotapi.NewMessage(m.Chat.ID, fmt.Sprintf(ticketFormat, e.Event, e.Day, e.TimeDisplay))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(msgCompletePaymentButton, callbackBookShow),
			),
		)
		if _, err := b.api.Send(msg); err != nil {
			logger.Error("failed to send ticket message", slog.String("error", err.Error()))
		}
	}
}

func (b *Bot) handleBooking(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message) {
	if !m.Chat.IsPrivate() {
		// Point the user at a private chat; the reply goes to the user,
		// not the group.
		b.send(ctx, logger, ports.Recipient(m.From.ID), msgOnlyPrivateBooking)
		return
	}
	if b.webAppURL == "" {
		b.send(ctx, logger, ports.Recipient(m.Chat.ID), msgBookingInfo+"\nUse /ticket to pick an event.")
		return
	}
	msg := tgbotapi.NewMessage(m.Chat.ID, msgBookingInfo)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   msgOpenWebAppButton,
				WebApp: &tgbotapi.WebAppInfo{URL: b.webAppURL},
			},
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		logger.Error("failed to send booking message", slog.String("error", err.Error()))
	}
}

func (b *Bot) handleExport(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message) {
	chat := ports.Recipient(m.Chat.ID)
	export, err := b.services.LedgerAdmin.ExportDocument(ctx)
	if err != nil {
		logger.Error("ledger export failed", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgUnavailable)
		return
	}
	b.send(ctx, logger, chat, msgExportCaption+"\n"+export.Summary)
	if err := b.notifier.SendDocument(ctx, chat, export.FileName, export.Document, msgExportCaption+export.FileName); err != nil {
		logger.Error("failed to send export document", slog.String("error", err.Error()))
	}
}

func (b *Bot) handleResetPrompt(logger *slog.Logger, m *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(m.Chat.ID, msgDataResetRemind)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(msgConfirmResetButton, callbackConfirmReset),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		logger.Error("failed to send reset prompt", slog.String("error", err.Error()))
	}
}

// handlePhoto runs OCR on a confirmation screenshot and feeds the result
// through the same parse-and-verify path as typed text.
func (b *Bot) handlePhoto(ctx context.Context, logger *slog.Logger, m *tgbotapi.Message) {
	chat := ports.Recipient(m.Chat.ID)
	if b.extractor == nil {
		b.send(ctx, logger, chat, "Screenshot verification is not available. Please type /verify <code> instead.")
		return
	}

	image, err := b.downloadPhoto(ctx, m.Photo[len(m.Photo)-1].FileID)
	if err != nil {
		logger.Error("failed to download photo", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgUnavailable)
		return
	}
	text, err := b.extractor.ExtractText(ctx, image)
	if err != nil {
		logger.Error("OCR extraction failed", slog.String("error", err.Error()))
		b.send(ctx, logger, chat, msgUnavailable)
		return
	}

	record, ok := parser.Parse(text)
	if !ok {
		// Not a transaction: echo the extracted text back unprocessed.
		b.send(ctx, logger, chat, "Extracted text reads: "+text)
		return
	}

	b.send(ctx, logger, chat, "Extracted text reads: "+formatRecord(record))
	b.handleVerify(ctx, logger, m, record.Code)
}

func (b *Bot) downloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photo download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) handleCallback(ctx context.Context, logger *slog.Logger, cq *tgbotapi.CallbackQuery) {
	logger.Info("handling callback query",
		slog.Int64("user_id", cq.From.ID), slog.String("data", cq.Data))
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		logger.Warn("failed to acknowledge callback", slog.String("error", err.Error()))
	}

	switch cq.Data {
	case callbackConfirmReset:
		if err := b.services.LedgerAdmin.Reset(ctx); err != nil {
			logger.Error("ledger reset failed", slog.String("error", err.Error()))
			b.send(ctx, logger, ports.Recipient(cq.From.ID), msgUnavailable)
			return
		}
		b.send(ctx, logger, ports.Recipient(cq.From.ID), msgDataResetDone)
	case callbackBookShow:
		b.bookShow(ctx, logger, cq)
	}
}

// bookShow creates a booking from the ticket message the button was
// attached to. An unreachable recipient aborts the attempt before the
// ledger is touched.
func (b *Bot) bookShow(ctx context.Context, logger *slog.Logger, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	user := ports.Recipient(cq.From.ID)
	if err := b.notifier.SendText(ctx, user, msgBookingRequestInfo); err != nil {
		logger.Warn("failed to initiate private chat for booking",
			slog.Int64("user_id", cq.From.ID), slog.String("error", err.Error()))
		return
	}

	event, day, timeOfDay := parseTicketMessage(cq.Message.Text)
	booking, err := b.services.Booking.CreateBooking(ctx, event, day, timeOfDay)
	if err != nil {
		logger.Error("booking creation failed", slog.String("error", err.Error()))
		b.send(ctx, logger, user, msgUnavailable)
		return
	}

	b.send(ctx, logger, user, fmt.Sprintf(
		"The event '%s' is scheduled for %s at %s.\n"+
			"I've booked this event for you for the next 10 minutes with booking code %d\n%s",
		booking.Event, booking.Day, booking.Time, booking.BookingCode, msgCompletePaymentInfo))
}

// parseTicketMessage recovers event, day and time from a ticket message
// produced with ticketFormat.
func parseTicketMessage(text string) (event, day, timeOfDay string) {
	for _, segment := range strings.Split(text, "|") {
		if m := ticketEventPattern.FindStringSubmatch(segment); m != nil {
			event = firstLine(m[1])
		} else if m := ticketDayPattern.FindStringSubmatch(segment); m != nil {
			day = firstLine(m[1])
		} else if m := ticketTimePattern.FindStringSubmatch(segment); m != nil {
			timeOfDay = firstLine(m[1])
		}
	}
	return event, day, timeOfDay
}

func firstLine(s string) string {
	return strings.TrimSpace(strings.SplitN(s, "\n", 2)[0])
}

func formatRecord(r domain.TransactionRecord) string {
	return fmt.Sprintf("status: %s, amount: %s %s, date: %s %s, code: %s",
		r.Status, r.Amount, r.Currency, r.Date, r.Time, r.Code)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
