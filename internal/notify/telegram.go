// Package notify tells the studio's managers about new reservations.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"eclat/internal/model"
)

// Notifier announces accepted reservations.
type Notifier interface {
	NotifyReservation(ctx context.Context, res model.Reservation) error
}

// TelegramNotifier sends reservation notices to manager chats, rate limited
// so a burst of bookings cannot trip Telegram's flood control.
type TelegramNotifier struct {
	api     *tgbotapi.BotAPI
	limiter *rate.Limiter
	chatIDs []int64
	logger  *zerolog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token and chats.
func NewTelegramNotifier(token string, chatIDs []int64, logger *zerolog.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(20), 30),
		chatIDs: chatIDs,
		logger:  logger,
	}, nil
}

// NotifyReservation sends the reservation notice to every manager chat.
// Delivery failures are logged per chat; the first error is returned after
// all chats have been attempted.
func (n *TelegramNotifier) NotifyReservation(ctx context.Context, res model.Reservation) error {
	text := FormatReservationNotice(res)

	var firstErr error
	for _, chatID := range n.chatIDs {
		if err := n.limiter.Wait(ctx); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := n.api.Send(msg); err != nil {
			n.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send reservation notice")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// FormatReservationNotice formats a reservation for the manager chat.
func FormatReservationNotice(res model.Reservation) string {
	return fmt.Sprintf(`💄 *Nouvelle réservation #%d*

✨ %s (%s)
📅 %s à %s
⏱ %d min
💶 %.2f €

👤 %s %s
📧 %s
📱 %s`,
		res.ID,
		res.ItemName,
		res.Kind,
		res.Date,
		res.TimeSlot,
		res.DurationMinutes,
		float64(res.PriceCents)/100,
		res.FirstName,
		res.LastName,
		res.Email,
		res.Phone,
	)
}
