package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ataousCode/agro-backend/internal/models"
)

// TelegramService pushes operational notifications to the admin chat.
// All methods are nil-safe and best-effort; a failed send only logs.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, adminChatID int64) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramService{bot: bot, chatID: adminChatID}, nil
}

func (t *TelegramService) NotifyNewOrder(order *models.Order, user *models.User) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	text := fmt.Sprintf(
		"New order #%d\nCustomer: %s (%s)\nItems: %d\nTotal: %.2f\nPayment: %s",
		order.ID, user.Name, user.Email, len(order.Items), order.TotalPrice, order.PaymentMethod,
	)
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[telegram][order] notify failed for order %d: %v", order.ID, err)
	}
}
