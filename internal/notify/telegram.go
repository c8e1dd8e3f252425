package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"concert-registration/internal/models"
)

// Telegram posts notices to the organizers' chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) send(text string) {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("telegram notify: %v", err)
	}
}

func (t *Telegram) RegistrationReceived(rec models.Registration) {
	text := fmt.Sprintf("📝 Nouvelle inscription #%d\n%s (%d ans), %s\nContact: %s\nMontant: %d FCFA",
		rec.ID, rec.Name, rec.Age, rec.Type, rec.Contact, rec.Amount)
	if rec.Category != "" {
		text += "\nCatégorie: " + rec.Category
	}
	t.send(text)
}

func (t *Telegram) RegistrationConfirmed(rec models.Registration, adminName string) {
	t.send(fmt.Sprintf("✅ Inscription #%d (%s) confirmée par %s", rec.ID, rec.Name, adminName))
}
