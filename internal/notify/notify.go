// Package notify pushes admin-facing notices about registrations. Sends are
// best-effort; a lost notice never fails the request that triggered it.
package notify

import (
	"log"

	"concert-registration/internal/models"
)

type Notifier interface {
	RegistrationReceived(rec models.Registration)
	RegistrationConfirmed(rec models.Registration, adminName string)
}

// New picks the notifier from config: Telegram when a bot token is set,
// otherwise a log-only stub.
func New(telegramToken string, chatID int64) (Notifier, error) {
	if telegramToken == "" {
		return logNotifier{}, nil
	}
	return NewTelegram(telegramToken, chatID)
}

type logNotifier struct{}

func (logNotifier) RegistrationReceived(rec models.Registration) {
	log.Printf("new registration #%d (%s, %s)", rec.ID, rec.Name, rec.Type)
}

func (logNotifier) RegistrationConfirmed(rec models.Registration, adminName string) {
	log.Printf("registration #%d confirmed by %s", rec.ID, adminName)
}
