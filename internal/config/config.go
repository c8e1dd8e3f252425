package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"concert-registration/internal/models"
)

type Config struct {
	HTTPAddr string
	DataDir  string

	RemoteBackend string // "none", "webapp" or "sheets"
	WebappURL     string

	SpreadsheetID            string
	GoogleServiceAccountJSON string

	TelegramToken  string
	TelegramChatID int64

	Admins          []models.Admin
	MaxAttempts     int
	LockoutTime     time.Duration
	SessionDuration time.Duration

	ParticipantFee int
	AttendeeFee    int

	ExportTokenSecret string
}

func FromEnv() (Config, error) {
	var c Config
	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	c.DataDir = strings.TrimSpace(os.Getenv("DATA_DIR"))
	if c.DataDir == "" {
		c.DataDir = "./data"
	}

	c.RemoteBackend = strings.TrimSpace(os.Getenv("REMOTE_BACKEND"))
	if c.RemoteBackend == "" {
		c.RemoteBackend = "none"
	}
	c.WebappURL = strings.TrimSpace(os.Getenv("WEBAPP_URL"))
	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	switch c.RemoteBackend {
	case "none":
	case "webapp":
		if c.WebappURL == "" {
			return c, fmt.Errorf("WEBAPP_URL is empty")
		}
	case "sheets":
		if c.SpreadsheetID == "" {
			return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
		}
		if c.GoogleServiceAccountJSON == "" {
			return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
		}
	default:
		return c, fmt.Errorf("unknown REMOTE_BACKEND: %s", c.RemoteBackend)
	}

	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	c.TelegramChatID, _ = strconv.ParseInt(strings.TrimSpace(os.Getenv("TELEGRAM_ADMIN_CHAT_ID")), 10, 64)
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return c, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID is empty")
	}

	c.ParticipantFee = envInt("PARTICIPANT_FEE", 2000)
	c.AttendeeFee = envInt("ATTENDEE_FEE", 1500)

	c.MaxAttempts = 3
	c.LockoutTime = 15 * time.Minute
	c.SessionDuration = time.Hour

	if path := strings.TrimSpace(os.Getenv("ADMIN_CREDENTIALS_FILE")); path != "" {
		if err := c.loadCredentials(path); err != nil {
			return c, err
		}
	} else if email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL")); email != "" {
		name := strings.TrimSpace(os.Getenv("ADMIN_NAME"))
		if name == "" {
			name = "Administrateur Principal"
		}
		role := strings.TrimSpace(os.Getenv("ADMIN_ROLE"))
		if role == "" {
			role = "superadmin"
		}
		c.Admins = []models.Admin{{
			Email:    email,
			Password: os.Getenv("ADMIN_PASSWORD"),
			Name:     name,
			Role:     role,
		}}
	}
	if len(c.Admins) == 0 {
		return c, fmt.Errorf("no admin credentials: set ADMIN_CREDENTIALS_FILE or ADMIN_EMAIL")
	}

	c.ExportTokenSecret = strings.TrimSpace(os.Getenv("EXPORT_TOKEN_SECRET"))
	if c.ExportTokenSecret == "" {
		c.ExportTokenSecret = "change-me"
	}

	return c, nil
}

// credentialsFile mirrors the admin config shape: a credential list plus
// security parameters in milliseconds.
type credentialsFile struct {
	Credentials []models.Admin `json:"credentials"`
	Security    struct {
		MaxAttempts       int   `json:"maxAttempts"`
		LockoutTimeMs     int64 `json:"lockoutTimeMs"`
		SessionDurationMs int64 `json:"sessionDurationMs"`
	} `json:"security"`
}

func (c *Config) loadCredentials(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("admin credentials: %w", err)
	}
	var f credentialsFile
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("admin credentials: %w", err)
	}
	c.Admins = f.Credentials
	if f.Security.MaxAttempts > 0 {
		c.MaxAttempts = f.Security.MaxAttempts
	}
	if f.Security.LockoutTimeMs > 0 {
		c.LockoutTime = time.Duration(f.Security.LockoutTimeMs) * time.Millisecond
	}
	if f.Security.SessionDurationMs > 0 {
		c.SessionDuration = time.Duration(f.Security.SessionDurationMs) * time.Millisecond
	}
	return nil
}

// FeeFor returns the amount owed for a registration type. Amounts are fixed
// by type, never user-supplied.
func (c Config) FeeFor(regType string) int {
	if regType == models.TypeParticipant {
		return c.ParticipantFee
	}
	return c.AttendeeFee
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
