package models

// Registration types.
const (
	TypeParticipant = "participant"
	TypeAttendee    = "attendee"
)

// Registration statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Contest categories (participants only).
const (
	CategoryChant     = "chant"
	CategoryDanse     = "danse"
	CategoryImitation = "imitation"
)

// DateLayout is the day-granular layout used for all record dates.
const DateLayout = "2006-01-02"

// Registration is one registration row. JSON tags follow the column keys of
// the spreadsheet web app, so the same struct round-trips through the remote
// endpoint and the local blob.
type Registration struct {
	ID              int    `json:"id"`
	Type            string `json:"type_inscription"`
	Name            string `json:"nom"`
	Age             int    `json:"age"`
	Contact         string `json:"contact"`
	Category        string `json:"categorie,omitempty"` // participants only
	VideoLink       string `json:"video,omitempty"`     // participants only
	TransactionCode string `json:"code_transaction"`
	Amount          int    `json:"montant"`
	Status          string `json:"statut"`
	CreatedDate     string `json:"date_inscription"`
	ConfirmedBy     string `json:"confirme_par"`
	ConfirmedDate   string `json:"date_confirmation"`
}

// Confirmed reports whether the record has been confirmed by an admin.
func (r Registration) Confirmed() bool {
	return r.Status == StatusConfirmed
}

// Admin is one entry of the static credential list.
type Admin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin or superadmin
}

// Session is the single admin session slot. Times are unix milliseconds.
type Session struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	LoginTime int64  `json:"loginTime"`
	ExpiresAt int64  `json:"expires"`
}

// Stats aggregates counts and amounts over the registration list.
type Stats struct {
	Total           int `json:"total"`
	PendingCount    int `json:"pending"`
	ConfirmedCount  int `json:"confirmed"`
	TotalAmount     int `json:"total_amount"`
	ConfirmedAmount int `json:"confirmed_amount"`
}
