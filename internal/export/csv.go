// Package export renders the registration list as the CSV the organizers
// import into their bookkeeping sheet.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"concert-registration/internal/models"
)

var headers = []string{
	"ID", "Nom", "Âge", "Contact", "Type", "Catégorie", "Montant",
	"Statut", "Date Inscription", "Date Confirmation", "Confirmé par",
}

// CSV renders one row per record in a fixed column order, header row first.
// The free-text name and contact columns are always quoted, matching the
// export format the organizers already consume.
func CSV(recs []models.Registration) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, ","))
	buf.WriteByte('\n')
	for _, r := range recs {
		row := []string{
			strconv.Itoa(r.ID),
			quote(r.Name),
			strconv.Itoa(r.Age),
			quote(r.Contact),
			r.Type,
			r.Category,
			strconv.Itoa(r.Amount),
			r.Status,
			r.CreatedDate,
			r.ConfirmedDate,
			r.ConfirmedBy,
		}
		buf.WriteString(strings.Join(row, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename carries the export date, e.g. inscriptions_2026-08-29.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("inscriptions_%s.csv", now.Format(models.DateLayout))
}
