package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"concert-registration/internal/models"
)

func TestCSV(t *testing.T) {
	recs := []models.Registration{
		{
			ID: 1, Name: "Moussa Koné", Age: 22, Contact: "+223 76 45 32 10",
			Type: models.TypeParticipant, Category: models.CategoryChant,
			Amount: 2000, Status: models.StatusConfirmed,
			CreatedDate: "2026-08-01", ConfirmedDate: "2026-08-02", ConfirmedBy: "Admin",
		},
		{
			ID: 2, Name: "Traoré, Aïcha", Age: 19, Contact: "+223 65 43 21 09",
			Type: models.TypeAttendee, Amount: 1500, Status: models.StatusPending,
			CreatedDate: "2026-08-03",
		},
	}

	lines := strings.Split(strings.TrimSpace(string(CSV(recs))), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "ID,Nom,Âge,Contact,Type,Catégorie,Montant,Statut,Date Inscription,Date Confirmation,Confirmé par", lines[0])
	require.Equal(t, `1,"Moussa Koné",22,"+223 76 45 32 10",participant,chant,2000,confirmed,2026-08-01,2026-08-02,Admin`, lines[1])
	require.Equal(t, `2,"Traoré, Aïcha",19,"+223 65 43 21 09",attendee,,1500,pending,2026-08-03,,`, lines[2])
}

func TestCSV_AlwaysQuotesTextFields(t *testing.T) {
	out := string(CSV([]models.Registration{
		{ID: 1, Name: "Plain", Age: 20, Contact: "+223"},
	}))
	require.Contains(t, out, `"Plain"`, "name is quoted even without special characters")
	require.Contains(t, out, `"+223"`, "contact is quoted even without special characters")
}

func TestCSV_EscapesEmbeddedQuotes(t *testing.T) {
	out := string(CSV([]models.Registration{
		{ID: 1, Name: `Dit "Le Roi"`, Age: 20, Contact: "+223"},
	}))
	require.Contains(t, out, `"Dit ""Le Roi"""`)
}

func TestCSV_Empty(t *testing.T) {
	out := CSV(nil)
	require.Equal(t, 1, strings.Count(string(out), "\n"), "header only")
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "inscriptions_2026-08-29.csv", Filename(now))
}
