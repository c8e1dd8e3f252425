package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"concert-registration/internal/models"
)

// SheetRegistrations is the tab holding one row per registration. Columns
// A..L match the web-app header set:
// id, date_inscription, nom, age, contact, type_inscription, categorie,
// montant, code_transaction, statut, confirme_par, date_confirmation.
const SheetRegistrations = "Inscriptions"

func (c *Client) List(ctx context.Context) ([]models.Registration, error) {
	values, err := c.readAll(ctx, SheetRegistrations)
	if err != nil {
		return nil, err
	}
	recs := []models.Registration{}
	// header row at index 0
	for i := 1; i < len(values); i++ {
		row := values[i]
		if len(row) == 0 {
			continue
		}
		id, err := strconv.Atoi(get(row, 0))
		if err != nil {
			continue
		}
		age, _ := strconv.Atoi(get(row, 3))
		amount, _ := strconv.Atoi(get(row, 7))
		recs = append(recs, models.Registration{
			ID:              id,
			CreatedDate:     get(row, 1),
			Name:            get(row, 2),
			Age:             age,
			Contact:         get(row, 4),
			Type:            get(row, 5),
			Category:        get(row, 6),
			Amount:          amount,
			TransactionCode: get(row, 8),
			Status:          get(row, 9),
			ConfirmedBy:     get(row, 10),
			ConfirmedDate:   get(row, 11),
		})
	}
	return recs, nil
}

func (c *Client) Add(ctx context.Context, rec models.Registration) (models.Registration, error) {
	values, err := c.readAll(ctx, SheetRegistrations)
	if err != nil {
		return models.Registration{}, err
	}
	maxID := 0
	for i := 1; i < len(values); i++ {
		if id, err := strconv.Atoi(get(values[i], 0)); err == nil && id > maxID {
			maxID = id
		}
	}
	rec.ID = maxID + 1
	err = c.appendRow(ctx, SheetRegistrations, []interface{}{
		rec.ID, rec.CreatedDate, rec.Name, rec.Age, rec.Contact, rec.Type,
		rec.Category, rec.Amount, rec.TransactionCode, rec.Status,
		rec.ConfirmedBy, rec.ConfirmedDate,
	})
	if err != nil {
		return models.Registration{}, err
	}
	return rec, nil
}

func (c *Client) Confirm(ctx context.Context, id int, adminName string) error {
	values, err := c.readAll(ctx, SheetRegistrations)
	if err != nil {
		return err
	}
	want := strconv.Itoa(id)
	for i := 1; i < len(values); i++ {
		if get(values[i], 0) != want {
			continue
		}
		// sheet rows are 1-indexed; columns J:L = statut, confirme_par, date_confirmation
		a1 := fmt.Sprintf("J%d:L%d", i+1, i+1)
		return c.updateRange(ctx, SheetRegistrations, a1, confirmCells(adminName, c.now()))
	}
	return fmt.Errorf("registration %d not found", id)
}

func confirmCells(adminName string, now time.Time) []interface{} {
	return []interface{}{models.StatusConfirmed, adminName, now.Format(models.DateLayout)}
}

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
