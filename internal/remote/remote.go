// Package remote talks to the spreadsheet-backed system of record. Callers
// treat any returned error as "remote unavailable" and fall back to the
// local store; the fallback decision itself lives in the service layer.
package remote

import (
	"context"

	"concert-registration/internal/models"
)

// Client is the operations the sync layer forwards to the remote store.
type Client interface {
	Add(ctx context.Context, rec models.Registration) (models.Registration, error)
	List(ctx context.Context) ([]models.Registration, error)
	Confirm(ctx context.Context, id int, adminName string) error
}
