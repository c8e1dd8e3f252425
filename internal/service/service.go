// Package service front-ends the local store with an optional remote system
// of record. The remote wins when reachable; every failure falls back to the
// local store so registration keeps working offline. The two stores may
// diverge until someone reconciles the spreadsheet by hand.
package service

import (
	"context"
	"log"

	"concert-registration/internal/models"
	"concert-registration/internal/remote"
	"concert-registration/internal/store"
)

type Service struct {
	store  *store.Store
	remote remote.Client // nil when running local-only
}

func New(st *store.Store, rc remote.Client) *Service {
	return &Service{store: st, remote: rc}
}

// AddResult reports where a new registration ended up. LocalOnly marks
// records that never reached the remote store.
type AddResult struct {
	Registration models.Registration
	LocalOnly    bool
}

// Add forwards the registration to the remote store and mirrors it into the
// local backup either way. When the remote call fails, the local record is
// the result.
func (s *Service) Add(ctx context.Context, rec models.Registration) (AddResult, error) {
	if s.remote == nil {
		saved, err := s.store.Add(rec)
		return AddResult{Registration: saved, LocalOnly: true}, err
	}

	sent, remoteErr := s.remote.Add(ctx, rec)
	local, localErr := s.store.Add(rec)
	if remoteErr != nil {
		log.Printf("remote add failed, kept local copy: %v", remoteErr)
		return AddResult{Registration: local, LocalOnly: true}, localErr
	}
	if localErr != nil {
		log.Printf("local backup of registration %d failed: %v", sent.ID, localErr)
	}
	return AddResult{Registration: sent}, nil
}

// List prefers the remote rows, falling back to the local backup.
func (s *Service) List(ctx context.Context) []models.Registration {
	if s.remote == nil {
		return s.store.List()
	}
	recs, err := s.remote.List(ctx)
	if err != nil {
		log.Printf("remote list failed, serving local copy: %v", err)
		return s.store.List()
	}
	return recs
}

// Filter applies the admin-view criteria to the listed rows.
func (s *Service) Filter(ctx context.Context, f store.Filter) []models.Registration {
	return store.Apply(s.List(ctx), f)
}

// Verify returns the first registration whose contact matches phone exactly.
func (s *Service) Verify(ctx context.Context, phone string) (models.Registration, bool) {
	for _, r := range s.List(ctx) {
		if r.Contact == phone {
			return r, true
		}
	}
	return models.Registration{}, false
}

// Confirm marks a registration confirmed, remotely when possible. A remote
// confirmation is not mirrored locally; the backup stays pending until the
// next reconciliation.
func (s *Service) Confirm(ctx context.Context, id int, adminName string) (bool, error) {
	if s.remote == nil {
		return s.store.Confirm(id, adminName)
	}
	if err := s.remote.Confirm(ctx, id, adminName); err != nil {
		log.Printf("remote confirm failed, confirming locally: %v", err)
		return s.store.Confirm(id, adminName)
	}
	return true, nil
}

// Delete removes a registration from the local store. The remote protocol
// has no delete action; spreadsheet rows are pruned by hand.
func (s *Service) Delete(id int) (bool, error) {
	return s.store.Delete(id)
}

// Stats aggregates over the listed rows.
func (s *Service) Stats(ctx context.Context) models.Stats {
	return store.Summarize(s.List(ctx))
}
