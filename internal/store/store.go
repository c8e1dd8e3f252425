// Package store owns the registration list. Every operation reloads the full
// list from the backend blob, mutates it, and writes the whole blob back.
package store

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"concert-registration/internal/models"
	"concert-registration/internal/storage"
)

// BlobKey is the backend key the registration list lives under.
const BlobKey = "inscriptions"

type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	now     func() time.Time
}

func New(backend storage.Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// load reads the persisted list. A missing or unreadable blob degrades to an
// empty list rather than failing the operation.
func (s *Store) load() []models.Registration {
	b, ok, err := s.backend.Get(BlobKey)
	if err != nil || !ok {
		return nil
	}
	var recs []models.Registration
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil
	}
	return recs
}

func (s *Store) save(recs []models.Registration) error {
	if recs == nil {
		recs = []models.Registration{}
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return s.backend.Set(BlobKey, b)
}

// Add assigns the next id, stamps the derived fields, and persists. Business
// validation (age range, required category, fees) happens in the callers.
func (s *Store) Add(rec models.Registration) (models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.load()
	maxID := 0
	for _, r := range recs {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	rec.ID = maxID + 1
	rec.Status = models.StatusPending
	rec.CreatedDate = s.now().Format(models.DateLayout)
	rec.ConfirmedBy = ""
	rec.ConfirmedDate = ""

	recs = append(recs, rec)
	if err := s.save(recs); err != nil {
		return models.Registration{}, err
	}
	return rec, nil
}

// List returns all records in insertion order.
func (s *Store) List() []models.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// FindByContact returns the first record whose contact matches phone exactly.
func (s *Store) FindByContact(phone string) (models.Registration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.load() {
		if r.Contact == phone {
			return r, true
		}
	}
	return models.Registration{}, false
}

// Confirm flips a pending record to confirmed and stamps who did it and when.
// Returns false when the id is unknown or the record was already confirmed;
// confirmation is one-way and never restamped.
func (s *Store) Confirm(id int, adminName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.load()
	for i := range recs {
		if recs[i].ID != id {
			continue
		}
		if recs[i].Confirmed() {
			return false, nil
		}
		recs[i].Status = models.StatusConfirmed
		recs[i].ConfirmedBy = adminName
		recs[i].ConfirmedDate = s.now().Format(models.DateLayout)
		if err := s.save(recs); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Delete removes the record with the given id. Returns whether a record was
// actually removed.
func (s *Store) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.load()
	kept := recs[:0]
	removed := false
	for _, r := range recs {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}
	if err := s.save(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Filter narrows the list by status, category, and a free-text search, in
// that order. Empty criteria are no-ops.
func (s *Store) Filter(f Filter) []models.Registration {
	return Apply(s.List(), f)
}

// Stats aggregates over the full list.
func (s *Store) Stats() models.Stats {
	return Summarize(s.List())
}

// Filter holds the optional admin-view criteria.
type Filter struct {
	Status   string
	Category string
	Search   string
}

// Apply filters a slice without touching storage, preserving order. The
// search matches the name case-insensitively or the contact as a plain
// substring.
func Apply(recs []models.Registration, f Filter) []models.Registration {
	out := recs
	if f.Status != "" {
		out = keep(out, func(r models.Registration) bool { return r.Status == f.Status })
	}
	if f.Category != "" {
		out = keep(out, func(r models.Registration) bool { return r.Category == f.Category })
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		out = keep(out, func(r models.Registration) bool {
			return strings.Contains(strings.ToLower(r.Name), needle) ||
				strings.Contains(r.Contact, f.Search)
		})
	}
	return out
}

func keep(recs []models.Registration, pred func(models.Registration) bool) []models.Registration {
	out := make([]models.Registration, 0, len(recs))
	for _, r := range recs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize computes counts and amount totals over a slice.
func Summarize(recs []models.Registration) models.Stats {
	var st models.Stats
	for _, r := range recs {
		st.Total++
		st.TotalAmount += r.Amount
		if r.Confirmed() {
			st.ConfirmedCount++
			st.ConfirmedAmount += r.Amount
		} else {
			st.PendingCount++
		}
	}
	return st
}
