package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"concert-registration/internal/models"
)

// Webapp reaches the registration endpoint published as a Google Apps Script
// web app: POST a JSON record to create, POST an action payload to confirm,
// GET to list all rows.
type Webapp struct {
	url    string
	client *http.Client
}

func NewWebapp(url string) *Webapp {
	return &Webapp{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type ack struct {
	Status  string `json:"status"`
	ID      int    `json:"id"`
	Message string `json:"message"`
}

func (w *Webapp) post(ctx context.Context, payload any) (ack, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ack{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return ack{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return ack{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ack{}, fmt.Errorf("webapp: unexpected status %s", resp.Status)
	}
	var a ack
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return ack{}, fmt.Errorf("webapp: decode response: %w", err)
	}
	if a.Status != "success" {
		return ack{}, fmt.Errorf("webapp: %s", a.Message)
	}
	return a, nil
}

func (w *Webapp) Add(ctx context.Context, rec models.Registration) (models.Registration, error) {
	a, err := w.post(ctx, rec)
	if err != nil {
		return models.Registration{}, err
	}
	if a.ID > 0 {
		rec.ID = a.ID
	}
	return rec, nil
}

func (w *Webapp) List(ctx context.Context) ([]models.Registration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webapp: unexpected status %s", resp.Status)
	}
	var recs []models.Registration
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		return nil, fmt.Errorf("webapp: decode rows: %w", err)
	}
	return recs, nil
}

type confirmPayload struct {
	Action    string `json:"action"`
	ID        int    `json:"id"`
	AdminName string `json:"adminName"`
}

func (w *Webapp) Confirm(ctx context.Context, id int, adminName string) error {
	_, err := w.post(ctx, confirmPayload{Action: "confirm", ID: id, AdminName: adminName})
	return err
}
