package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"concert-registration/internal/config"
	"concert-registration/internal/export"
	"concert-registration/internal/models"
	"concert-registration/internal/notify"
	"concert-registration/internal/service"
	"concert-registration/internal/session"
	"concert-registration/internal/store"
	"concert-registration/internal/util"
)

var validate = validator.New()

type handlers struct {
	cfg      config.Config
	svc      *service.Service
	sessions *session.Store
	notifier notify.Notifier
}

func New(cfg config.Config, svc *service.Service, sessions *session.Store, notifier notify.Notifier) *http.Server {
	h := &handlers{cfg: cfg, svc: svc, sessions: sessions, notifier: notifier}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/registrations", h.register)
	mux.HandleFunc("GET /api/registrations", h.list)
	mux.HandleFunc("GET /api/registrations/verify", h.verify)
	mux.HandleFunc("POST /api/registrations/{id}/confirm", h.confirm)
	mux.HandleFunc("DELETE /api/registrations/{id}", h.remove)
	mux.HandleFunc("GET /api/stats", h.stats)
	mux.HandleFunc("POST /api/admin/login", h.login)
	mux.HandleFunc("POST /api/admin/logout", h.logout)
	mux.HandleFunc("GET /api/admin/session", h.currentSession)
	mux.HandleFunc("GET /export/registrations.csv", h.exportCSV)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": "error", "message": msg})
}

// requireAdmin resolves the bearer token (or session cookie) against the
// session slot. Writes the 401 itself so handlers can just bail out.
func (h *handlers) requireAdmin(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || token == r.Header.Get("Authorization") {
		if c, err := r.Cookie("session_token"); err == nil {
			token = c.Value
		}
	}
	sess, ok := h.sessions.Current()
	if !ok || token == "" || token != sess.Token {
		writeError(w, http.StatusUnauthorized, "authentification requise")
		return models.Session{}, false
	}
	return sess, true
}

type registrationRequest struct {
	Type            string `json:"type_inscription" validate:"required,oneof=participant attendee"`
	Name            string `json:"nom" validate:"required"`
	Age             int    `json:"age" validate:"required,gte=12,lte=60"`
	Contact         string `json:"contact" validate:"required"`
	Category        string `json:"categorie" validate:"required_if=Type participant,omitempty,oneof=chant danse imitation"`
	VideoLink       string `json:"video" validate:"required_if=Type participant"`
	TransactionCode string `json:"code_transaction" validate:"required"`
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corps JSON invalide")
		return
	}
	// trim before validating so whitespace-only fields fail "required"
	req.Name = strings.TrimSpace(req.Name)
	req.Contact = strings.TrimSpace(req.Contact)
	req.TransactionCode = strings.TrimSpace(req.TransactionCode)
	req.VideoLink = strings.TrimSpace(req.VideoLink)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := models.Registration{
		Type:            req.Type,
		Name:            req.Name,
		Age:             req.Age,
		Contact:         req.Contact,
		TransactionCode: req.TransactionCode,
		Amount:          h.cfg.FeeFor(req.Type),
	}
	if req.Type == models.TypeParticipant {
		rec.Category = req.Category
		rec.VideoLink = req.VideoLink
	}

	res, err := h.svc.Add(r.Context(), rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	go h.notifier.RegistrationReceived(res.Registration)

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":     "success",
		"id":         res.Registration.ID,
		"local_only": res.LocalOnly,
		"ts":         util.NowISO(),
	})
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	f := store.Filter{
		Status:   r.URL.Query().Get("statut"),
		Category: r.URL.Query().Get("categorie"),
		Search:   r.URL.Query().Get("search"),
	}
	writeJSON(w, http.StatusOK, h.svc.Filter(r.Context(), f))
}

func (h *handlers) verify(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if phone == "" {
		writeError(w, http.StatusBadRequest, "phone requis")
		return
	}
	rec, ok := h.svc.Verify(r.Context(), phone)
	if !ok {
		writeError(w, http.StatusNotFound, "aucune inscription trouvée")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handlers) confirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id invalide")
		return
	}
	confirmed, err := h.svc.Confirm(r.Context(), id, sess.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !confirmed {
		writeError(w, http.StatusNotFound, "inscription introuvable ou déjà confirmée")
		return
	}
	for _, rec := range h.svc.List(r.Context()) {
		if rec.ID == id {
			go h.notifier.RegistrationConfirmed(rec, sess.Name)
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "id": id})
}

func (h *handlers) remove(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id invalide")
		return
	}
	removed, err := h.svc.Delete(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "inscription introuvable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "id": id})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Stats(r.Context()))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corps JSON invalide")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := h.sessions.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, session.ErrLockedOut):
		writeError(w, http.StatusTooManyRequests, "compte temporairement bloqué")
		return
	case err != nil:
		writeError(w, http.StatusUnauthorized, "email ou mot de passe incorrect")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.UnixMilli(sess.ExpiresAt),
	})
	writeJSON(w, http.StatusOK, sess)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	http.SetCookie(w, &http.Cookie{Name: "session_token", Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func (h *handlers) currentSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// exportCSV serves the admin export. Accessible with a live session or with
// a pre-shared HMAC token so the link can be handed out without a login.
func (h *handlers) exportCSV(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token != util.HMACSHA256Hex(h.cfg.ExportTokenSecret, "export:inscriptions") {
		if _, ok := h.requireAdmin(w, r); !ok {
			return
		}
	}
	data := export.CSV(h.svc.List(r.Context()))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	_, _ = w.Write(data)
}
