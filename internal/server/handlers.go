package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/session"
)

// AckResponse reports the acknowledgement state after an ack or unack
type AckResponse struct {
	ID           string `json:"id"`
	Acknowledged bool   `json:"acknowledged"`
}

// SessionsResponse lists the sessions currently loaded by the server
type SessionsResponse struct {
	Sessions []string `json:"sessions"`
}

type SessionHandler struct {
	registry *session.Registry
}

func NewSessionHandler(registry *session.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

func (h *SessionHandler) session(r *http.Request) *session.Session {
	return h.registry.GetOrCreate(r.Context(), chi.URLParam(r, "session"))
}

// Health handles GET /health
func (h *SessionHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// List handles GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SessionsResponse{Sessions: h.registry.Names()})
}

// Unacknowledged handles GET /{session}/unacknowledged-prs
func (h *SessionHandler) Unacknowledged(w http.ResponseWriter, r *http.Request) {
	prs, err := h.session(r).Unacknowledged(r.Context())
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writePRs(w, prs)
}

// Acknowledged handles GET /{session}/acknowledgement
func (h *SessionHandler) Acknowledged(w http.ResponseWriter, r *http.Request) {
	prs, err := h.session(r).Acknowledged(r.Context())
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writePRs(w, prs)
}

// Acknowledge handles POST /{session}/acknowledgement/{prID}
func (h *SessionHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.setAcknowledged(w, r, true)
}

// Unacknowledge handles DELETE /{session}/acknowledgement/{prID}
func (h *SessionHandler) Unacknowledge(w http.ResponseWriter, r *http.Request) {
	h.setAcknowledged(w, r, false)
}

func (h *SessionHandler) setAcknowledged(w http.ResponseWriter, r *http.Request, acknowledged bool) {
	id := chi.URLParam(r, "prID")
	s := h.session(r)

	var err error
	if acknowledged {
		err = s.Acknowledge(r.Context(), id)
	} else {
		err = s.Unacknowledge(r.Context(), id)
	}
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AckResponse{ID: id, Acknowledged: acknowledged})
}

// Refresh handles POST /{session}/refresh. The fetch itself happens on the next query.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.session(r).ForceNextRefresh(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearSession handles DELETE /{session}/clear-session
func (h *SessionHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "session")
	if err := h.registry.Remove(r.Context(), name); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"removed": name})
}

func writePRs(w http.ResponseWriter, prs []model.PR) {
	if prs == nil {
		prs = []model.PR{}
	}
	writeJSON(w, http.StatusOK, prs)
}
