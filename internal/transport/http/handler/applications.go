package handler

import (
	"net/http"

	"github.com/internship-api/internal/application/application"
	"github.com/internship-api/internal/domain"
	"github.com/internship-api/internal/transport/http/middleware"
)

// ApplicationHandler handles internship application endpoints.
type ApplicationHandler struct {
	svc application.Service
}

func NewApplicationHandler(svc application.Service) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
		return
	}
	var req domain.SubmitApplicationRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.svc.Submit(r.Context(), u.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, a)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
		return
	}
	apps, err := h.svc.ListMine(r.Context(), u.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, apps)
}

func (h *ApplicationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListAll(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, apps)
}
