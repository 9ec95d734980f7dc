package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/internship-api/internal/application/notification"
	"github.com/internship-api/internal/transport/http/middleware"
)

// NotificationHandler handles the in-app notification feed.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
		return
	}
	list, err := h.svc.ListUnread(r.Context(), u.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
		return
	}
	n, err := h.svc.MarkAsRead(r.Context(), u.UserID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, n)
}
