package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/internship-api/internal/application/admin"
	"github.com/internship-api/internal/application/application"
	"github.com/internship-api/internal/application/export"
	"github.com/internship-api/internal/domain"
	"github.com/internship-api/internal/transport/http/middleware"
)

// AdminHandler handles the admin dashboard endpoints: user management,
// application review, stats and CSV exports.
type AdminHandler struct {
	adminSvc  admin.Service
	appSvc    application.Service
	exportSvc export.Service
}

func NewAdminHandler(adminSvc admin.Service, appSvc application.Service, exportSvc export.Service) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, appSvc: appSvc, exportSvc: exportSvc}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminSvc.ListUsers(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, users)
}

func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.appSvc.ListAll(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, apps)
}

func (h *AdminHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateApplicationStatusRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.appSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, st)
}

func (h *AdminHandler) ExportApplications(w http.ResponseWriter, r *http.Request) {
	url, err := h.exportSvc.ExportApplications(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"url": url})
}

func (h *AdminHandler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	url, err := h.exportSvc.ExportUsers(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"url": url})
}

func (h *AdminHandler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.adminSvc.VerifyUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (h *AdminHandler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	u, err := h.adminSvc.MakeAdmin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	acting, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
		return
	}
	if err := h.adminSvc.DeleteUser(r.Context(), acting.UserID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "user deleted")
}
