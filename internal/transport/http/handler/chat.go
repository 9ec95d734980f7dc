package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/internship-api/internal/application/chat"
	"github.com/internship-api/internal/domain"
	"github.com/internship-api/internal/transport/http/middleware"
)

// ChatHandler handles the support chat endpoints.
type ChatHandler struct {
	svc chat.Service
}

func NewChatHandler(svc chat.Service) *ChatHandler { return &ChatHandler{svc: svc} }

func (h *ChatHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
		return
	}
	c, err := h.svc.GetOrCreateMine(r.Context(), u)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
		return
	}
	var req domain.SendMessageRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.Send(r.Context(), u, req.Message)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *ChatHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	chats, err := h.svc.ListAll(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, chats)
}

func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *ChatHandler) Reply(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "unauthorized"})
		return
	}
	var req domain.SendMessageRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.Reply(r.Context(), u, chi.URLParam(r, "id"), req.Message)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *ChatHandler) Close(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}
