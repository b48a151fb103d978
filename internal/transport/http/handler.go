package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"feefines/internal/model"
	"feefines/internal/service"
)

type Handler struct {
	svc service.FeeFineService
}

func NewHandler(svc service.FeeFineService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /accounts/{accountId}", h.GetAccount)
	mux.HandleFunc("GET /accounts/{accountId}/actions", h.ListActions)
	mux.HandleFunc("POST /accounts/{accountId}/pay", h.Pay)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("accountId")

	var req model.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	res, err := h.svc.Pay(r.Context(), accountID, req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, res)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.GetAccount(r.Context(), r.PathValue("accountId"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, acc)
}

func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.svc.FindActionsForAccount(r.Context(), r.PathValue("accountId"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if actions == nil {
		actions = []model.Feefineaction{}
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"feefineactions": actions})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrAccountNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrIneligibleAccount):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrConflict):
		// Retryable: the caller should reload and resubmit.
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
