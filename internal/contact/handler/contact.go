package handler

import (
	"net/http"

	"fullmoon/internal/contact/service"
	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

func NewContactHandler(service service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log,
	}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.ContactRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Submit", err)
		return
	}

	if err := h.service.Submit(r.Context(), req); err != nil {
		h.writeError(w, "Submit", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"message": "Thank you for your message. We will get back to you soon."}); err != nil {
		h.log.Error("failed to write response", "handler", "Submit", "operation", "WriteJSON", "error", err)
	}
}

func (h *ContactHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ContactHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/contact", h.Submit)
}
