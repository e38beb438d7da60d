package handler

import (
	"net/http"

	"fullmoon/internal/auth/service"
	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type LoginHandler struct {
	service service.LoginService
	log     *logger.Logger
}

func NewLoginHandler(service service.LoginService, log *logger.Logger) *LoginHandler {
	return &LoginHandler{
		service: service,
		log:     log,
	}
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LoginHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *LoginHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/login", h.Login)
}
