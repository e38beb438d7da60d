package handler

import (
	"net/http"

	"fullmoon/internal/facilities/service"
	"fullmoon/pkg/auth"
	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.BookRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Book", err)
		return
	}

	booking, err := h.service.Book(r.Context(), auth.FromContext(r.Context()), req)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.ListMine(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Cancel(r.Context(), auth.FromContext(r.Context()), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/facilities/bookings", h.Book)
	router.GET("/api/v1/facilities/bookings/mine", h.ListMine)
	router.POST("/api/v1/facilities/bookings/id/:id/cancel", h.Cancel)
}
