package handler

import (
	"net/http"

	"fullmoon/internal/bookings/service"
	"fullmoon/pkg/auth"
	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

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

// confirmationResponse carries the reference the guest uses to look the
// reservation up again.
type confirmationResponse struct {
	Reference   string             `json:"reference"`
	Reservation *model.Reservation `json:"reservation"`
}

func (h *BookingHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.SearchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Search", err)
		return
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	guests, err := httputil.QueryInt(r, "guests")
	if err != nil {
		h.writeError(w, "Quote", err)
		return
	}

	query := r.URL.Query()
	quote, err := h.service.Prepare(r.Context(), service.PrepareRequest{
		RoomID:   query.Get("room_id"),
		CheckIn:  query.Get("check_in"),
		CheckOut: query.Get("check_out"),
		Guests:   guests,
	})
	if err != nil {
		h.writeError(w, "Quote", err)
		return
	}

	if err := httputil.WriteSuccess(w, quote); err != nil {
		h.log.Error("failed to write success response", "handler", "Quote", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.ConfirmRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Confirm", err)
		return
	}

	reservation, err := h.service.Confirm(r.Context(), auth.FromContext(r.Context()), req)
	if err != nil {
		h.writeError(w, "Confirm", err)
		return
	}

	if err := httputil.WriteCreated(w, confirmationResponse{
		Reference:   reservation.ID,
		Reservation: reservation,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Confirm", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByReference(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.service.GetByReference(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByReference", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByReference", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	status := r.URL.Query().Get("status")
	reservations, total, err := h.service.List(r.Context(), auth.FromContext(r.Context()), limit, offset, status)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.Cancel(r.Context(), auth.FromContext(r.Context()), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/rooms/availability", h.Search)
	router.GET("/api/v1/bookings/quote", h.Quote)
	router.POST("/api/v1/bookings", h.Confirm)
	router.GET("/api/v1/reservations/guest/:id", h.GetByReference)

	router.GET("/api/v1/admin/reservations", h.List)
	router.POST("/api/v1/admin/reservations/id/:id/cancel", h.Cancel)
}
