package handler

import (
	"net/http"

	"fullmoon/internal/rooms/service"
	"fullmoon/pkg/auth"
	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log,
	}
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

func (h *RoomHandler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.writeError(w, "ListAvailable", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAvailable", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) ListByCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rooms, err := h.service.ListByCategory(r.Context(), ps.ByName("category"))
	if err != nil {
		h.writeError(w, "ListByCategory", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByCategory", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	rooms, total, err := h.service.List(r.Context(), auth.FromContext(r.Context()), limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, rooms, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Rooms are available unless the body says otherwise.
	room := model.Room{Available: true}
	if err := httputil.DecodeJSON(r, &room); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), auth.FromContext(r.Context()), &room); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, room); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.RoomUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	room, err := h.service.Update(r.Context(), auth.FromContext(r.Context()), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) SetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req availabilityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "SetAvailability", err)
		return
	}
	if req.Available == nil {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'available' is required",
		}); err != nil {
			h.log.Error("failed to write JSON response", "handler", "SetAvailability", "operation", "WriteJSON", "error", err)
		}
		return
	}

	if err := h.service.SetAvailability(r.Context(), auth.FromContext(r.Context()), ps.ByName("id"), *req.Available); err != nil {
		h.writeError(w, "SetAvailability", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), auth.FromContext(r.Context()), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/rooms", h.ListAvailable)
	router.GET("/api/v1/rooms/id/:id", h.GetByID)
	router.GET("/api/v1/rooms/category/:category", h.ListByCategory)

	router.GET("/api/v1/admin/rooms", h.List)
	router.POST("/api/v1/admin/rooms", h.Create)
	router.PATCH("/api/v1/admin/rooms/id/:id", h.Update)
	router.DELETE("/api/v1/admin/rooms/id/:id", h.Delete)
	router.PUT("/api/v1/admin/rooms/id/:id/availability", h.SetAvailability)
}
