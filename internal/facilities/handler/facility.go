package handler

import (
	"net/http"

	"fullmoon/internal/facilities/service"
	"fullmoon/pkg/auth"
	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type FacilityHandler struct {
	service service.FacilityService
	log     *logger.Logger
}

func NewFacilityHandler(service service.FacilityService, log *logger.Logger) *FacilityHandler {
	return &FacilityHandler{
		service: service,
		log:     log,
	}
}

func (h *FacilityHandler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	facilities, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.writeError(w, "ListAvailable", err)
		return
	}

	if err := httputil.WriteSuccess(w, facilities); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAvailable", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FacilityHandler) ListByType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	facilities, err := h.service.ListByType(r.Context(), ps.ByName("type"))
	if err != nil {
		h.writeError(w, "ListByType", err)
		return
	}

	if err := httputil.WriteSuccess(w, facilities); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByType", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	facilities, total, err := h.service.List(r.Context(), auth.FromContext(r.Context()), limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, facilities, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var facility model.Facility
	if err := httputil.DecodeJSON(r, &facility); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), auth.FromContext(r.Context()), &facility); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, facility); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *FacilityHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.FacilityUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	facility, err := h.service.Update(r.Context(), auth.FromContext(r.Context()), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, facility); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FacilityHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), auth.FromContext(r.Context()), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *FacilityHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *FacilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/facilities", h.ListAvailable)
	router.GET("/api/v1/facilities/type/:type", h.ListByType)

	router.GET("/api/v1/admin/facilities", h.List)
	router.POST("/api/v1/admin/facilities", h.Create)
	router.PATCH("/api/v1/admin/facilities/id/:id", h.Update)
	router.DELETE("/api/v1/admin/facilities/id/:id", h.Delete)
}
