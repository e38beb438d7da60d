package handler

import (
	"net/http"

	"fullmoon/internal/blog/service"
	"fullmoon/pkg/auth"
	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PostHandler struct {
	service service.PostService
	log     *logger.Logger
}

func NewPostHandler(service service.PostService, log *logger.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		log:     log,
	}
}

func (h *PostHandler) ListPublished(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "ListPublished", err)
		return
	}

	posts, total, err := h.service.ListPublished(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "ListPublished", err)
		return
	}

	if err := httputil.WritePaginated(w, posts, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListPublished", "operation", "WritePaginated", "error", err)
	}
}

func (h *PostHandler) Popular(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	posts, err := h.service.Popular(r.Context())
	if err != nil {
		h.writeError(w, "Popular", err)
		return
	}

	if err := httputil.WriteSuccess(w, posts); err != nil {
		h.log.Error("failed to write success response", "handler", "Popular", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	page, err := h.service.GetBySlug(r.Context(), ps.ByName("slug"))
	if err != nil {
		h.writeError(w, "GetBySlug", err)
		return
	}

	if err := httputil.WriteSuccess(w, page); err != nil {
		h.log.Error("failed to write success response", "handler", "GetBySlug", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PostHandler) ListByCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	posts, err := h.service.ListByCategory(r.Context(), ps.ByName("category"))
	if err != nil {
		h.writeError(w, "ListByCategory", err)
		return
	}

	if err := httputil.WriteSuccess(w, posts); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByCategory", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PostHandler) ListByTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	posts, err := h.service.ListByTag(r.Context(), ps.ByName("tag"))
	if err != nil {
		h.writeError(w, "ListByTag", err)
		return
	}

	if err := httputil.WriteSuccess(w, posts); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByTag", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	posts, total, err := h.service.List(r.Context(), auth.FromContext(r.Context()), limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, posts, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var post model.BlogPost
	if err := httputil.DecodeJSON(r, &post); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), auth.FromContext(r.Context()), &post); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, post); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.BlogPostUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	post, err := h.service.Update(r.Context(), auth.FromContext(r.Context()), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, post); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), auth.FromContext(r.Context()), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PostHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PostHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/blog", h.ListPublished)
	router.GET("/api/v1/blog/popular", h.Popular)
	router.GET("/api/v1/blog/post/:slug", h.GetBySlug)
	router.GET("/api/v1/blog/category/:category", h.ListByCategory)
	router.GET("/api/v1/blog/tag/:tag", h.ListByTag)

	router.GET("/api/v1/admin/blog", h.List)
	router.POST("/api/v1/admin/blog", h.Create)
	router.PATCH("/api/v1/admin/blog/id/:id", h.Update)
	router.DELETE("/api/v1/admin/blog/id/:id", h.Delete)
}
