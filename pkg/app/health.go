package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}

// Pinger is satisfied by the Mongo client; tests substitute a fake.
type Pinger interface {
	Ping(ctx context.Context) error
}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

type HealthHandler struct {
	database Pinger
	cache    Pinger
	log      *logger.Logger
}

// NewHealthHandler reports readiness of Mongo and, when configured, Redis.
func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client, log *logger.Logger) *HealthHandler {
	h := &HealthHandler{log: log}
	if mongoClient != nil {
		h.database = mongoPinger{client: mongoClient}
	}
	if redisClient != nil {
		h.cache = redisPinger{client: redisClient}
	}
	return h
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ready", Database: "ok"}
	status := http.StatusOK

	if h.database == nil {
		resp.Database = "not configured"
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	} else if err := h.database.Ping(ctx); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		resp.Database = "error"
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		resp.Cache = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			h.log.Error("Cache health check failed",
				"error", err,
				"path", r.URL.Path,
			)
			resp.Cache = "error"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
