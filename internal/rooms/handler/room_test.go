package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fullmoon/pkg/auth"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockRoomService struct {
	listByCategoryFunc  func(ctx context.Context, category string) ([]*model.Room, error)
	createFunc          func(ctx context.Context, p *auth.Principal, room *model.Room) error
	setAvailabilityFunc func(ctx context.Context, p *auth.Principal, id string, available bool) error
}

func (m *mockRoomService) ListAvailable(ctx context.Context) ([]*model.Room, error) {
	return []*model.Room{}, nil
}

func (m *mockRoomService) ListByCategory(ctx context.Context, category string) ([]*model.Room, error) {
	return m.listByCategoryFunc(ctx, category)
}

func (m *mockRoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	return nil, apperrors.NotFoundWithID("Room", id)
}

func (m *mockRoomService) List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.Room, int64, error) {
	return nil, 0, auth.RequireAdmin(p)
}

func (m *mockRoomService) Create(ctx context.Context, p *auth.Principal, room *model.Room) error {
	return m.createFunc(ctx, p, room)
}

func (m *mockRoomService) Update(ctx context.Context, p *auth.Principal, id string, update *model.RoomUpdate) (*model.Room, error) {
	return nil, nil
}

func (m *mockRoomService) SetAvailability(ctx context.Context, p *auth.Principal, id string, available bool) error {
	return m.setAvailabilityFunc(ctx, p, id, available)
}

func (m *mockRoomService) Delete(ctx context.Context, p *auth.Principal, id string) error {
	return nil
}

func newRouter(svc *mockRoomService) *httprouter.Router {
	router := httprouter.New()
	NewRoomHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestListByCategory_Routes(t *testing.T) {
	var received string
	svc := &mockRoomService{
		listByCategoryFunc: func(ctx context.Context, category string) ([]*model.Room, error) {
			received = category
			if category == "castle" {
				return nil, apperrors.InvalidInput("Unknown room category")
			}
			return []*model.Room{{RoomNumber: "501", Type: model.RoomTypePenthouseSingle}}, nil
		},
	}
	router := newRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/category/penthouse-single", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if received != "penthouse-single" {
		t.Errorf("expected category to reach the service, got %q", received)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/category/castle", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&mockRoomService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/id/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["code"] != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND code, got %v", body["code"])
	}
}

func TestCreate_DefaultsAvailableAndPassesPrincipal(t *testing.T) {
	var got *model.Room
	var gotPrincipal *auth.Principal
	svc := &mockRoomService{
		createFunc: func(ctx context.Context, p *auth.Principal, room *model.Room) error {
			got = room
			gotPrincipal = p
			return nil
		},
	}
	h := NewRoomHandler(svc, logger.Discard())

	admin := &auth.Principal{Subject: "admin", Role: auth.RoleAdmin}
	body := `{"room_number":"101","type":"annex","price":50000,"description":"Cosy annex room"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/rooms", strings.NewReader(body))
	req = req.WithContext(auth.WithPrincipal(req.Context(), admin))
	w := httptest.NewRecorder()

	h.Create(w, req, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !got.Available {
		t.Error("expected room to default to available")
	}
	if gotPrincipal != admin {
		t.Error("expected principal from context to be passed to the service")
	}
}

func TestList_Anonymous(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&mockRoomService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/rooms", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSetAvailability(t *testing.T) {
	var gotAvailable *bool
	svc := &mockRoomService{
		setAvailabilityFunc: func(ctx context.Context, p *auth.Principal, id string, available bool) error {
			gotAvailable = &available
			return nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "close room", body: `{"available":false}`, wantCode: http.StatusNoContent},
		{name: "missing field", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "malformed body", body: `{`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/rooms/id/abc/availability", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}

	if gotAvailable == nil || *gotAvailable {
		t.Error("expected service to receive available=false")
	}
}
