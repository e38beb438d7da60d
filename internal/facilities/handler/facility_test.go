package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fullmoon/internal/facilities/service"
	"fullmoon/pkg/auth"
	apperrors "fullmoon/pkg/errors"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock services for testing
type mockFacilityService struct {
	listByTypeFunc func(ctx context.Context, facilityType string) ([]*model.Facility, error)
}

func (m *mockFacilityService) ListAvailable(ctx context.Context) ([]*model.Facility, error) {
	return []*model.Facility{{Name: "Moonlight Spa"}}, nil
}

func (m *mockFacilityService) ListByType(ctx context.Context, facilityType string) ([]*model.Facility, error) {
	return m.listByTypeFunc(ctx, facilityType)
}

func (m *mockFacilityService) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	return nil, apperrors.NotFoundWithID("Facility", id)
}

func (m *mockFacilityService) List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.Facility, int64, error) {
	return nil, 0, auth.RequireAdmin(p)
}

func (m *mockFacilityService) Create(ctx context.Context, p *auth.Principal, facility *model.Facility) error {
	return auth.RequireAdmin(p)
}

func (m *mockFacilityService) Update(ctx context.Context, p *auth.Principal, id string, update *model.FacilityUpdate) (*model.Facility, error) {
	return nil, auth.RequireAdmin(p)
}

func (m *mockFacilityService) Delete(ctx context.Context, p *auth.Principal, id string) error {
	return auth.RequireAdmin(p)
}

type mockBookingService struct {
	bookFunc func(ctx context.Context, p *auth.Principal, req service.BookRequest) (*model.FacilityBooking, error)
}

func (m *mockBookingService) Book(ctx context.Context, p *auth.Principal, req service.BookRequest) (*model.FacilityBooking, error) {
	return m.bookFunc(ctx, p, req)
}

func (m *mockBookingService) ListMine(ctx context.Context, p *auth.Principal) ([]*model.FacilityBooking, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return []*model.FacilityBooking{{UserID: p.Subject}}, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, p *auth.Principal, id string) (*model.FacilityBooking, error) {
	return nil, apperrors.Conflict("Booking is already cancelled")
}

func newRouter(facilities *mockFacilityService, bookings *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewFacilityHandler(facilities, logger.Discard()).RegisterRoutes(router)
	NewBookingHandler(bookings, logger.Discard()).RegisterRoutes(router)
	return router
}

func withGuest(r *http.Request) *http.Request {
	return r.WithContext(auth.WithPrincipal(r.Context(), &auth.Principal{Subject: "guest-1", Role: auth.RoleGuest}))
}

func TestListByType(t *testing.T) {
	facilities := &mockFacilityService{
		listByTypeFunc: func(ctx context.Context, facilityType string) ([]*model.Facility, error) {
			if facilityType != "dining" {
				return nil, apperrors.InvalidInput("Unknown facility type")
			}
			return []*model.Facility{{Name: "Crescent Restaurant", Type: model.FacilityDining}}, nil
		},
	}
	router := newRouter(facilities, &mockBookingService{})

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/facilities/type/dining", http.StatusOK},
		{"/api/v1/facilities/type/casino", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	router := newRouter(&mockFacilityService{}, &mockBookingService{})

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
	}{
		{"anonymous list", httptest.NewRequest(http.MethodGet, "/api/v1/admin/facilities", nil), http.StatusUnauthorized},
		{"guest create", withGuest(httptest.NewRequest(http.MethodPost, "/api/v1/admin/facilities", strings.NewReader(`{"name":"Pool"}`))), http.StatusForbidden},
		{"guest delete", withGuest(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/facilities/id/abc", nil)), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tt.req)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestBook_Created(t *testing.T) {
	var got service.BookRequest
	bookings := &mockBookingService{
		bookFunc: func(ctx context.Context, p *auth.Principal, req service.BookRequest) (*model.FacilityBooking, error) {
			if err := auth.RequireAuthenticated(p); err != nil {
				return nil, err
			}
			got = req
			return &model.FacilityBooking{ID: "b1", UserID: p.Subject, Status: model.FacilityBookingConfirmed, TotalAmount: 30000}, nil
		},
	}
	router := newRouter(&mockFacilityService{}, bookings)
	body := `{"facility_id":"6720facade6720facade0a01","date":"2025-11-03","time":"18:00","duration":2,"guests":2}`

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/facilities/bookings", strings.NewReader(body)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, withGuest(httptest.NewRequest(http.MethodPost, "/api/v1/facilities/bookings", strings.NewReader(body))))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got.Duration != 2 || got.Time != "18:00" {
		t.Errorf("request not decoded: %+v", got)
	}

	var resp struct {
		Data model.FacilityBooking `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Data.TotalAmount != 30000 {
		t.Errorf("expected total 30000, got %v", resp.Data.TotalAmount)
	}
}

func TestListMine_AndCancelConflict(t *testing.T) {
	router := newRouter(&mockFacilityService{}, &mockBookingService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withGuest(httptest.NewRequest(http.MethodGet, "/api/v1/facilities/bookings/mine", nil)))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, withGuest(httptest.NewRequest(http.MethodPost, "/api/v1/facilities/bookings/id/b1/cancel", nil)))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}
