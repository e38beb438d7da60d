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
	httputil "fullmoon/pkg/http"
	"fullmoon/pkg/logger"
	"fullmoon/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockPostService struct {
	getBySlugFunc func(ctx context.Context, slug string) (*model.BlogPostPage, error)
	createFunc    func(ctx context.Context, p *auth.Principal, post *model.BlogPost) error
}

func (m *mockPostService) ListPublished(ctx context.Context, limit int, offset int64) ([]*model.BlogPost, int64, error) {
	return []*model.BlogPost{{Title: "One"}}, 1, nil
}

func (m *mockPostService) Popular(ctx context.Context) ([]*model.BlogPost, error) {
	return []*model.BlogPost{}, nil
}

func (m *mockPostService) GetBySlug(ctx context.Context, slug string) (*model.BlogPostPage, error) {
	return m.getBySlugFunc(ctx, slug)
}

func (m *mockPostService) ListByCategory(ctx context.Context, category string) ([]*model.BlogPost, error) {
	return []*model.BlogPost{}, nil
}

func (m *mockPostService) ListByTag(ctx context.Context, tag string) ([]*model.BlogPost, error) {
	return []*model.BlogPost{}, nil
}

func (m *mockPostService) List(ctx context.Context, p *auth.Principal, limit int, offset int64) ([]*model.BlogPost, int64, error) {
	return nil, 0, auth.RequireAdmin(p)
}

func (m *mockPostService) Create(ctx context.Context, p *auth.Principal, post *model.BlogPost) error {
	return m.createFunc(ctx, p, post)
}

func (m *mockPostService) Update(ctx context.Context, p *auth.Principal, id string, update *model.BlogPostUpdate) (*model.BlogPost, error) {
	return nil, nil
}

func (m *mockPostService) Delete(ctx context.Context, p *auth.Principal, id string) error {
	return nil
}

func newRouter(svc *mockPostService) *httprouter.Router {
	router := httprouter.New()
	NewPostHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestGetBySlug(t *testing.T) {
	svc := &mockPostService{
		getBySlugFunc: func(ctx context.Context, slug string) (*model.BlogPostPage, error) {
			if slug != "pool-day" {
				return nil, apperrors.NotFoundWithID("Blog post", slug)
			}
			return &model.BlogPostPage{Post: &model.BlogPost{Slug: slug}, Related: []*model.BlogPost{}}, nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/blog/post/pool-day", http.StatusOK},
		{"/api/v1/blog/post/unknown", http.StatusNotFound},
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

func TestListPublished_Paginated(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&mockPostService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/blog?limit=5", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var page httputil.PaginatedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if page.TotalCount != 1 || page.Limit != 5 {
		t.Errorf("unexpected page metadata: %+v", page)
	}
}

func TestCreate_RequiresAdmin(t *testing.T) {
	svc := &mockPostService{
		createFunc: func(ctx context.Context, p *auth.Principal, post *model.BlogPost) error {
			if err := auth.RequireAdmin(p); err != nil {
				return err
			}
			post.ID = "6720c0ffee6720c0ffee0001"
			return nil
		},
	}
	router := newRouter(svc)
	body := `{"title":"Pool Day","content":"Sun","category":"Leisure"}`

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/blog", strings.NewReader(body)))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/blog", strings.NewReader(body))
	req = req.WithContext(auth.WithPrincipal(req.Context(), &auth.Principal{Subject: "a", Role: auth.RoleAdmin}))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}
