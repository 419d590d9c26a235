package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/lumenarts/gallery-api/internal/categories"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
)

type stubCategoryService struct {
	created categories.CreateCategoryInput
	updated categories.UpdateCategoryInput
	err     error
}

func (s *stubCategoryService) List(ctx context.Context) ([]categories.CategoryDTO, error) {
	return []categories.CategoryDTO{{ID: uuid.New(), Name: "Abstract Art", Slug: "abstract-art"}}, s.err
}

func (s *stubCategoryService) ListInUse(ctx context.Context) ([]categories.CategoryDTO, error) {
	return []categories.CategoryDTO{}, s.err
}

func (s *stubCategoryService) Get(ctx context.Context, id uuid.UUID) (*categories.CategoryDTO, error) {
	return &categories.CategoryDTO{ID: id}, s.err
}

func (s *stubCategoryService) Create(ctx context.Context, input categories.CreateCategoryInput) (*categories.CategoryDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &categories.CategoryDTO{ID: uuid.New(), Name: input.Name}, nil
}

func (s *stubCategoryService) Update(ctx context.Context, id uuid.UUID, input categories.UpdateCategoryInput) (*categories.CategoryDTO, error) {
	s.updated = input
	return &categories.CategoryDTO{ID: id}, s.err
}

func (s *stubCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func TestCategoryList(t *testing.T) {
	rec := httptest.NewRecorder()
	CategoryList(&stubCategoryService{}, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, "/api/categories", "", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := decodeBody(t, rec)["categories"].([]any)
	if len(items) != 1 {
		t.Fatalf("unexpected categories %v", items)
	}
}

func TestCategoryCreate(t *testing.T) {
	svc := &stubCategoryService{}
	rec := httptest.NewRecorder()
	CategoryCreate(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/categories", `{"name":"Abstract Art"}`, nil))
	if rec.Code != http.StatusCreated || svc.created.Name != "Abstract Art" || svc.created.Slug != nil {
		t.Fatalf("unexpected result %d %+v", rec.Code, svc.created)
	}

	svc.err = pkgerrors.New(pkgerrors.CodeConflict, "a category with this name or slug already exists")
	rec = httptest.NewRecorder()
	CategoryCreate(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/categories", `{"name":"abstract art"}`, nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCategoryCreateRequiresName(t *testing.T) {
	svc := &stubCategoryService{}
	rec := httptest.NewRecorder()
	CategoryCreate(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/categories", `{"slug":"abstract"}`, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "name is required" {
		t.Fatalf("unexpected error %v", body["error"])
	}
	if svc.created.Slug != nil {
		t.Fatal("service must not be called without a name")
	}
}

func TestCategoryDeleteInUse(t *testing.T) {
	svc := &stubCategoryService{err: pkgerrors.New(pkgerrors.CodeConflict, "category is in use by one or more products")}
	id := uuid.New()
	rec := httptest.NewRecorder()
	CategoryDelete(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodDelete, "/api/categories/"+id.String(), "", map[string]string{"id": id.String()}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "category is in use by one or more products" {
		t.Fatalf("unexpected body %v", body)
	}
}
