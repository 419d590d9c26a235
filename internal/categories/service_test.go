package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db/models"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
)

type memoryStore struct {
	items map[uuid.UUID]models.Category
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: map[uuid.UUID]models.Category{}}
}

func (m *memoryStore) List(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *memoryStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	out := []models.Category{}
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (m *memoryStore) Exists(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error) {
	for id, c := range m.items {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if c.Name == name || c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) Create(ctx context.Context, c *models.Category) error {
	c.ID = uuid.New()
	m.items[c.ID] = *c
	return nil
}

func (m *memoryStore) Save(ctx context.Context, c *models.Category) error {
	m.items[c.ID] = *c
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

type stubUsage struct {
	counts map[uuid.UUID]int64
	inUse  []uuid.UUID
}

func (s stubUsage) CountByCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.counts[id], nil
}

func (s stubUsage) ListCategoryIDsInUse(ctx context.Context) ([]uuid.UUID, error) {
	return s.inUse, nil
}

func newTestService(t *testing.T, usage stubUsage) (Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	svc, err := NewService(store, usage)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestCreateDerivesSlug(t *testing.T) {
	svc, _ := newTestService(t, stubUsage{})

	dto, err := svc.Create(context.Background(), CreateCategoryInput{Name: "  Abstract   Art!! "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Abstract   Art!!" || dto.Slug != "abstract-art" {
		t.Fatalf("unexpected category %+v", dto)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, _ := newTestService(t, stubUsage{})

	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: " "})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if pkgerrors.As(err).Message() != "name is required" {
		t.Fatalf("unexpected message %q", pkgerrors.As(err).Message())
	}
}

func TestCreateCaseVariantCollidesOnSlug(t *testing.T) {
	svc, _ := newTestService(t, stubUsage{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateCategoryInput{Name: "Abstract Art"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, CreateCategoryInput{Name: "abstract art"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateRederivesSlugOnRename(t *testing.T) {
	svc, _ := newTestService(t, stubUsage{})
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCategoryInput{Name: "Landscapes"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	name := "Urban Landscapes"
	updated, err := svc.Update(ctx, created.ID, UpdateCategoryInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "urban-landscapes" {
		t.Fatalf("expected re-derived slug, got %q", updated.Slug)
	}

	explicit := "City Views"
	updated, err = svc.Update(ctx, created.ID, UpdateCategoryInput{Slug: &explicit})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "city-views" || updated.Name != "Urban Landscapes" {
		t.Fatalf("unexpected category %+v", updated)
	}
}

func TestUpdateConflictsWithOtherCategory(t *testing.T) {
	svc, _ := newTestService(t, stubUsage{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateCategoryInput{Name: "Portraits"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := svc.Create(ctx, CreateCategoryInput{Name: "Still Life"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	name := "Portraits"
	_, err = svc.Update(ctx, other.ID, UpdateCategoryInput{Name: &name})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteGuardsCategoriesInUse(t *testing.T) {
	usage := stubUsage{counts: map[uuid.UUID]int64{}}
	svc, store := newTestService(t, usage)
	ctx := context.Background()

	used, err := svc.Create(ctx, CreateCategoryInput{Name: "Used"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	unused, err := svc.Create(ctx, CreateCategoryInput{Name: "Unused"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	usage.counts[used.ID] = 2

	err = svc.Delete(ctx, used.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, ok := store.items[used.ID]; !ok {
		t.Fatal("category in use must be kept")
	}

	if err := svc.Delete(ctx, unused.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.items[unused.ID]; ok {
		t.Fatal("unused category should be removed")
	}

	if err := svc.Delete(ctx, uuid.New()); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListInUse(t *testing.T) {
	svc, store := newTestService(t, stubUsage{})
	ctx := context.Background()

	used, err := svc.Create(ctx, CreateCategoryInput{Name: "Used"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateCategoryInput{Name: "Idle"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	svc, err = NewService(store, stubUsage{inUse: []uuid.UUID{used.ID}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	items, err := svc.ListInUse(ctx)
	if err != nil {
		t.Fatalf("list in use: %v", err)
	}
	if len(items) != 1 || items[0].ID != used.ID {
		t.Fatalf("unexpected items %+v", items)
	}
}
