package variants

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/db/models"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
)

type memoryStore struct {
	items map[uuid.UUID]models.Variant
}

func (m *memoryStore) List(ctx context.Context) ([]models.Variant, error) {
	out := []models.Variant{}
	for _, v := range m.items {
		out = append(out, v)
	}
	return out, nil
}

func (m *memoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	v, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (m *memoryStore) Exists(ctx context.Context, name, slug string, excludeID *uuid.UUID) (bool, error) {
	for id, v := range m.items {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if v.Name == name || v.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) Create(ctx context.Context, v *models.Variant) error {
	v.ID = uuid.New()
	m.items[v.ID] = *v
	return nil
}

func (m *memoryStore) Save(ctx context.Context, v *models.Variant) error {
	m.items[v.ID] = *v
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

type usageByName map[string]int64

func (u usageByName) CountByVariantName(ctx context.Context, name string) (int64, error) {
	return u[name], nil
}

func newTestService(t *testing.T, usage usageByName) Service {
	t.Helper()
	svc, err := NewService(&memoryStore{items: map[uuid.UUID]models.Variant{}}, usage)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestDedupeValues(t *testing.T) {
	got := DedupeValues([]string{" Black", "Oak", "Black ", "", "White", "Oak"})
	want := []string{"Black", "Oak", "White"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCreateVariant(t *testing.T) {
	svc := newTestService(t, usageByName{})

	dto, err := svc.Create(context.Background(), CreateVariantInput{
		Name:   "Frame Color",
		Values: []string{"Black", "Black", "Oak"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Slug != "frame-color" || len(dto.Values) != 2 {
		t.Fatalf("unexpected variant %+v", dto)
	}

	_, err = svc.Create(context.Background(), CreateVariantInput{Name: "Frame Color"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateVariantValues(t *testing.T) {
	svc := newTestService(t, usageByName{})
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateVariantInput{Name: "Size", Values: []string{"S"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	values := []string{"S", "M", "M", "L"}
	updated, err := svc.Update(ctx, created.ID, UpdateVariantInput{Values: &values})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reflect.DeepEqual(updated.Values, []string{"S", "M", "L"}) || updated.Slug != "size" {
		t.Fatalf("unexpected variant %+v", updated)
	}
}

func TestDeleteVariantInUse(t *testing.T) {
	svc := newTestService(t, usageByName{"Frame": 3})
	ctx := context.Background()

	frame, err := svc.Create(ctx, CreateVariantInput{Name: "Frame"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, frame.ID); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := svc.Get(ctx, frame.ID); err != nil {
		t.Fatalf("variant in use must remain: %v", err)
	}

	finish, err := svc.Create(ctx, CreateVariantInput{Name: "Finish"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, finish.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
