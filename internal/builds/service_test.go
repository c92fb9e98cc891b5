package build

import (
	"context"
	"fmt"
	"testing"

	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/dbtest"
	"github.com/buildbench/inven-backend/pkg/db/models"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
	"github.com/buildbench/inven-backend/pkg/enums"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn))
	require.NoError(t, err)
	return svc, conn
}

func requireCode(t *testing.T, err error, code pkgerrors.Code, message string) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	require.Equal(t, code, typed.Code())
	require.Equal(t, message, typed.Message())
}

func TestServiceCreateAndConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBuildInput{Name: "Router Table", SKU: "rt-001"})
	require.NoError(t, err)
	require.NotZero(t, created.BuildID)
	require.Equal(t, "rt-001", created.SKU)

	_, err = svc.Create(ctx, CreateBuildInput{Name: "Other Table", SKU: "rt-001"})
	requireCode(t, err, pkgerrors.CodeConflict, "SKU rt-001 already exists")
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), 31337)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build not found")
}

func TestServiceListFiltersAndPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		created, err := svc.Create(ctx, CreateBuildInput{
			Name: "Shelf Unit",
			SKU:  fmt.Sprintf("shelf-%03d", i),
		})
		require.NoError(t, err)
		ids = append(ids, created.BuildID)
	}

	all, err := svc.List(ctx, ListFilters{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, dto := range all {
		require.Equal(t, ids[i], dto.BuildID, "expected ascending id order")
	}

	sku := "shelf-001"
	filtered, err := svc.List(ctx, ListFilters{SKU: &sku}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, ids[1], filtered[0].BuildID)

	// Every row is reachable exactly once when walking page_size=1 pages.
	for page := 0; page < 3; page++ {
		rows, err := svc.List(ctx, ListFilters{}, pagination.Params{Page: page, PageSize: 1})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, ids[page], rows[0].BuildID)
	}
	past, err := svc.List(ctx, ListFilters{}, pagination.Params{Page: 3, PageSize: 1})
	require.NoError(t, err)
	require.Empty(t, past)
}

func TestServiceUpdateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBuildInput{Name: "Old Name", SKU: "bn-1"})
	require.NoError(t, err)

	updated, err := svc.UpdateName(ctx, created.BuildID, "New Name")
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, "bn-1", updated.SKU, "sku must stay immutable")

	_, err = svc.UpdateName(ctx, created.BuildID+999, "Nope")
	requireCode(t, err, pkgerrors.CodeNotFound, "Build not found")
}

func TestServiceDeleteCascadesLinks(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBuildInput{Name: "Dog House", SKU: "dh-1"})
	require.NoError(t, err)

	product := &models.Product{
		Name:        "Cedar Plank",
		Vendor:      "Lumber Co",
		ProductType: enums.ProductTypeMaterial,
		VendorSKU:   "lc-cedar-1",
		Quantity:    20,
	}
	require.NoError(t, conn.Create(product).Error)
	link := &models.BuildProduct{
		ProductID:        product.ID,
		BuildID:          created.BuildID,
		QuantityRequired: 4,
	}
	require.NoError(t, conn.Create(link).Error)

	prior, err := svc.Delete(ctx, created.BuildID)
	require.NoError(t, err)
	require.Equal(t, "Dog House", prior.Name)

	// Link rows are gone, the product survives.
	var linkCount int64
	require.NoError(t, conn.Model(&models.BuildProduct{}).Where("build_id = ?", created.BuildID).Count(&linkCount).Error)
	require.Zero(t, linkCount)
	var productCount int64
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", product.ID).Count(&productCount).Error)
	require.Equal(t, int64(1), productCount)
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Delete(context.Background(), 8888)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build not found")
}
