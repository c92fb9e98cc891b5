package relations

import (
	"context"
	"testing"

	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/dbtest"
	"github.com/buildbench/inven-backend/pkg/db/models"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
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

func TestAddBuildProduct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	productRow := mustCreateTestProduct(t, conn)

	added, err := svc.AddBuildProduct(ctx, buildRow.ID, productRow.ID, 12)
	require.NoError(t, err)
	require.Equal(t, buildRow.ID, added.BuildID)
	require.Equal(t, productRow.ID, added.Product.ProductID)
	require.Equal(t, productRow.VendorSKU, added.Product.VendorSKU)
	require.Equal(t, int64(12), added.Product.QuantityRequired)

	_, err = svc.AddBuildProduct(ctx, buildRow.ID, productRow.ID, 3)
	requireCode(t, err, pkgerrors.CodeConflict, "Build Product pair already exists")
}

func TestAddBuildProductChecksProductBeforeBuild(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	productRow := mustCreateTestProduct(t, conn)

	// Both ids missing: the product is reported, not the build.
	_, err := svc.AddBuildProduct(ctx, buildRow.ID+999, productRow.ID+999, 1)
	requireCode(t, err, pkgerrors.CodeNotFound, "Product not found")

	// Product present, build missing.
	_, err = svc.AddBuildProduct(ctx, buildRow.ID+999, productRow.ID, 1)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build not found")

	// The failed attempts must not have left link rows behind.
	var count int64
	require.NoError(t, conn.Model(&models.BuildProduct{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAddBuildProductRejectsNonPositiveQuantity(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	productRow := mustCreateTestProduct(t, conn)

	_, err := svc.AddBuildProduct(ctx, buildRow.ID, productRow.ID, 0)
	requireCode(t, err, pkgerrors.CodeValidation, "quantity must be greater than zero")
}

func TestListBuildProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)

	// A build with no links lists as empty, not as an error.
	listed, err := svc.ListBuildProducts(ctx, buildRow.ID, pagination.Params{})
	require.NoError(t, err)
	require.Equal(t, buildRow.ID, listed.BuildID)
	require.Empty(t, listed.Products)

	first := mustCreateTestProduct(t, conn)
	second := mustCreateTestProduct(t, conn)
	_, err = svc.AddBuildProduct(ctx, buildRow.ID, second.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddBuildProduct(ctx, buildRow.ID, first.ID, 1)
	require.NoError(t, err)

	listed, err = svc.ListBuildProducts(ctx, buildRow.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, listed.Products, 2)
	require.Equal(t, first.ID, listed.Products[0].ProductID, "expected ascending product id order")
	require.Equal(t, second.ID, listed.Products[1].ProductID)

	page, err := svc.ListBuildProducts(ctx, buildRow.ID, pagination.Params{Page: 1, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, second.ID, page.Products[0].ProductID)

	_, err = svc.ListBuildProducts(ctx, buildRow.ID+999, pagination.Params{})
	requireCode(t, err, pkgerrors.CodeNotFound, "Build not found")
}

func TestGetBuildProduct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	productRow := mustCreateTestProduct(t, conn)
	_, err := svc.AddBuildProduct(ctx, buildRow.ID, productRow.ID, 7)
	require.NoError(t, err)

	got, err := svc.GetBuildProduct(ctx, buildRow.ID, productRow.ID)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.Product.QuantityRequired)
	require.Equal(t, productRow.Name, got.Product.Name)

	_, err = svc.GetBuildProduct(ctx, buildRow.ID, productRow.ID+999)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build Product pair not found")
}

func TestUpdateBuildProduct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	productRow := mustCreateTestProduct(t, conn)
	_, err := svc.AddBuildProduct(ctx, buildRow.ID, productRow.ID, 7)
	require.NoError(t, err)

	updated, err := svc.UpdateBuildProduct(ctx, buildRow.ID, productRow.ID, 9)
	require.NoError(t, err)
	require.Equal(t, int64(9), updated.Product.QuantityRequired)

	_, err = svc.UpdateBuildProduct(ctx, buildRow.ID, productRow.ID, 0)
	requireCode(t, err, pkgerrors.CodeValidation, "quantity must be greater than zero")

	_, err = svc.UpdateBuildProduct(ctx, buildRow.ID, productRow.ID+999, 4)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build Product pair not found")
}

func TestDeleteBuildProduct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	productRow := mustCreateTestProduct(t, conn)
	_, err := svc.AddBuildProduct(ctx, buildRow.ID, productRow.ID, 5)
	require.NoError(t, err)

	deleted, err := svc.DeleteBuildProduct(ctx, buildRow.ID, productRow.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), deleted.Product.QuantityRequired)
	require.Equal(t, productRow.VendorSKU, deleted.Product.VendorSKU)

	// The link is gone, the product is not.
	_, err = svc.GetBuildProduct(ctx, buildRow.ID, productRow.ID)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build Product pair not found")
	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", productRow.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	_, err = svc.DeleteBuildProduct(ctx, buildRow.ID, productRow.ID)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build Product pair not found")
}

func TestAddBuildTool(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	toolRow := mustCreateTestTool(t, conn)

	added, err := svc.AddBuildTool(ctx, buildRow.ID, toolRow.ID, 2)
	require.NoError(t, err)
	require.Equal(t, toolRow.ID, added.Tool.ToolID)
	require.Equal(t, toolRow.Vendor, added.Tool.Vendor)
	require.Equal(t, int64(2), added.Tool.QuantityRequired)

	_, err = svc.AddBuildTool(ctx, buildRow.ID, toolRow.ID, 1)
	requireCode(t, err, pkgerrors.CodeConflict, "Build Tool pair already exists")
}

func TestAddBuildToolChecksToolBeforeBuild(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	toolRow := mustCreateTestTool(t, conn)

	_, err := svc.AddBuildTool(ctx, buildRow.ID+999, toolRow.ID+999, 1)
	requireCode(t, err, pkgerrors.CodeNotFound, "Tool not found")

	_, err = svc.AddBuildTool(ctx, buildRow.ID+999, toolRow.ID, 1)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build not found")
}

func TestListBuildTools(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	toolRow := mustCreateTestTool(t, conn)
	_, err := svc.AddBuildTool(ctx, buildRow.ID, toolRow.ID, 3)
	require.NoError(t, err)

	listed, err := svc.ListBuildTools(ctx, buildRow.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, listed.Tools, 1)
	require.Equal(t, toolRow.Name, listed.Tools[0].Name)

	_, err = svc.ListBuildTools(ctx, buildRow.ID+999, pagination.Params{})
	requireCode(t, err, pkgerrors.CodeNotFound, "Build not found")
}

func TestUpdateAndDeleteBuildTool(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	buildRow := mustCreateTestBuild(t, conn)
	toolRow := mustCreateTestTool(t, conn)
	_, err := svc.AddBuildTool(ctx, buildRow.ID, toolRow.ID, 3)
	require.NoError(t, err)

	updated, err := svc.UpdateBuildTool(ctx, buildRow.ID, toolRow.ID, 6)
	require.NoError(t, err)
	require.Equal(t, int64(6), updated.Tool.QuantityRequired)

	_, err = svc.UpdateBuildTool(ctx, buildRow.ID, toolRow.ID+999, 1)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build Tool pair not found")

	deleted, err := svc.DeleteBuildTool(ctx, buildRow.ID, toolRow.ID)
	require.NoError(t, err)
	require.Equal(t, int64(6), deleted.Tool.QuantityRequired)

	var count int64
	require.NoError(t, conn.Model(&models.Tool{}).Where("id = ?", toolRow.ID).Count(&count).Error)
	require.Equal(t, int64(1), count, "tool must survive link deletion")

	_, err = svc.GetBuildTool(ctx, buildRow.ID, toolRow.ID)
	requireCode(t, err, pkgerrors.CodeNotFound, "Build Tool pair not found")
}
