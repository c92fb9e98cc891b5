package relations

import (
	"fmt"
	"testing"

	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mustCreateTestBuild(t *testing.T, conn *gorm.DB) *models.Build {
	t.Helper()
	build := &models.Build{
		Name: "Garden Bench",
		SKU:  fmt.Sprintf("bld-%s", uuid.NewString()),
	}
	if err := conn.Create(build).Error; err != nil {
		t.Fatalf("create build: %v", err)
	}
	return build
}

func mustCreateTestProduct(t *testing.T, conn *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        "Deck Screw",
		Vendor:      "Fastenal",
		ProductType: enums.ProductTypePart,
		VendorSKU:   fmt.Sprintf("sku-%s", uuid.NewString()),
		Quantity:    100,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateTestTool(t *testing.T, conn *gorm.DB) *models.Tool {
	t.Helper()
	tool := &models.Tool{
		Name:       "Circular Saw",
		Vendor:     "DeWalt",
		TotalOwned: 2,
		TotalAvail: 1,
	}
	if err := conn.Create(tool).Error; err != nil {
		t.Fatalf("create tool: %v", err)
	}
	return tool
}
