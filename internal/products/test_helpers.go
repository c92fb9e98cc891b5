package product

import (
	"fmt"
	"testing"

	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mustCreateTestProduct(t *testing.T, conn *gorm.DB, quantity int64) *models.Product {
	t.Helper()
	row := &models.Product{
		Name:        "M3 Hex Bolt",
		Vendor:      "Fastenal",
		ProductType: enums.ProductTypePart,
		VendorSKU:   fmt.Sprintf("sku-%s", uuid.NewString()),
		Quantity:    quantity,
	}
	if err := conn.Create(row).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return row
}

// mustLinkToBuild creates a build and a build_products row referencing the
// product, so deletes hit the RESTRICT foreign key.
func mustLinkToBuild(t *testing.T, conn *gorm.DB, productID int64) {
	t.Helper()
	build := &models.Build{
		Name: "Bench Power Supply",
		SKU:  fmt.Sprintf("bld-%s", uuid.NewString()),
	}
	if err := conn.Create(build).Error; err != nil {
		t.Fatalf("create build: %v", err)
	}
	link := &models.BuildProduct{
		ProductID:        productID,
		BuildID:          build.ID,
		QuantityRequired: 2,
	}
	if err := conn.Create(link).Error; err != nil {
		t.Fatalf("create build link: %v", err)
	}
}
