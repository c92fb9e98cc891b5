package models

import (
	"time"

	"github.com/buildbench/inven-backend/pkg/enums"
)

// Product is a consumable part or material tracked by on-hand quantity.
type Product struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string            `gorm:"column:name;not null"`
	Vendor      string            `gorm:"column:vendor;not null"`
	ProductType enums.ProductType `gorm:"column:product_type;type:varchar(100);not null"`
	VendorSKU   string            `gorm:"column:vendor_sku;type:varchar(255);not null;uniqueIndex:idx_products_vendor_sku"`
	Quantity    int64             `gorm:"column:quantity;not null;check:quantity >= 0"`
	ModifiedAt  time.Time         `gorm:"column:modified_at;autoUpdateTime"`
}

// TableName keeps the model bound to the unqualified table; the schema comes
// from the connection's search_path.
func (Product) TableName() string {
	return "products"
}
