package product

import (
	"time"

	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/enums"
)

// ProductDTO is the full product payload returned to clients.
type ProductDTO struct {
	ProductID   int64             `json:"product_id"`
	Name        string            `json:"name"`
	Vendor      string            `json:"vendor"`
	ProductType enums.ProductType `json:"product_type"`
	VendorSKU   string            `json:"vendor_sku"`
	Quantity    int64             `json:"quantity"`
	ModifiedAt  time.Time         `json:"modified_at"`
}

// ProductPreUpdateDTO carries the quantity as it was before a delta was
// applied. The stored value has already moved by the time the client reads it.
type ProductPreUpdateDTO struct {
	ProductID         int64  `json:"product_id"`
	VendorSKU         string `json:"vendor_sku"`
	PreUpdateQuantity int64  `json:"preUpdateQuantity"`
}

// ProductPostUpdateDTO carries the quantity as re-read inside the same
// transaction after a delta was applied.
type ProductPostUpdateDTO struct {
	ProductID          int64  `json:"product_id"`
	VendorSKU          string `json:"vendor_sku"`
	PostUpdateQuantity int64  `json:"postUpdateQuantity"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ProductID:   product.ID,
		Name:        product.Name,
		Vendor:      product.Vendor,
		ProductType: product.ProductType,
		VendorSKU:   product.VendorSKU,
		Quantity:    product.Quantity,
		ModifiedAt:  product.ModifiedAt,
	}
}
