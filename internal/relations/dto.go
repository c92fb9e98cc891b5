package relations

import "github.com/buildbench/inven-backend/pkg/enums"

// LinkedProductDTO is a product as seen through a build link: display columns
// of the product plus the link's own quantity.
type LinkedProductDTO struct {
	ProductID        int64             `json:"product_id"`
	Name             string            `json:"name"`
	VendorSKU        string            `json:"vendor_sku"`
	ProductType      enums.ProductType `json:"product_type"`
	QuantityRequired int64             `json:"quantity_required"`
}

// LinkedToolDTO is a tool as seen through a build link.
type LinkedToolDTO struct {
	ToolID           int64  `json:"tool_id"`
	Name             string `json:"name"`
	Vendor           string `json:"vendor"`
	QuantityRequired int64  `json:"quantity_required"`
}

// BuildProductsDTO is the list payload for a build's product links.
type BuildProductsDTO struct {
	BuildID  int64              `json:"build_id"`
	Products []LinkedProductDTO `json:"products"`
}

// BuildProductDTO is the single-link payload for a build's product link.
type BuildProductDTO struct {
	BuildID int64            `json:"build_id"`
	Product LinkedProductDTO `json:"product"`
}

// BuildToolsDTO is the list payload for a build's tool links.
type BuildToolsDTO struct {
	BuildID int64           `json:"build_id"`
	Tools   []LinkedToolDTO `json:"tools"`
}

// BuildToolDTO is the single-link payload for a build's tool link.
type BuildToolDTO struct {
	BuildID int64         `json:"build_id"`
	Tool    LinkedToolDTO `json:"tool"`
}
