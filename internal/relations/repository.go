package relations

import (
	"context"

	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/enums"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ProductLinkRow is the joined projection of a build_products row and the
// display columns of its product.
type ProductLinkRow struct {
	ProductID        int64
	Name             string
	VendorSKU        string
	ProductType      enums.ProductType
	QuantityRequired int64
}

// ToolLinkRow is the joined projection of a build_tools row and the display
// columns of its tool.
type ToolLinkRow struct {
	ToolID           int64
	Name             string
	Vendor           string
	QuantityRequired int64
}

const productLinkSelect = "build_products.product_id AS product_id, " +
	"products.name AS name, products.vendor_sku AS vendor_sku, " +
	"products.product_type AS product_type, " +
	"build_products.quantity_required AS quantity_required"

const toolLinkSelect = "build_tools.tool_id AS tool_id, " +
	"tools.name AS name, tools.vendor AS vendor, " +
	"build_tools.quantity_required AS quantity_required"

// Repository owns persistence for both build link tables. Methods return raw
// store errors; classification happens in the service layer.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// BuildExists reports whether the build row is present.
func (r *Repository) BuildExists(ctx context.Context, buildID int64) (bool, error) {
	return r.exists(ctx, &models.Build{}, buildID)
}

// ProductExists reports whether the product row is present.
func (r *Repository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	return r.exists(ctx, &models.Product{}, productID)
}

// ToolExists reports whether the tool row is present.
func (r *Repository) ToolExists(ctx context.Context, toolID int64) (bool, error) {
	return r.exists(ctx, &models.Tool{}, toolID)
}

func (r *Repository) exists(ctx context.Context, model any, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListProductLinks returns the build's product links ordered by product id.
func (r *Repository) ListProductLinks(ctx context.Context, buildID int64, page pagination.Params) ([]ProductLinkRow, error) {
	var rows []ProductLinkRow
	err := r.db.WithContext(ctx).
		Table("build_products").
		Select(productLinkSelect).
		Joins("JOIN products ON products.id = build_products.product_id").
		Where("build_products.build_id = ?", buildID).
		Order("build_products.product_id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetProductLink returns one joined pair or gorm.ErrRecordNotFound.
func (r *Repository) GetProductLink(ctx context.Context, buildID, productID int64) (*ProductLinkRow, error) {
	var row ProductLinkRow
	result := r.db.WithContext(ctx).
		Table("build_products").
		Select(productLinkSelect).
		Joins("JOIN products ON products.id = build_products.product_id").
		Where("build_products.build_id = ? AND build_products.product_id = ?", buildID, productID).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// CreateProductLink inserts the link row.
func (r *Repository) CreateProductLink(ctx context.Context, link *models.BuildProduct) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// UpdateProductLinkQuantity replaces the link quantity, reporting how many
// rows matched.
func (r *Repository) UpdateProductLinkQuantity(ctx context.Context, buildID, productID, quantity int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BuildProduct{}).
		Where("build_id = ? AND product_id = ?", buildID, productID).
		Update("quantity_required", quantity)
	return result.RowsAffected, result.Error
}

// DeleteProductLink removes the link row, never the product.
func (r *Repository) DeleteProductLink(ctx context.Context, buildID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("build_id = ? AND product_id = ?", buildID, productID).
		Delete(&models.BuildProduct{}).
		Error
}

// ListToolLinks returns the build's tool links ordered by tool id.
func (r *Repository) ListToolLinks(ctx context.Context, buildID int64, page pagination.Params) ([]ToolLinkRow, error) {
	var rows []ToolLinkRow
	err := r.db.WithContext(ctx).
		Table("build_tools").
		Select(toolLinkSelect).
		Joins("JOIN tools ON tools.id = build_tools.tool_id").
		Where("build_tools.build_id = ?", buildID).
		Order("build_tools.tool_id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetToolLink returns one joined pair or gorm.ErrRecordNotFound.
func (r *Repository) GetToolLink(ctx context.Context, buildID, toolID int64) (*ToolLinkRow, error) {
	var row ToolLinkRow
	result := r.db.WithContext(ctx).
		Table("build_tools").
		Select(toolLinkSelect).
		Joins("JOIN tools ON tools.id = build_tools.tool_id").
		Where("build_tools.build_id = ? AND build_tools.tool_id = ?", buildID, toolID).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// CreateToolLink inserts the link row.
func (r *Repository) CreateToolLink(ctx context.Context, link *models.BuildTool) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// UpdateToolLinkQuantity replaces the link quantity, reporting how many rows
// matched.
func (r *Repository) UpdateToolLinkQuantity(ctx context.Context, buildID, toolID, quantity int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BuildTool{}).
		Where("build_id = ? AND tool_id = ?", buildID, toolID).
		Update("quantity_required", quantity)
	return result.RowsAffected, result.Error
}

// DeleteToolLink removes the link row, never the tool.
func (r *Repository) DeleteToolLink(ctx context.Context, buildID, toolID int64) error {
	return r.db.WithContext(ctx).
		Where("build_id = ? AND tool_id = ?", buildID, toolID).
		Delete(&models.BuildTool{}).
		Error
}
