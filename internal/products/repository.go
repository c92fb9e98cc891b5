package product

import (
	"context"

	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/enums"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ListFilters are optional equality predicates ANDed onto list queries
// before pagination.
type ListFilters struct {
	Name        *string
	Vendor      *string
	ProductType *enums.ProductType
	VendorSKU   *string
}

// Repository owns product persistence. Methods return raw store errors;
// classification happens in the service layer.
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

// Create inserts the product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads the product row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDLocked loads the row under SELECT ... FOR UPDATE. Only meaningful
// when the repository is bound to a transaction.
func (r *Repository) FindByIDLocked(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := db.LockForUpdate(r.db.WithContext(ctx)).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products matching the filters, ordered by id ascending.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filters.Name != nil {
		query = query.Where("name = ?", *filters.Name)
	}
	if filters.Vendor != nil {
		query = query.Where("vendor = ?", *filters.Vendor)
	}
	if filters.ProductType != nil {
		query = query.Where("product_type = ?", *filters.ProductType)
	}
	if filters.VendorSKU != nil {
		query = query.Where("vendor_sku = ?", *filters.VendorSKU)
	}

	var products []models.Product
	err := query.
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateQuantity sets the stored quantity to an absolute value.
func (r *Repository) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("quantity", quantity).
		Error
}

// AdjustQuantity moves the stored quantity with store-side arithmetic so
// concurrent deltas compose instead of overwriting each other.
func (r *Repository) AdjustQuantity(ctx context.Context, id int64, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).
		Error
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}
