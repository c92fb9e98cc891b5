package tool

import (
	"context"

	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ListFilters are optional equality predicates ANDed onto list queries
// before pagination.
type ListFilters struct {
	Name   *string
	Vendor *string
}

// Repository owns tool persistence. Methods return raw store errors;
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

// Create inserts the tool row.
func (r *Repository) Create(ctx context.Context, tool *models.Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

// FindByID loads the tool row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Tool, error) {
	var tool models.Tool
	if err := r.db.WithContext(ctx).First(&tool, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

// FindByIDLocked loads the row under SELECT ... FOR UPDATE. Only meaningful
// when the repository is bound to a transaction.
func (r *Repository) FindByIDLocked(ctx context.Context, id int64) (*models.Tool, error) {
	var tool models.Tool
	if err := db.LockForUpdate(r.db.WithContext(ctx)).First(&tool, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

// List returns tools matching the filters, ordered by id ascending.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Tool, error) {
	query := r.db.WithContext(ctx).Model(&models.Tool{})
	if filters.Name != nil {
		query = query.Where("name = ?", *filters.Name)
	}
	if filters.Vendor != nil {
		query = query.Where("vendor = ?", *filters.Vendor)
	}

	var tools []models.Tool
	err := query.
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&tools).
		Error
	if err != nil {
		return nil, err
	}
	return tools, nil
}

// UpdateCounts sets the provided counter columns to absolute values.
func (r *Repository) UpdateCounts(ctx context.Context, id int64, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Tool{}).
		Where("id = ?", id).
		Updates(values).
		Error
}

// AdjustCounter moves one counter column with store-side arithmetic. The
// column name comes from the ToolCounter lookup table, never from raw input.
func (r *Repository) AdjustCounter(ctx context.Context, id int64, column string, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Tool{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).
		Error
}

// Delete removes the tool row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tool{}).Error
}
