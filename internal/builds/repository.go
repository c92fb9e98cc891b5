package build

import (
	"context"

	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ListFilters are optional equality predicates ANDed onto list queries
// before pagination.
type ListFilters struct {
	Name *string
	SKU  *string
}

// Repository owns build persistence. Methods return raw store errors;
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

// Create inserts the build row.
func (r *Repository) Create(ctx context.Context, build *models.Build) error {
	return r.db.WithContext(ctx).Create(build).Error
}

// FindByID loads the build row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Build, error) {
	var build models.Build
	if err := r.db.WithContext(ctx).First(&build, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &build, nil
}

// Exists reports whether the build row is present.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Build{}).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns builds matching the filters, ordered by id ascending.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Build, error) {
	query := r.db.WithContext(ctx).Model(&models.Build{})
	if filters.Name != nil {
		query = query.Where("name = ?", *filters.Name)
	}
	if filters.SKU != nil {
		query = query.Where("sku = ?", *filters.SKU)
	}

	var builds []models.Build
	err := query.
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&builds).
		Error
	if err != nil {
		return nil, err
	}
	return builds, nil
}

// UpdateName replaces the build name. The sku and id are immutable.
func (r *Repository) UpdateName(ctx context.Context, id int64, name string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Build{}).
		Where("id = ?", id).
		Update("name", name)
	return result.RowsAffected, result.Error
}

// Delete removes the build row. Link rows go with it via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Build{}).Error
}
