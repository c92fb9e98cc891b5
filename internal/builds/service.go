package build

import (
	"context"
	"fmt"

	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/models"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service exposes build management operations.
type Service interface {
	Create(ctx context.Context, input CreateBuildInput) (*BuildDTO, error)
	GetByID(ctx context.Context, id int64) (*BuildDTO, error)
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]BuildDTO, error)
	UpdateName(ctx context.Context, id int64, name string) (*BuildDTO, error)
	Delete(ctx context.Context, id int64) (*BuildDTO, error)
}

// CreateBuildInput holds the validated payload to create a build.
type CreateBuildInput struct {
	Name string
	SKU  string
}

// service implements the build service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a build service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("build repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// Create inserts a new build.
func (s *service) Create(ctx context.Context, input CreateBuildInput) (*BuildDTO, error) {
	row := &models.Build{
		Name: input.Name,
		SKU:  input.SKU,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if db.Classify(err) == db.KindUnique {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, fmt.Sprintf("SKU %s already exists", input.SKU))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating build")
	}
	return NewBuildDTO(row), nil
}

// GetByID returns the build or a not-found error.
func (s *service) GetByID(ctx context.Context, id int64) (*BuildDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading build")
	}
	return NewBuildDTO(row), nil
}

// List returns matching builds; an empty page is a valid result.
func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]BuildDTO, error) {
	rows, err := s.repo.List(ctx, filters, pagination.Normalize(page))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing builds")
	}
	out := make([]BuildDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewBuildDTO(&rows[i]))
	}
	return out, nil
}

// UpdateName replaces the build name and returns the updated row.
func (s *service) UpdateName(ctx context.Context, id int64, name string) (*BuildDTO, error) {
	var updated *models.Build
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		affected, err := repo.UpdateName(ctx, id, name)
		if err != nil {
			return err
		}
		if affected == 0 {
			return gorm.ErrRecordNotFound
		}
		row, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating build")
	}
	return NewBuildDTO(updated), nil
}

// Delete removes the build and returns its prior state. Link rows are
// cascaded by the store; linked products and tools are untouched.
func (s *service) Delete(ctx context.Context, id int64) (*BuildDTO, error) {
	var prior *models.Build
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		row, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		prior = row
		return nil
	})
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting build")
	}
	return NewBuildDTO(prior), nil
}
