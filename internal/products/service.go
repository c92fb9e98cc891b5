package product

import (
	"context"
	"fmt"

	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/enums"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service exposes product inventory operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetByID(ctx context.Context, id int64) (*ProductDTO, error)
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]ProductDTO, error)
	Delete(ctx context.Context, id int64) (*ProductDTO, error)
	SetQuantity(ctx context.Context, id, quantity int64) (*ProductDTO, error)
	AdjustQuantityPostImage(ctx context.Context, id int64, op enums.AtomicOp, value int64) (*ProductPostUpdateDTO, error)
	AdjustQuantityPreImage(ctx context.Context, id int64, op enums.AtomicOp, value int64) (*ProductPreUpdateDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Vendor      string
	ProductType enums.ProductType
	VendorSKU   string
	Quantity    int64
}

// service implements the product service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// Create inserts a new product. Quantity bounds are enforced by the store
// check constraint, not pre-checked here.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if !input.ProductType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid product type %q", input.ProductType))
	}

	row := &models.Product{
		Name:        input.Name,
		Vendor:      input.Vendor,
		ProductType: input.ProductType,
		VendorSKU:   input.VendorSKU,
		Quantity:    input.Quantity,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		switch db.Classify(err) {
		case db.KindUnique:
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Vendor SKU already exists")
		case db.KindCheck:
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "quantity cannot be negative")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return NewProductDTO(row), nil
}

// GetByID returns the product or a not-found error. It never panics on a
// missing row.
func (s *service) GetByID(ctx context.Context, id int64) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return NewProductDTO(row), nil
}

// List returns matching products; an empty page is a valid result.
func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, filters, pagination.Normalize(page))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out, nil
}

// Delete removes the product and returns its prior state. A product still
// referenced by a build cannot be deleted.
func (s *service) Delete(ctx context.Context, id int64) (*ProductDTO, error) {
	var prior *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		row, err := repo.FindByIDLocked(ctx, id)
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
		switch db.Classify(err) {
		case db.KindNotFound:
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found")
		case db.KindForeignKey:
			return nil, pkgerrors.Wrap(pkgerrors.CodeInUse, err, "Product is still part of an active build")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return NewProductDTO(prior), nil
}

// SetQuantity replaces the stored quantity after a physical count. The row is
// locked so the count cannot interleave with a concurrent delta.
func (s *service) SetQuantity(ctx context.Context, id, quantity int64) (*ProductDTO, error) {
	var updated *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByIDLocked(ctx, id); err != nil {
			return err
		}
		if err := repo.UpdateQuantity(ctx, id, quantity); err != nil {
			return err
		}
		row, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, s.classifyQuantityErr(err)
	}
	return NewProductDTO(updated), nil
}

// AdjustQuantityPostImage applies a delta and reports the quantity re-read
// inside the same transaction.
func (s *service) AdjustQuantityPostImage(ctx context.Context, id int64, op enums.AtomicOp, value int64) (*ProductPostUpdateDTO, error) {
	delta, err := deltaFor(op, value)
	if err != nil {
		return nil, err
	}

	var after *models.Product
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByIDLocked(ctx, id); err != nil {
			return err
		}
		if err := repo.AdjustQuantity(ctx, id, delta); err != nil {
			return err
		}
		row, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		after = row
		return nil
	})
	if err != nil {
		return nil, s.classifyQuantityErr(err)
	}
	return &ProductPostUpdateDTO{
		ProductID:          after.ID,
		VendorSKU:          after.VendorSKU,
		PostUpdateQuantity: after.Quantity,
	}, nil
}

// AdjustQuantityPreImage applies a delta and reports the quantity snapshotted
// before the update statement ran. The loaded model is never consulted after
// the statement, so the snapshot cannot leak the new value.
func (s *service) AdjustQuantityPreImage(ctx context.Context, id int64, op enums.AtomicOp, value int64) (*ProductPreUpdateDTO, error) {
	delta, err := deltaFor(op, value)
	if err != nil {
		return nil, err
	}

	var snapshot models.Product
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		row, err := repo.FindByIDLocked(ctx, id)
		if err != nil {
			return err
		}
		snapshot = *row
		return repo.AdjustQuantity(ctx, id, delta)
	})
	if err != nil {
		return nil, s.classifyQuantityErr(err)
	}
	return &ProductPreUpdateDTO{
		ProductID:         snapshot.ID,
		VendorSKU:         snapshot.VendorSKU,
		PreUpdateQuantity: snapshot.Quantity,
	}, nil
}

func (s *service) classifyQuantityErr(err error) error {
	switch db.Classify(err) {
	case db.KindNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Product not found")
	case db.KindCheck:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "quantity cannot be negative")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product quantity")
}

// deltaFor converts an operation plus magnitude into a signed delta.
func deltaFor(op enums.AtomicOp, value int64) (int64, error) {
	if !op.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid atomic operation %q", op))
	}
	if value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "value must be greater than zero")
	}
	if op == enums.AtomicOpDecrement {
		return -value, nil
	}
	return value, nil
}
