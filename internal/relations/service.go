package relations

import (
	"context"
	"fmt"

	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/models"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service manages the links between builds and the products/tools they
// consume. Links carry a quantity and never own the linked entity.
type Service interface {
	ListBuildProducts(ctx context.Context, buildID int64, page pagination.Params) (*BuildProductsDTO, error)
	GetBuildProduct(ctx context.Context, buildID, productID int64) (*BuildProductDTO, error)
	AddBuildProduct(ctx context.Context, buildID, productID, quantity int64) (*BuildProductDTO, error)
	UpdateBuildProduct(ctx context.Context, buildID, productID, quantity int64) (*BuildProductDTO, error)
	DeleteBuildProduct(ctx context.Context, buildID, productID int64) (*BuildProductDTO, error)

	ListBuildTools(ctx context.Context, buildID int64, page pagination.Params) (*BuildToolsDTO, error)
	GetBuildTool(ctx context.Context, buildID, toolID int64) (*BuildToolDTO, error)
	AddBuildTool(ctx context.Context, buildID, toolID, quantity int64) (*BuildToolDTO, error)
	UpdateBuildTool(ctx context.Context, buildID, toolID, quantity int64) (*BuildToolDTO, error)
	DeleteBuildTool(ctx context.Context, buildID, toolID int64) (*BuildToolDTO, error)
}

// service implements the relations service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a relations service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("relations repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func productDTO(row *ProductLinkRow) LinkedProductDTO {
	return LinkedProductDTO{
		ProductID:        row.ProductID,
		Name:             row.Name,
		VendorSKU:        row.VendorSKU,
		ProductType:      row.ProductType,
		QuantityRequired: row.QuantityRequired,
	}
}

func toolDTO(row *ToolLinkRow) LinkedToolDTO {
	return LinkedToolDTO{
		ToolID:           row.ToolID,
		Name:             row.Name,
		Vendor:           row.Vendor,
		QuantityRequired: row.QuantityRequired,
	}
}

// ListBuildProducts returns the build's product links; a build with no links
// yields an empty list, a missing build a not-found error.
func (s *service) ListBuildProducts(ctx context.Context, buildID int64, page pagination.Params) (*BuildProductsDTO, error) {
	exists, err := s.repo.BuildExists(ctx, buildID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking build")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Build not found")
	}

	rows, err := s.repo.ListProductLinks(ctx, buildID, pagination.Normalize(page))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing build products")
	}
	out := &BuildProductsDTO{BuildID: buildID, Products: make([]LinkedProductDTO, 0, len(rows))}
	for i := range rows {
		out.Products = append(out.Products, productDTO(&rows[i]))
	}
	return out, nil
}

// GetBuildProduct returns one joined pair.
func (s *service) GetBuildProduct(ctx context.Context, buildID, productID int64) (*BuildProductDTO, error) {
	row, err := s.repo.GetProductLink(ctx, buildID, productID)
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build Product pair not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading build product")
	}
	return &BuildProductDTO{BuildID: buildID, Product: productDTO(row)}, nil
}

// AddBuildProduct links a product to a build. The product is checked before
// the build so a request missing both reports the product.
func (s *service) AddBuildProduct(ctx context.Context, buildID, productID, quantity int64) (*BuildProductDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}

	var row *ProductLinkRow
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		productExists, err := repo.ProductExists(ctx, productID)
		if err != nil {
			return err
		}
		if !productExists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		buildExists, err := repo.BuildExists(ctx, buildID)
		if err != nil {
			return err
		}
		if !buildExists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Build not found")
		}

		link := &models.BuildProduct{
			ProductID:        productID,
			BuildID:          buildID,
			QuantityRequired: quantity,
		}
		if err := repo.CreateProductLink(ctx, link); err != nil {
			return err
		}
		row, err = repo.GetProductLink(ctx, buildID, productID)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if db.Classify(err) == db.KindUnique {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Build Product pair already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding build product")
	}
	return &BuildProductDTO{BuildID: buildID, Product: productDTO(row)}, nil
}

// UpdateBuildProduct replaces the link quantity. Zero is not an update, it is
// a delete, and is rejected here.
func (s *service) UpdateBuildProduct(ctx context.Context, buildID, productID, quantity int64) (*BuildProductDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}

	var row *ProductLinkRow
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		affected, err := repo.UpdateProductLinkQuantity(ctx, buildID, productID, quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return gorm.ErrRecordNotFound
		}
		row, err = repo.GetProductLink(ctx, buildID, productID)
		return err
	})
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build Product pair not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating build product")
	}
	return &BuildProductDTO{BuildID: buildID, Product: productDTO(row)}, nil
}

// DeleteBuildProduct removes the link and returns the pair as it was. The
// product itself is never deleted.
func (s *service) DeleteBuildProduct(ctx context.Context, buildID, productID int64) (*BuildProductDTO, error) {
	var row *ProductLinkRow
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		snapshot, err := repo.GetProductLink(ctx, buildID, productID)
		if err != nil {
			return err
		}
		if err := repo.DeleteProductLink(ctx, buildID, productID); err != nil {
			return err
		}
		row = snapshot
		return nil
	})
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build Product pair not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting build product")
	}
	return &BuildProductDTO{BuildID: buildID, Product: productDTO(row)}, nil
}

// ListBuildTools returns the build's tool links.
func (s *service) ListBuildTools(ctx context.Context, buildID int64, page pagination.Params) (*BuildToolsDTO, error) {
	exists, err := s.repo.BuildExists(ctx, buildID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking build")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Build not found")
	}

	rows, err := s.repo.ListToolLinks(ctx, buildID, pagination.Normalize(page))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing build tools")
	}
	out := &BuildToolsDTO{BuildID: buildID, Tools: make([]LinkedToolDTO, 0, len(rows))}
	for i := range rows {
		out.Tools = append(out.Tools, toolDTO(&rows[i]))
	}
	return out, nil
}

// GetBuildTool returns one joined pair.
func (s *service) GetBuildTool(ctx context.Context, buildID, toolID int64) (*BuildToolDTO, error) {
	row, err := s.repo.GetToolLink(ctx, buildID, toolID)
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build Tool pair not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading build tool")
	}
	return &BuildToolDTO{BuildID: buildID, Tool: toolDTO(row)}, nil
}

// AddBuildTool links a tool to a build, checking the tool before the build.
func (s *service) AddBuildTool(ctx context.Context, buildID, toolID, quantity int64) (*BuildToolDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}

	var row *ToolLinkRow
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		toolExists, err := repo.ToolExists(ctx, toolID)
		if err != nil {
			return err
		}
		if !toolExists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Tool not found")
		}
		buildExists, err := repo.BuildExists(ctx, buildID)
		if err != nil {
			return err
		}
		if !buildExists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Build not found")
		}

		link := &models.BuildTool{
			ToolID:           toolID,
			BuildID:          buildID,
			QuantityRequired: quantity,
		}
		if err := repo.CreateToolLink(ctx, link); err != nil {
			return err
		}
		row, err = repo.GetToolLink(ctx, buildID, toolID)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if db.Classify(err) == db.KindUnique {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Build Tool pair already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding build tool")
	}
	return &BuildToolDTO{BuildID: buildID, Tool: toolDTO(row)}, nil
}

// UpdateBuildTool replaces the link quantity.
func (s *service) UpdateBuildTool(ctx context.Context, buildID, toolID, quantity int64) (*BuildToolDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}

	var row *ToolLinkRow
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		affected, err := repo.UpdateToolLinkQuantity(ctx, buildID, toolID, quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return gorm.ErrRecordNotFound
		}
		row, err = repo.GetToolLink(ctx, buildID, toolID)
		return err
	})
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build Tool pair not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating build tool")
	}
	return &BuildToolDTO{BuildID: buildID, Tool: toolDTO(row)}, nil
}

// DeleteBuildTool removes the link and returns the pair as it was.
func (s *service) DeleteBuildTool(ctx context.Context, buildID, toolID int64) (*BuildToolDTO, error) {
	var row *ToolLinkRow
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		snapshot, err := repo.GetToolLink(ctx, buildID, toolID)
		if err != nil {
			return err
		}
		if err := repo.DeleteToolLink(ctx, buildID, toolID); err != nil {
			return err
		}
		row = snapshot
		return nil
	})
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Build Tool pair not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting build tool")
	}
	return &BuildToolDTO{BuildID: buildID, Tool: toolDTO(row)}, nil
}
