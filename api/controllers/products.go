package controllers

import (
	"net/http"

	"github.com/buildbench/inven-backend/api/responses"
	"github.com/buildbench/inven-backend/api/validators"
	productsvc "github.com/buildbench/inven-backend/internal/products"
	"github.com/buildbench/inven-backend/pkg/enums"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
	"github.com/buildbench/inven-backend/pkg/logger"
)

type createProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Vendor      string `json:"vendor" validate:"required"`
	ProductType string `json:"product_type" validate:"required,oneof=part material"`
	VendorSKU   string `json:"vendor_sku" validate:"required"`
	Quantity    int64  `json:"quantity"`
}

type setProductQuantityRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=0"`
}

// ListProducts handles GET /products with equality filters and pagination.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := productsvc.ListFilters{
			Name:      validators.QueryString(r, "name"),
			Vendor:    validators.QueryString(r, "vendor"),
			VendorSKU: validators.QueryString(r, "sku"),
		}
		if raw := validators.QueryString(r, "product_type"); raw != nil {
			productType, err := enums.ParseProductType(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "product_type must be part or material"))
				return
			}
			filters.ProductType = &productType
		}

		products, err := svc.List(r.Context(), filters, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// CreateProduct handles POST /products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), productsvc.CreateProductInput{
			Name:        payload.Name,
			Vendor:      payload.Vendor,
			ProductType: enums.ProductType(payload.ProductType),
			VendorSKU:   payload.VendorSKU,
			Quantity:    payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// GetProduct handles GET /products/{productId}.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// SetProductQuantity handles PUT /products/{productId}: an absolute quantity
// set after a physical count.
func SetProductQuantity(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setProductQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.SetQuantity(r.Context(), id, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles DELETE /products/{productId}, returning the deleted
// row.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdjustProductQuantityPostImage handles
// PUT /products/{productId}/quantity/{op}/get: delta first, then read.
func AdjustProductQuantityPostImage(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		op, err := parseAtomicOp(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		value, err := parseDeltaValue(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdjustQuantityPostImage(r.Context(), id, op, value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdjustProductQuantityPreImage handles
// PUT /products/{productId}/quantity/get/{op}: read first, then delta.
func AdjustProductQuantityPreImage(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		op, err := parseAtomicOp(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		value, err := parseDeltaValue(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdjustQuantityPreImage(r.Context(), id, op, value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
