package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buildbench/inven-backend/api/validators"
	"github.com/buildbench/inven-backend/pkg/enums"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
	"github.com/buildbench/inven-backend/pkg/pagination"
)

const maxPageSize = 1000

func parsePagination(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 0, 0, int(^uint(0)>>1))
	if err != nil {
		return pagination.Params{}, err
	}
	pageSize, err := validators.ParseQueryInt(r, "page_size", pagination.DefaultPageSize, 1, maxPageSize)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PageSize: pageSize}, nil
}

// parseAtomicOp reads the {op} path segment.
func parseAtomicOp(r *http.Request) (enums.AtomicOp, error) {
	op, err := enums.ParseAtomicOp(chi.URLParam(r, "op"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "operation must be increment or decrement")
	}
	return op, nil
}

// parseDeltaValue reads the optional ?value= magnitude, defaulting to one.
func parseDeltaValue(r *http.Request) (int64, error) {
	value, err := validators.ParseQueryInt64(r, "value", 1)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "value must be greater than zero")
	}
	return value, nil
}
