package controllers

import (
	"net/http"

	"github.com/buildbench/inven-backend/api/responses"
	"github.com/buildbench/inven-backend/api/validators"
	buildsvc "github.com/buildbench/inven-backend/internal/builds"
	"github.com/buildbench/inven-backend/pkg/logger"
)

type createBuildRequest struct {
	Name string `json:"name" validate:"required"`
	SKU  string `json:"sku" validate:"required"`
}

type updateBuildRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListBuilds handles GET /builds with equality filters and pagination.
func ListBuilds(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := buildsvc.ListFilters{
			Name: validators.QueryString(r, "name"),
			SKU:  validators.QueryString(r, "sku"),
		}

		builds, err := svc.List(r.Context(), filters, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, builds)
	}
}

// CreateBuild handles POST /builds.
func CreateBuild(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBuildRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		build, err := svc.Create(r.Context(), buildsvc.CreateBuildInput{
			Name: payload.Name,
			SKU:  payload.SKU,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, build)
	}
}

// GetBuild handles GET /builds/{buildId}.
func GetBuild(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		build, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, build)
	}
}

// UpdateBuild handles PUT /builds/{buildId}. Only the name is mutable.
func UpdateBuild(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBuildRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		build, err := svc.UpdateName(r.Context(), id, payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, build)
	}
}

// DeleteBuild handles DELETE /builds/{buildId}, returning the deleted row.
func DeleteBuild(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		build, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, build)
	}
}
