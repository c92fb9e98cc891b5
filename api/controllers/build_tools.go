package controllers

import (
	"net/http"

	"github.com/buildbench/inven-backend/api/responses"
	"github.com/buildbench/inven-backend/api/validators"
	"github.com/buildbench/inven-backend/internal/relations"
	"github.com/buildbench/inven-backend/pkg/logger"
)

type addBuildToolRequest struct {
	ToolID   int64 `json:"tool_id" validate:"required,gt=0"`
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// ListBuildTools handles GET /builds/{buildId}/tools.
func ListBuildTools(svc relations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buildID, err := validators.ParsePathID(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListBuildTools(r.Context(), buildID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AddBuildTool handles POST /builds/{buildId}/tools.
func AddBuildTool(svc relations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buildID, err := validators.ParsePathID(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addBuildToolRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddBuildTool(r.Context(), buildID, payload.ToolID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetBuildTool handles GET /builds/{buildId}/tools/{toolId}.
func GetBuildTool(svc relations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buildID, err := validators.ParsePathID(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		toolID, err := validators.ParsePathID(r, "toolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetBuildTool(r.Context(), buildID, toolID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateBuildTool handles PUT /builds/{buildId}/tools/{toolId}.
func UpdateBuildTool(svc relations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buildID, err := validators.ParsePathID(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		toolID, err := validators.ParsePathID(r, "toolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateLinkQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateBuildTool(r.Context(), buildID, toolID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DeleteBuildTool handles DELETE /builds/{buildId}/tools/{toolId}.
func DeleteBuildTool(svc relations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buildID, err := validators.ParsePathID(r, "buildId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		toolID, err := validators.ParsePathID(r, "toolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.DeleteBuildTool(r.Context(), buildID, toolID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
