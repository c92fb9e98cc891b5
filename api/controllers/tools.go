package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buildbench/inven-backend/api/responses"
	"github.com/buildbench/inven-backend/api/validators"
	toolsvc "github.com/buildbench/inven-backend/internal/tools"
	"github.com/buildbench/inven-backend/pkg/enums"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
	"github.com/buildbench/inven-backend/pkg/logger"
)

type createToolRequest struct {
	Name   string `json:"name" validate:"required"`
	Vendor string `json:"vendor" validate:"required"`
	Owned  *int64 `json:"owned,omitempty"`
	Avail  *int64 `json:"avail,omitempty"`
}

type setToolCountsRequest struct {
	Owned *int64 `json:"owned,omitempty"`
	Avail *int64 `json:"avail,omitempty"`
}

func parseToolCounter(r *http.Request) (enums.ToolCounter, error) {
	counter, err := enums.ParseToolCounter(chi.URLParam(r, "counter"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "counter must be owned or available")
	}
	return counter, nil
}

// ListTools handles GET /tools with equality filters and pagination.
func ListTools(svc toolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := toolsvc.ListFilters{
			Name:   validators.QueryString(r, "name"),
			Vendor: validators.QueryString(r, "vendor"),
		}

		tools, err := svc.List(r.Context(), filters, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tools)
	}
}

// CreateTool handles POST /tools.
func CreateTool(svc toolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createToolRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tool, err := svc.Create(r.Context(), toolsvc.CreateToolInput{
			Name:       payload.Name,
			Vendor:     payload.Vendor,
			TotalOwned: payload.Owned,
			TotalAvail: payload.Avail,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tool)
	}
}

// GetTool handles GET /tools/{toolId}.
func GetTool(svc toolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "toolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tool, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tool)
	}
}

// SetToolCounts handles PUT /tools/{toolId}: replaces whichever counters the
// body provides.
func SetToolCounts(svc toolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "toolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setToolCountsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tool, err := svc.SetCounts(r.Context(), id, toolsvc.SetToolCountsInput{
			TotalOwned: payload.Owned,
			TotalAvail: payload.Avail,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tool)
	}
}

// DeleteTool handles DELETE /tools/{toolId}, returning the deleted row.
func DeleteTool(svc toolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "toolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tool, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tool)
	}
}

// AdjustToolCounterPostImage handles
// PUT /tools/{toolId}/{counter}/{op}/get: delta first, then read.
func AdjustToolCounterPostImage(svc toolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "toolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		counter, err := parseToolCounter(r)
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

		result, err := svc.AdjustCounterPostImage(r.Context(), id, counter, op, value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdjustToolCounterPreImage handles
// PUT /tools/{toolId}/{counter}/get/{op}: read first, then delta.
func AdjustToolCounterPreImage(svc toolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "toolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		counter, err := parseToolCounter(r)
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

		result, err := svc.AdjustCounterPreImage(r.Context(), id, counter, op, value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
