package tool

import "github.com/buildbench/inven-backend/pkg/db/models"

// ToolDTO is the full tool payload returned to clients.
type ToolDTO struct {
	ToolID     int64  `json:"tool_id"`
	Name       string `json:"name"`
	Vendor     string `json:"vendor"`
	TotalOwned int64  `json:"owned"`
	TotalAvail int64  `json:"avail"`
}

// ToolPreUpdateDTO carries the counters as they were before a delta was
// applied.
type ToolPreUpdateDTO struct {
	ToolID        int64 `json:"tool_id"`
	PreTotalOwned int64 `json:"preTotalOwned"`
	PreTotalAvail int64 `json:"preTotalAvail"`
}

// ToolPostUpdateDTO carries the counters re-read inside the same transaction
// after a delta was applied.
type ToolPostUpdateDTO struct {
	ToolID         int64 `json:"tool_id"`
	PostTotalOwned int64 `json:"postTotalOwned"`
	PostTotalAvail int64 `json:"postTotalAvail"`
}

// NewToolDTO builds a DTO from the persisted model.
func NewToolDTO(tool *models.Tool) *ToolDTO {
	return &ToolDTO{
		ToolID:     tool.ID,
		Name:       tool.Name,
		Vendor:     tool.Vendor,
		TotalOwned: tool.TotalOwned,
		TotalAvail: tool.TotalAvail,
	}
}
