package build

import "github.com/buildbench/inven-backend/pkg/db/models"

// BuildDTO is the build payload returned to clients.
type BuildDTO struct {
	BuildID int64  `json:"build_id"`
	Name    string `json:"name"`
	SKU     string `json:"sku"`
}

// NewBuildDTO builds a DTO from the persisted model.
func NewBuildDTO(build *models.Build) *BuildDTO {
	return &BuildDTO{
		BuildID: build.ID,
		Name:    build.Name,
		SKU:     build.SKU,
	}
}
