package tool

import (
	"fmt"
	"testing"

	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mustCreateTestTool(t *testing.T, conn *gorm.DB, owned, avail int64) *models.Tool {
	t.Helper()
	row := &models.Tool{
		Name:       "Impact Driver",
		Vendor:     "Makita",
		TotalOwned: owned,
		TotalAvail: avail,
	}
	if err := conn.Create(row).Error; err != nil {
		t.Fatalf("create tool: %v", err)
	}
	return row
}

// mustRequireForBuild creates a build and a build_tools row referencing the
// tool, so deletes hit the RESTRICT foreign key.
func mustRequireForBuild(t *testing.T, conn *gorm.DB, toolID int64) {
	t.Helper()
	build := &models.Build{
		Name: "Workbench Frame",
		SKU:  fmt.Sprintf("bld-%s", uuid.NewString()),
	}
	if err := conn.Create(build).Error; err != nil {
		t.Fatalf("create build: %v", err)
	}
	link := &models.BuildTool{
		ToolID:           toolID,
		BuildID:          build.ID,
		QuantityRequired: 1,
	}
	if err := conn.Create(link).Error; err != nil {
		t.Fatalf("create build link: %v", err)
	}
}
