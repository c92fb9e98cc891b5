package models

// BuildTool links a Build to a Tool it requires, same shape and foreign-key
// semantics as BuildProduct.
type BuildTool struct {
	ToolID           int64 `gorm:"column:tool_id;primaryKey;autoIncrement:false"`
	BuildID          int64 `gorm:"column:build_id;primaryKey;autoIncrement:false"`
	QuantityRequired int64 `gorm:"column:quantity_required;not null;check:quantity_required > 0"`
}

func (BuildTool) TableName() string {
	return "build_tools"
}
