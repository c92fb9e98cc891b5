package models

// Build is a named assembly identified by a unique SKU. The sku and id are
// immutable after creation; only the name can change.
type Build struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
	SKU  string `gorm:"column:sku;not null;uniqueIndex:idx_builds_sku"`
}

func (Build) TableName() string {
	return "builds"
}
