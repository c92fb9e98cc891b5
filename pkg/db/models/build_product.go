package models

// BuildProduct links a Build to a Product it consumes. Rows are owned by the
// build (deleted with it) and only reference the product, which cannot be
// removed while a row points at it.
type BuildProduct struct {
	ProductID        int64 `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	BuildID          int64 `gorm:"column:build_id;primaryKey;autoIncrement:false"`
	QuantityRequired int64 `gorm:"column:quantity_required;not null;check:quantity_required > 0"`
}

func (BuildProduct) TableName() string {
	return "build_products"
}
