package models

// Tool is reusable equipment. total_avail counts units not checked out, so
// the store enforces total_owned >= total_avail on every write.
type Tool struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string `gorm:"column:name;not null;check:chk_tools_owned_ge_avail,total_owned >= total_avail"`
	Vendor     string `gorm:"column:vendor;not null"`
	TotalOwned int64  `gorm:"column:total_owned;not null;default:1;check:total_owned > 0"`
	TotalAvail int64  `gorm:"column:total_avail;not null;default:0;check:total_avail >= 0"`
}

func (Tool) TableName() string {
	return "tools"
}
