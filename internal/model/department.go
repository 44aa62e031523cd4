package model

// Department 部门表（departments）
type Department struct {
	ID   uint   `gorm:"primaryKey"                  json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:departments_name_key" json:"name"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
