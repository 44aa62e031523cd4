package dto

// ── 部门模块 DTO ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// DepartmentResponse 部门响应（含员工数）
type DepartmentResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int64  `json:"employee_count"`
}
