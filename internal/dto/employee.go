package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
// DepartmentID 可省略（未分配部门）；Salary 可省略（默认 0.00）。
type CreateEmployeeRequest struct {
	Name         string   `json:"name"          binding:"required,min=1,max=100"`
	Email        string   `json:"email"         binding:"required,email,max=100"`
	DepartmentID *uint    `json:"department_id" binding:"omitempty,min=1"`
	Salary       *float64 `json:"salary"        binding:"omitempty,gte=0"`
}

// UpdateEmployeeRequest 部分更新员工请求
// 仅更新显式提供的字段；所有字段均省略时为成功的空操作。
type UpdateEmployeeRequest struct {
	Name         *string  `json:"name"          binding:"omitempty,min=1,max=100"`
	Email        *string  `json:"email"         binding:"omitempty,email,max=100"`
	DepartmentID *uint    `json:"department_id" binding:"omitempty,min=1"`
	Salary       *float64 `json:"salary"        binding:"omitempty,gte=0"`
}

// IsEmpty 是否没有提供任何待更新字段
func (r *UpdateEmployeeRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.DepartmentID == nil && r.Salary == nil
}

// ListEmployeesRequest 员工列表查询参数
type ListEmployeesRequest struct {
	Search string `form:"search"`
}

// EmployeeListItem 员工列表行（左联部门名）
type EmployeeListItem struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	DepartmentName *string `json:"department_name"`
	Salary         float64 `json:"salary"`
}

// EmployeeDetailResponse 员工详情（含原始 department_id，不做联表）
type EmployeeDetailResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	DepartmentID *uint   `json:"department_id"`
	Salary       float64 `json:"salary"`
}

// ── 批量导入 DTO ──

// ImportEmployeeError 导入失败行明细
type ImportEmployeeError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportEmployeeResponse 批量导入结果
type ImportEmployeeResponse struct {
	Total   int                   `json:"total"`
	Success int                   `json:"success"`
	Failed  int                   `json:"failed"`
	Errors  []ImportEmployeeError `json:"errors,omitempty"`
}
