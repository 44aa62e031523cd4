package handler

import "github.com/kumar4425/Employee-Management-system/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Employee   *EmployeeHandler
	Department *DepartmentHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Employee:   NewEmployeeHandler(svc.Employee),
		Department: NewDepartmentHandler(svc.Department),
		Export:     NewExportHandler(svc.Export),
	}
}
