package service

import (
	"go.uber.org/zap"

	"github.com/kumar4425/Employee-Management-system/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Employee   EmployeeService
	Department DepartmentService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Employee:   NewEmployeeService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
