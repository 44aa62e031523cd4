package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kumar4425/Employee-Management-system/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEmployees  = errors.New("暂无员工数据可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 员工名册导出为 Excel (.xlsx)，单 Sheet，一行一名员工
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportEmployees 导出员工名册为 Excel
	ExportEmployees(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportEmployees ──────────────────────
//
// 输出格式：
//   - Sheet "员工名册"
//   - 表头：ID / 姓名 / 邮箱 / 部门 / 薪资
//   - 部门未分配时显示 "-"，薪资保留两位小数
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportEmployees(ctx context.Context) (*bytes.Buffer, string, error) {
	rows, err := s.repo.Employee.ListWithDepartment(ctx)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoEmployees
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "员工名册"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := []interface{}{"ID", "姓名", "邮箱", "部门", "薪资"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		s.logger.Error("写入表头失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	for i, r := range rows {
		deptName := "-"
		if r.DepartmentName != nil {
			deptName = *r.DepartmentName
		}
		record := []interface{}{r.ID, r.Name, r.Email, deptName, fmt.Sprintf("%.2f", r.Salary)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			s.logger.Error("写入数据行失败", zap.Int("row", i+2), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("序列化 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("员工名册-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
