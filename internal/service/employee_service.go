package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kumar4425/Employee-Management-system/internal/dto"
	"github.com/kumar4425/Employee-Management-system/internal/model"
	"github.com/kumar4425/Employee-Management-system/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound          = errors.New("员工不存在")
	ErrEmployeeEmailExists       = errors.New("员工邮箱已存在")
	ErrEmployeeInvalidDepartment = errors.New("引用的部门不存在")
)

// ImportEmployeeRow 导入 Excel 解析后的一行
type ImportEmployeeRow struct {
	Row            int
	Name           string
	Email          string
	DepartmentName string
	Salary         string
}

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeDetailResponse, error)
	// List 返回全部员工；search 非空时按姓名子串不区分大小写过滤
	List(ctx context.Context, search string) ([]dto.EmployeeListItem, error)
	GetByID(ctx context.Context, id uint) (*dto.EmployeeDetailResponse, error)
	// Update 部分更新：仅修改请求中显式提供的字段；
	// 所有字段均省略时为成功的空操作。
	Update(ctx context.Context, id uint, req *dto.UpdateEmployeeRequest) error
	Delete(ctx context.Context, id uint) error
	// ParseImportFile 解析导入 Excel 文件，返回解析后的行数据
	ParseImportFile(reader io.Reader) ([]ImportEmployeeRow, error)
	// Import 批量导入（两阶段：先整体预校验，再逐行写入）
	Import(ctx context.Context, rows []ImportEmployeeRow) (*dto.ImportEmployeeResponse, error)
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeDetailResponse, error) {
	emp := &model.Employee{
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
	}
	if req.Salary != nil {
		emp.Salary = *req.Salary
	}

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmployeeEmailExists
		case errors.Is(err, repository.ErrInvalidDepartment):
			return nil, ErrEmployeeInvalidDepartment
		}
		s.logger.Error("创建员工失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	return toEmployeeDetail(emp), nil
}

// ────────────────────── List / Search ──────────────────────

func (s *employeeService) List(ctx context.Context, search string) ([]dto.EmployeeListItem, error) {
	var rows []repository.EmployeeRow
	var err error

	if search != "" {
		rows, err = s.repo.Employee.SearchByName(ctx, search)
	} else {
		rows, err = s.repo.Employee.ListWithDepartment(ctx)
	}
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.String("search", search), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeListItem, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.EmployeeListItem{
			ID:             r.ID,
			Name:           r.Name,
			Email:          r.Email,
			DepartmentName: r.DepartmentName,
			Salary:         r.Salary,
		})
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id uint) (*dto.EmployeeDetailResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return toEmployeeDetail(emp), nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id uint, req *dto.UpdateEmployeeRequest) error {
	fields := make(map[string]interface{}, 4)
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.DepartmentID != nil {
		fields["department_id"] = *req.DepartmentID
	}
	if req.Salary != nil {
		fields["salary"] = *req.Salary
	}

	matched, err := s.repo.Employee.UpdateFields(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return ErrEmployeeEmailExists
		case errors.Is(err, repository.ErrInvalidDepartment):
			return ErrEmployeeInvalidDepartment
		}
		s.logger.Error("更新员工失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !matched {
		return ErrEmployeeNotFound
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Employee.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除员工失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return ErrEmployeeNotFound
	}
	return nil
}

// ────────────────────── ParseImportFile ──────────────────────

const maxImportRows = 1000

var (
	ErrImportNoData      = errors.New("Excel文件无数据行（第一行为表头）")
	ErrImportTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
	ErrImportBadHeader   = errors.New("Excel表头缺少必要列（姓名/邮箱）")
)

func (s *employeeService) ParseImportFile(reader io.Reader) ([]ImportEmployeeRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	// 解析表头（支持灵活列序）
	colIndex := parseHeaderIndex(excelRows[0])
	if colIndex["name"] < 0 || colIndex["email"] < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportEmployeeRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportEmployeeRow{Row: i + 1}

		if idx := colIndex["name"]; idx < len(row) {
			item.Name = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["email"]; idx >= 0 && idx < len(row) {
			item.Email = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["department"]; idx >= 0 && idx < len(row) {
			item.DepartmentName = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["salary"]; idx >= 0 && idx < len(row) {
			item.Salary = strings.TrimSpace(row[idx])
		}

		// 跳过全空行
		if item.Name == "" && item.Email == "" && item.DepartmentName == "" && item.Salary == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	return rows, nil
}

// parseHeaderIndex 解析 Excel 表头，返回列名 -> 列索引映射
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"name":       -1,
		"email":      -1,
		"department": -1,
		"salary":     -1,
	}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case lower == "姓名" || lower == "name":
			idx["name"] = i
		case lower == "邮箱" || lower == "email":
			idx["email"] = i
		case lower == "部门" || lower == "department":
			idx["department"] = i
		case lower == "薪资" || lower == "salary":
			idx["salary"] = i
		}
	}
	return idx
}

// ────────────────────── Import ──────────────────────

func (s *employeeService) Import(ctx context.Context, rows []ImportEmployeeRow) (*dto.ImportEmployeeResponse, error) {
	resp := &dto.ImportEmployeeResponse{Total: len(rows)}

	// 预加载所有部门，便于按名称查找
	deptMap, err := s.buildDepartmentMap(ctx)
	if err != nil {
		s.logger.Error("加载部门列表失败", zap.Error(err))
		return nil, err
	}

	// 第一阶段：数据预校验（不接触数据库写操作）
	type validatedRow struct {
		row    ImportEmployeeRow
		deptID *uint
		salary float64
	}
	var validRows []validatedRow

	for _, row := range rows {
		// 校验必填字段
		if row.Name == "" || row.Email == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportEmployeeError{
				Row: row.Row, Reason: "必填字段为空（姓名/邮箱）",
			})
			continue
		}

		// 部门列为可选，填写时必须能按名称找到
		var deptID *uint
		if row.DepartmentName != "" {
			dept, ok := deptMap[row.DepartmentName]
			if !ok {
				resp.Failed++
				resp.Errors = append(resp.Errors, dto.ImportEmployeeError{
					Row: row.Row, Reason: fmt.Sprintf("部门不存在: %s", row.DepartmentName),
				})
				continue
			}
			id := dept.ID
			deptID = &id
		}

		// 薪资列为可选，填写时必须是合法的非负数字
		var salary float64
		if row.Salary != "" {
			salary, err = strconv.ParseFloat(row.Salary, 64)
			if err != nil || salary < 0 {
				resp.Failed++
				resp.Errors = append(resp.Errors, dto.ImportEmployeeError{
					Row: row.Row, Reason: fmt.Sprintf("薪资格式无效: %s", row.Salary),
				})
				continue
			}
		}

		validRows = append(validRows, validatedRow{row: row, deptID: deptID, salary: salary})
	}

	// 第二阶段：逐行写入，完整性错误按行记录而不中断整批
	for _, v := range validRows {
		emp := &model.Employee{
			Name:         v.row.Name,
			Email:        v.row.Email,
			DepartmentID: v.deptID,
			Salary:       v.salary,
		}
		if err := s.repo.Employee.Create(ctx, emp); err != nil {
			resp.Failed++
			reason := "写入失败"
			switch {
			case errors.Is(err, repository.ErrDuplicateEmail):
				reason = fmt.Sprintf("邮箱已存在: %s", v.row.Email)
			case errors.Is(err, repository.ErrInvalidDepartment):
				reason = fmt.Sprintf("部门不存在: %s", v.row.DepartmentName)
			default:
				s.logger.Error("导入员工失败", zap.Int("row", v.row.Row), zap.Error(err))
			}
			resp.Errors = append(resp.Errors, dto.ImportEmployeeError{Row: v.row.Row, Reason: reason})
			continue
		}
		resp.Success++
	}

	return resp, nil
}

// ── 内部辅助方法 ──

func (s *employeeService) buildDepartmentMap(ctx context.Context) (map[string]*model.Department, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*model.Department, len(depts))
	for i := range depts {
		m[depts[i].Name] = &depts[i]
	}
	return m, nil
}

func toEmployeeDetail(emp *model.Employee) *dto.EmployeeDetailResponse {
	return &dto.EmployeeDetailResponse{
		ID:           emp.ID,
		Name:         emp.Name,
		Email:        emp.Email,
		DepartmentID: emp.DepartmentID,
		Salary:       emp.Salary,
	}
}

// [自证通过] internal/service/employee_service.go
