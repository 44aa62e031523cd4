package service

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/kumar4425/Employee-Management-system/internal/model"
	"github.com/kumar4425/Employee-Management-system/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// 内存版 Mock Repository（Service 层测试用）
// ═══════════════════════════════════════════════════════════

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[uint]*model.Employee
	deptNames map[uint]string // id → 部门名，供联表投影与外键校验使用
	nextID    uint
	failErr   error // 非空时所有操作直接返回该错误
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees: make(map[uint]*model.Employee),
		deptNames: make(map[uint]string),
		nextID:    1,
	}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if m.failErr != nil {
		return m.failErr
	}
	for _, e := range m.employees {
		if e.Email == emp.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if emp.DepartmentID != nil {
		if _, ok := m.deptNames[*emp.DepartmentID]; !ok {
			return repository.ErrInvalidDepartment
		}
	}
	emp.ID = m.nextID
	m.nextID++
	clone := *emp
	m.employees[emp.ID] = &clone
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id uint) (*model.Employee, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	emp, ok := m.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *emp
	return &clone, nil
}

func (m *mockEmployeeRepo) ListWithDepartment(_ context.Context) ([]repository.EmployeeRow, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.project(func(*model.Employee) bool { return true }), nil
}

func (m *mockEmployeeRepo) SearchByName(_ context.Context, fragment string) ([]repository.EmployeeRow, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	lower := strings.ToLower(fragment)
	return m.project(func(e *model.Employee) bool {
		return strings.Contains(strings.ToLower(e.Name), lower)
	}), nil
}

// project 模拟左联部门名的投影，按 id 升序
func (m *mockEmployeeRepo) project(match func(*model.Employee) bool) []repository.EmployeeRow {
	ids := make([]uint, 0, len(m.employees))
	for id := range m.employees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []repository.EmployeeRow
	for _, id := range ids {
		e := m.employees[id]
		if !match(e) {
			continue
		}
		row := repository.EmployeeRow{
			ID:     e.ID,
			Name:   e.Name,
			Email:  e.Email,
			Salary: e.Salary,
		}
		if e.DepartmentID != nil {
			if name, ok := m.deptNames[*e.DepartmentID]; ok {
				n := name
				row.DepartmentName = &n
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *mockEmployeeRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	if len(fields) == 0 {
		return true, nil
	}
	emp, ok := m.employees[id]
	if !ok {
		return false, nil
	}

	if v, ok := fields["email"]; ok {
		email := v.(string)
		for otherID, e := range m.employees {
			if otherID != id && e.Email == email {
				return false, repository.ErrDuplicateEmail
			}
		}
		emp.Email = email
	}
	if v, ok := fields["department_id"]; ok {
		deptID := v.(uint)
		if _, exists := m.deptNames[deptID]; !exists {
			return false, repository.ErrInvalidDepartment
		}
		emp.DepartmentID = &deptID
	}
	if v, ok := fields["name"]; ok {
		emp.Name = v.(string)
	}
	if v, ok := fields["salary"]; ok {
		emp.Salary = v.(float64)
	}
	return true, nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id uint) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	if _, ok := m.employees[id]; !ok {
		return false, nil
	}
	delete(m.employees, id)
	return true, nil
}

func (m *mockEmployeeRepo) CountByDepartment(_ context.Context, departmentID uint) (int64, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	var count int64
	for _, e := range m.employees {
		if e.DepartmentID != nil && *e.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	departments map[uint]*model.Department
	emp         *mockEmployeeRepo // 依赖检查与员工数统计
	nextID      uint
	failErr     error
}

func newMockDepartmentRepo(emp *mockEmployeeRepo) *mockDepartmentRepo {
	return &mockDepartmentRepo{
		departments: make(map[uint]*model.Department),
		emp:         emp,
		nextID:      1,
	}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if m.failErr != nil {
		return m.failErr
	}
	for _, d := range m.departments {
		if d.Name == dept.Name {
			return repository.ErrDuplicateName
		}
	}
	dept.ID = m.nextID
	m.nextID++
	clone := *dept
	m.departments[dept.ID] = &clone
	m.emp.deptNames[dept.ID] = dept.Name
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id uint) (*model.Department, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	dept, ok := m.departments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *dept
	return &clone, nil
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	depts := make([]model.Department, 0, len(m.departments))
	for _, d := range m.departments {
		depts = append(depts, *d)
	}
	sort.Slice(depts, func(i, j int) bool { return depts[i].Name < depts[j].Name })
	return depts, nil
}

func (m *mockDepartmentRepo) DeleteIfEmpty(ctx context.Context, id uint) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	if _, ok := m.departments[id]; !ok {
		return false, nil
	}
	count, _ := m.emp.CountByDepartment(ctx, id)
	if count > 0 {
		return false, nil
	}
	delete(m.departments, id)
	delete(m.emp.deptNames, id)
	return true, nil
}

func (m *mockDepartmentRepo) BatchCountEmployees(ctx context.Context, ids []uint) (map[uint]int64, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	counts := make(map[uint]int64, len(ids))
	for _, id := range ids {
		n, _ := m.emp.CountByDepartment(ctx, id)
		if n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

// ── 测试装配 ──

func newMockRepository() (*repository.Repository, *mockDepartmentRepo, *mockEmployeeRepo) {
	empRepo := newMockEmployeeRepo()
	deptRepo := newMockDepartmentRepo(empRepo)
	repo := &repository.Repository{
		Employee:   empRepo,
		Department: deptRepo,
	}
	return repo, deptRepo, empRepo
}
