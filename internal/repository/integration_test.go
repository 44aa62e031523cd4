//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kumar4425/Employee-Management-system/internal/model"
)

// 集成测试需要一个真实的 PostgreSQL 实例：
//
//	TEST_DATABASE_DSN="host=localhost user=postgres password=postgres dbname=ems_test port=5432 sslmode=disable" \
//	go test -tags integration ./internal/repository/...

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		fmt.Println("跳过集成测试：未设置 TEST_DATABASE_DSN")
		os.Exit(0)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Printf("连接测试数据库失败: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&model.Department{}, &model.Employee{}); err != nil {
		fmt.Printf("迁移测试库失败: %v\n", err)
		os.Exit(1)
	}

	testDB = db
	os.Exit(m.Run())
}

// resetTables 清空两张表并重置自增序列
func resetTables(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("TRUNCATE employees, departments RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("清空测试表失败: %v", err)
	}
}

func createDept(t *testing.T, repo DepartmentRepository, name string) *model.Department {
	t.Helper()
	dept := &model.Department{Name: name}
	if err := repo.Create(context.Background(), dept); err != nil {
		t.Fatalf("创建部门 %q 失败: %v", name, err)
	}
	return dept
}

func createEmp(t *testing.T, repo EmployeeRepository, name, email string, deptID *uint, salary float64) *model.Employee {
	t.Helper()
	emp := &model.Employee{Name: name, Email: email, DepartmentID: deptID, Salary: salary}
	if err := repo.Create(context.Background(), emp); err != nil {
		t.Fatalf("创建员工 %q 失败: %v", name, err)
	}
	return emp
}

// ── 部门约束 ──

func TestIntegration_DepartmentDuplicateName(t *testing.T) {
	resetTables(t)
	repo := NewDepartmentRepo(testDB)
	ctx := context.Background()

	createDept(t, repo, "Engineering")

	err := repo.Create(ctx, &model.Department{Name: "Engineering"})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("期望 ErrDuplicateName，实际: %v", err)
	}

	// 大小写不同视为不同部门
	if err := repo.Create(ctx, &model.Department{Name: "engineering"}); err != nil {
		t.Errorf("不同大小写的部门名应允许创建: %v", err)
	}
}

func TestIntegration_DepartmentListOrderedByName(t *testing.T) {
	resetTables(t)
	repo := NewDepartmentRepo(testDB)

	createDept(t, repo, "Sales")
	createDept(t, repo, "Engineering")
	createDept(t, repo, "HR")

	depts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	want := []string{"Engineering", "HR", "Sales"}
	if len(depts) != len(want) {
		t.Fatalf("期望 %d 个部门，实际 %d", len(want), len(depts))
	}
	for i, name := range want {
		if depts[i].Name != name {
			t.Errorf("第 %d 个部门期望 %q，实际 %q", i, name, depts[i].Name)
		}
	}
}

// ── 员工约束 ──

func TestIntegration_EmployeeInvalidDepartment(t *testing.T) {
	resetTables(t)
	repo := NewEmployeeRepo(testDB)
	badID := uint(9999)

	err := repo.Create(context.Background(), &model.Employee{
		Name: "Ada", Email: "ada@example.com", DepartmentID: &badID,
	})
	if !errors.Is(err, ErrInvalidDepartment) {
		t.Errorf("期望 ErrInvalidDepartment，实际: %v", err)
	}
}

func TestIntegration_EmployeeDuplicateEmail(t *testing.T) {
	resetTables(t)
	empRepo := NewEmployeeRepo(testDB)
	ctx := context.Background()

	createEmp(t, empRepo, "Ada", "ada@example.com", nil, 95000)
	bob := createEmp(t, empRepo, "Bob", "bob@example.com", nil, 60000)

	// 创建路径
	err := empRepo.Create(ctx, &model.Employee{Name: "Eve", Email: "ada@example.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("创建重复邮箱期望 ErrDuplicateEmail，实际: %v", err)
	}

	// 更新路径
	_, err = empRepo.UpdateFields(ctx, bob.ID, map[string]interface{}{"email": "ada@example.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("更新为重复邮箱期望 ErrDuplicateEmail，实际: %v", err)
	}
}

func TestIntegration_UpdateFieldsInvalidDepartment(t *testing.T) {
	resetTables(t)
	empRepo := NewEmployeeRepo(testDB)
	ctx := context.Background()

	ada := createEmp(t, empRepo, "Ada", "ada@example.com", nil, 95000)

	_, err := empRepo.UpdateFields(ctx, ada.ID, map[string]interface{}{"department_id": 9999})
	if !errors.Is(err, ErrInvalidDepartment) {
		t.Errorf("期望 ErrInvalidDepartment，实际: %v", err)
	}
}

// ── 搜索 ──

func TestIntegration_SearchCaseInsensitive(t *testing.T) {
	resetTables(t)
	empRepo := NewEmployeeRepo(testDB)
	ctx := context.Background()

	createEmp(t, empRepo, "Ana", "ana@example.com", nil, 50000)
	createEmp(t, empRepo, "DIANA", "diana@example.com", nil, 60000)
	createEmp(t, empRepo, "Bob", "bob@example.com", nil, 55000)

	rows, err := empRepo.SearchByName(ctx, "ana")
	if err != nil {
		t.Fatalf("SearchByName 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望匹配 2 行，实际 %d", len(rows))
	}
	if rows[0].Name != "Ana" || rows[1].Name != "DIANA" {
		t.Errorf("匹配结果或顺序不符: %v, %v", rows[0].Name, rows[1].Name)
	}

	// 无匹配返回空列表而非错误
	rows, err = empRepo.SearchByName(ctx, "zzz")
	if err != nil {
		t.Fatalf("空匹配不应报错: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("期望空结果，实际 %d 行", len(rows))
	}
}

func TestIntegration_ListWithDepartment(t *testing.T) {
	resetTables(t)
	deptRepo := NewDepartmentRepo(testDB)
	empRepo := NewEmployeeRepo(testDB)

	eng := createDept(t, deptRepo, "Engineering")
	createEmp(t, empRepo, "Ada", "ada@example.com", &eng.ID, 95000)
	createEmp(t, empRepo, "Bob", "bob@example.com", nil, 60000)

	rows, err := empRepo.ListWithDepartment(context.Background())
	if err != nil {
		t.Fatalf("ListWithDepartment 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望 2 行，实际 %d", len(rows))
	}
	if rows[0].DepartmentName == nil || *rows[0].DepartmentName != "Engineering" {
		t.Errorf("Ada 的部门名期望 Engineering，实际: %v", rows[0].DepartmentName)
	}
	if rows[1].DepartmentName != nil {
		t.Errorf("未分配部门的员工部门名应为 nil，实际: %v", *rows[1].DepartmentName)
	}
}

// ── 部分更新 ──

func TestIntegration_PartialUpdate(t *testing.T) {
	resetTables(t)
	empRepo := NewEmployeeRepo(testDB)
	ctx := context.Background()

	ada := createEmp(t, empRepo, "Ada", "ada@example.com", nil, 95000)

	matched, err := empRepo.UpdateFields(ctx, ada.ID, map[string]interface{}{"salary": 105000})
	if err != nil || !matched {
		t.Fatalf("更新薪资失败: matched=%v err=%v", matched, err)
	}

	got, err := empRepo.GetByID(ctx, ada.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.Salary != 105000 {
		t.Errorf("薪资期望 105000，实际 %v", got.Salary)
	}
	if got.Name != "Ada" || got.Email != "ada@example.com" {
		t.Errorf("未更新的字段应保持不变: %+v", got)
	}

	// id 不存在时 matched=false
	matched, err = empRepo.UpdateFields(ctx, 9999, map[string]interface{}{"salary": 1})
	if err != nil {
		t.Fatalf("不存在的 id 更新不应报错: %v", err)
	}
	if matched {
		t.Error("不存在的 id 不应匹配任何行")
	}
}

// ── 部门删除保护 ──

func TestIntegration_DeleteDepartmentGuard(t *testing.T) {
	resetTables(t)
	deptRepo := NewDepartmentRepo(testDB)
	empRepo := NewEmployeeRepo(testDB)
	ctx := context.Background()

	eng := createDept(t, deptRepo, "Engineering")
	ada := createEmp(t, empRepo, "Ada", "ada@example.com", &eng.ID, 95000)

	// 有员工时拒绝删除
	deleted, err := deptRepo.DeleteIfEmpty(ctx, eng.ID)
	if err != nil {
		t.Fatalf("DeleteIfEmpty 失败: %v", err)
	}
	if deleted {
		t.Error("有员工的部门不应被删除")
	}
	count, err := empRepo.CountByDepartment(ctx, eng.ID)
	if err != nil || count != 1 {
		t.Errorf("期望部门下 1 名员工，实际 count=%d err=%v", count, err)
	}

	// 移除员工后可删除
	if _, err := empRepo.Delete(ctx, ada.ID); err != nil {
		t.Fatalf("删除员工失败: %v", err)
	}
	deleted, err = deptRepo.DeleteIfEmpty(ctx, eng.ID)
	if err != nil {
		t.Fatalf("DeleteIfEmpty 失败: %v", err)
	}
	if !deleted {
		t.Error("空部门应被删除")
	}

	// 已删除的部门再次删除返回 false
	deleted, err = deptRepo.DeleteIfEmpty(ctx, eng.ID)
	if err != nil {
		t.Fatalf("DeleteIfEmpty 失败: %v", err)
	}
	if deleted {
		t.Error("不存在的部门不应报告删除成功")
	}
}

// ── 端到端场景 ──

func TestIntegration_EndToEndScenario(t *testing.T) {
	resetTables(t)
	deptRepo := NewDepartmentRepo(testDB)
	empRepo := NewEmployeeRepo(testDB)
	ctx := context.Background()

	eng := createDept(t, deptRepo, "Engineering")
	ada := createEmp(t, empRepo, "Ada Lovelace", "ada@example.com", &eng.ID, 95000)

	rows, err := empRepo.SearchByName(ctx, "ADA")
	if err != nil || len(rows) != 1 {
		t.Fatalf("搜索 ADA 期望命中 1 行，实际 %d err=%v", len(rows), err)
	}

	if _, err := empRepo.UpdateFields(ctx, ada.ID, map[string]interface{}{"salary": 120000}); err != nil {
		t.Fatalf("调薪失败: %v", err)
	}

	if deleted, _ := deptRepo.DeleteIfEmpty(ctx, eng.ID); deleted {
		t.Fatal("Ada 仍在部门中，删除不应成功")
	}

	if _, err := empRepo.Delete(ctx, ada.ID); err != nil {
		t.Fatalf("删除员工失败: %v", err)
	}
	if deleted, _ := deptRepo.DeleteIfEmpty(ctx, eng.ID); !deleted {
		t.Fatal("员工移除后部门应可删除")
	}
}
