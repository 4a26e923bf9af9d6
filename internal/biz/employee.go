package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	employeeErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// Employee 员工领域对象
type Employee struct {
	EmployeeID string
	Name       string
	Phone      string
	HireDate   *time.Time
	// RechargeRate 充值提成比例（百分比，5 表示 5%）
	RechargeRate float64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProjectCommission 项目提成领域对象
type ProjectCommission struct {
	ServiceID   string
	ServiceName string
	EmployeeID  string
	Rate        float64
	UpdatedAt   time.Time
}

// EmployeeRepo 员工数据层接口（定义在 biz 层）
type EmployeeRepo interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	UpdateEmployee(ctx context.Context, e *Employee) error
	DeleteEmployee(ctx context.Context, employeeID string) error
	GetEmployee(ctx context.Context, employeeID string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)

	UpsertProjectCommission(ctx context.Context, c *ProjectCommission) error
	DeleteProjectCommission(ctx context.Context, serviceID, employeeID string) error
	ListProjectCommissions(ctx context.Context, employeeID string) ([]*ProjectCommission, error)
	// GetProjectCommissionRate 查 (服务项目, 员工) 的提成比例，未配置返回 0
	GetProjectCommissionRate(ctx context.Context, serviceID, employeeID string) (float64, error)
}

// EmployeeUseCase 员工业务逻辑
type EmployeeUseCase struct {
	repo EmployeeRepo
	log  *log.Helper
}

// NewEmployeeUseCase 创建员工 UseCase
func NewEmployeeUseCase(repo EmployeeRepo, logger log.Logger) *EmployeeUseCase {
	return &EmployeeUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// CreateEmployee 新建员工
func (uc *EmployeeUseCase) CreateEmployee(ctx context.Context, e *Employee) (*Employee, error) {
	if err := uc.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEmployee 更新员工
func (uc *EmployeeUseCase) UpdateEmployee(ctx context.Context, e *Employee) error {
	current, err := uc.repo.GetEmployee(ctx, e.EmployeeID)
	if err != nil {
		return err
	}
	if current == nil {
		return employeeErrors.ErrEmployeeNotFound(e.EmployeeID)
	}
	return uc.repo.UpdateEmployee(ctx, e)
}

// DeleteEmployee 删除员工
func (uc *EmployeeUseCase) DeleteEmployee(ctx context.Context, employeeID string) error {
	current, err := uc.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if current == nil {
		return employeeErrors.ErrEmployeeNotFound(employeeID)
	}
	return uc.repo.DeleteEmployee(ctx, employeeID)
}

// GetEmployee 按 ID 获取员工
func (uc *EmployeeUseCase) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	e, err := uc.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, employeeErrors.ErrEmployeeNotFound(employeeID)
	}
	return e, nil
}

// ListEmployees 获取全部员工
func (uc *EmployeeUseCase) ListEmployees(ctx context.Context) ([]*Employee, error) {
	return uc.repo.ListEmployees(ctx)
}

// UpsertProjectCommission 设置员工在某个服务项目上的提成比例
func (uc *EmployeeUseCase) UpsertProjectCommission(ctx context.Context, c *ProjectCommission) error {
	e, err := uc.repo.GetEmployee(ctx, c.EmployeeID)
	if err != nil {
		return err
	}
	if e == nil {
		return employeeErrors.ErrEmployeeNotFound(c.EmployeeID)
	}
	return uc.repo.UpsertProjectCommission(ctx, c)
}

// DeleteProjectCommission 移除 (服务项目, 员工) 的提成配置
func (uc *EmployeeUseCase) DeleteProjectCommission(ctx context.Context, serviceID, employeeID string) error {
	return uc.repo.DeleteProjectCommission(ctx, serviceID, employeeID)
}

// ListProjectCommissions 获取员工的全部项目提成配置
func (uc *EmployeeUseCase) ListProjectCommissions(ctx context.Context, employeeID string) ([]*ProjectCommission, error) {
	return uc.repo.ListProjectCommissions(ctx, employeeID)
}
