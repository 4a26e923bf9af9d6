package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/constants"
)

// EmployeeService 员工管理服务
type EmployeeService struct {
	uc  *biz.EmployeeUseCase
	log *log.Helper
}

// NewEmployeeService 创建 EmployeeService
func NewEmployeeService(uc *biz.EmployeeUseCase, logger log.Logger) *EmployeeService {
	return &EmployeeService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// EmployeeReply 员工信息
type EmployeeReply struct {
	EmployeeID   string  `json:"employee_id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	HireDate     string  `json:"hire_date"`
	RechargeRate float64 `json:"recharge_rate"`
	Status       string  `json:"status"`
}

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Phone string `json:"phone" validate:"max=20"`
	// HireDate 入职日期，格式 2006-01-02，可空
	HireDate string `json:"hire_date"`
	// RechargeRate 充值提成比例（百分比）
	RechargeRate float64 `json:"recharge_rate" validate:"gte=0,lte=100"`
	Status       string  `json:"status" validate:"omitempty,oneof=active departed"`
}

// UpdateEmployeeRequest 更新员工请求
type UpdateEmployeeRequest struct {
	EmployeeID   string  `json:"employee_id" validate:"required"`
	Name         string  `json:"name" validate:"required,max=64"`
	Phone        string  `json:"phone" validate:"max=20"`
	HireDate     string  `json:"hire_date"`
	RechargeRate float64 `json:"recharge_rate" validate:"gte=0,lte=100"`
	Status       string  `json:"status" validate:"required,oneof=active departed"`
}

// CommissionReply 项目提成配置
type CommissionReply struct {
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	EmployeeID  string  `json:"employee_id"`
	Rate        float64 `json:"rate"`
}

// UpsertCommissionRequest 设置项目提成请求
type UpsertCommissionRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	ServiceID  string `json:"service_id" validate:"required"`
	// Rate 提成比例（百分比，10 表示 10%）
	Rate float64 `json:"rate" validate:"gte=0,lte=100"`
}

func employeeToReply(e *biz.Employee) *EmployeeReply {
	return &EmployeeReply{
		EmployeeID:   e.EmployeeID,
		Name:         e.Name,
		Phone:        e.Phone,
		HireDate:     formatDate(e.HireDate),
		RechargeRate: e.RechargeRate,
		Status:       e.Status,
	}
}

// CreateEmployee 创建员工
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*EmployeeReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = constants.EmployeeStatusActive
	}

	e, err := s.uc.CreateEmployee(ctx, &biz.Employee{
		Name:         req.Name,
		Phone:        req.Phone,
		HireDate:     hireDate,
		RechargeRate: req.RechargeRate,
		Status:       status,
	})
	if err != nil {
		s.log.Errorf("CreateEmployee failed: %v", err)
		return nil, err
	}
	return employeeToReply(e), nil
}

// UpdateEmployee 更新员工
func (s *EmployeeService) UpdateEmployee(ctx context.Context, req *UpdateEmployeeRequest) (*EmployeeReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, err
	}

	if err := s.uc.UpdateEmployee(ctx, &biz.Employee{
		EmployeeID:   req.EmployeeID,
		Name:         req.Name,
		Phone:        req.Phone,
		HireDate:     hireDate,
		RechargeRate: req.RechargeRate,
		Status:       req.Status,
	}); err != nil {
		s.log.Errorf("UpdateEmployee failed: %v", err)
		return nil, err
	}

	e, err := s.uc.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	return employeeToReply(e), nil
}

// DeleteEmployee 删除员工（连带删除其项目提成配置）
func (s *EmployeeService) DeleteEmployee(ctx context.Context, employeeID string) error {
	if err := s.uc.DeleteEmployee(ctx, employeeID); err != nil {
		s.log.Errorf("DeleteEmployee failed: %v", err)
		return err
	}
	return nil
}

// GetEmployee 按 ID 获取员工
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string) (*EmployeeReply, error) {
	e, err := s.uc.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return employeeToReply(e), nil
}

// ListEmployees 获取全部员工
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*EmployeeReply, error) {
	employees, err := s.uc.ListEmployees(ctx)
	if err != nil {
		s.log.Errorf("ListEmployees failed: %v", err)
		return nil, err
	}

	replies := make([]*EmployeeReply, 0, len(employees))
	for _, e := range employees {
		replies = append(replies, employeeToReply(e))
	}
	return replies, nil
}

// UpsertCommission 设置员工在某服务项目上的提成比例
func (s *EmployeeService) UpsertCommission(ctx context.Context, req *UpsertCommissionRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	if err := s.uc.UpsertProjectCommission(ctx, &biz.ProjectCommission{
		ServiceID:  req.ServiceID,
		EmployeeID: req.EmployeeID,
		Rate:       req.Rate,
	}); err != nil {
		s.log.Errorf("UpsertCommission failed: %v", err)
		return err
	}
	return nil
}

// DeleteCommission 删除员工在某服务项目上的提成配置
func (s *EmployeeService) DeleteCommission(ctx context.Context, serviceID, employeeID string) error {
	if err := s.uc.DeleteProjectCommission(ctx, serviceID, employeeID); err != nil {
		s.log.Errorf("DeleteCommission failed: %v", err)
		return err
	}
	return nil
}

// ListCommissions 获取员工的全部项目提成配置
func (s *EmployeeService) ListCommissions(ctx context.Context, employeeID string) ([]*CommissionReply, error) {
	commissions, err := s.uc.ListProjectCommissions(ctx, employeeID)
	if err != nil {
		s.log.Errorf("ListCommissions failed: %v", err)
		return nil, err
	}

	replies := make([]*CommissionReply, 0, len(commissions))
	for _, c := range commissions {
		replies = append(replies, &CommissionReply{
			ServiceID:   c.ServiceID,
			ServiceName: c.ServiceName,
			EmployeeID:  c.EmployeeID,
			Rate:        c.Rate,
		})
	}
	return replies, nil
}
