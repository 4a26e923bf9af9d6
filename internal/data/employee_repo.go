package data

import (
	"context"
	"errors"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/data/model"
	dataErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// employeeRepo 员工数据访问
type employeeRepo struct {
	data *Data
	log  *log.Helper
}

// NewEmployeeRepo 创建员工 repo（返回 biz.EmployeeRepo 接口）
func NewEmployeeRepo(data *Data, logger log.Logger) biz.EmployeeRepo {
	return &employeeRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func employeeToBiz(m *model.Employee) *biz.Employee {
	return &biz.Employee{
		EmployeeID:   m.EmployeeID,
		Name:         m.Name,
		Phone:        m.Phone,
		HireDate:     m.HireDate,
		RechargeRate: m.RechargeRate,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CreateEmployee 新建员工
func (r *employeeRepo) CreateEmployee(ctx context.Context, b *biz.Employee) error {
	if b.EmployeeID == "" {
		b.EmployeeID = uuid.New().String()
	}
	m := model.Employee{
		EmployeeID:   b.EmployeeID,
		Name:         b.Name,
		Phone:        b.Phone,
		HireDate:     b.HireDate,
		RechargeRate: b.RechargeRate,
		Status:       b.Status,
	}
	if err := r.data.DB().WithContext(ctx).Create(&m).Error; err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}

// UpdateEmployee 更新员工
func (r *employeeRepo) UpdateEmployee(ctx context.Context, b *biz.Employee) error {
	err := r.data.DB().WithContext(ctx).Model(&model.Employee{}).
		Where("employee_id = ?", b.EmployeeID).
		Updates(map[string]interface{}{
			"name":          b.Name,
			"phone":         b.Phone,
			"hire_date":     b.HireDate,
			"recharge_rate": b.RechargeRate,
			"status":        b.Status,
		}).Error
	if err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}

// DeleteEmployee 删除员工及其项目提成配置
func (r *employeeRepo) DeleteEmployee(ctx context.Context, employeeID string) error {
	err := r.data.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&model.ProjectCommission{}).Error; err != nil {
			return err
		}
		return tx.Where("employee_id = ?", employeeID).Delete(&model.Employee{}).Error
	})
	if err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}

// GetEmployee 按 ID 查员工，不存在返回 nil
func (r *employeeRepo) GetEmployee(ctx context.Context, employeeID string) (*biz.Employee, error) {
	var m model.Employee
	if err := r.data.DB().WithContext(ctx).Where("employee_id = ?", employeeID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dataErrors.ErrStorageFailure(err)
	}
	return employeeToBiz(&m), nil
}

// ListEmployees 获取全部员工，按创建时间倒序
func (r *employeeRepo) ListEmployees(ctx context.Context) ([]*biz.Employee, error) {
	var models []model.Employee
	if err := r.data.DB().WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}
	employees := make([]*biz.Employee, 0, len(models))
	for i := range models {
		employees = append(employees, employeeToBiz(&models[i]))
	}
	return employees, nil
}

// UpsertProjectCommission 设置 (服务项目, 员工) 的提成比例，存在则覆盖
func (r *employeeRepo) UpsertProjectCommission(ctx context.Context, c *biz.ProjectCommission) error {
	m := model.ProjectCommission{
		ProjectCommissionID: uuid.New().String(),
		ServiceID:           c.ServiceID,
		EmployeeID:          c.EmployeeID,
		Rate:                c.Rate,
	}
	err := r.data.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "service_id"}, {Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}

// DeleteProjectCommission 移除提成配置
func (r *employeeRepo) DeleteProjectCommission(ctx context.Context, serviceID, employeeID string) error {
	err := r.data.DB().WithContext(ctx).
		Where("service_id = ? AND employee_id = ?", serviceID, employeeID).
		Delete(&model.ProjectCommission{}).Error
	if err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}

// ListProjectCommissions 获取员工的项目提成配置（带服务项目名）
func (r *employeeRepo) ListProjectCommissions(ctx context.Context, employeeID string) ([]*biz.ProjectCommission, error) {
	var rows []struct {
		ServiceID   string
		ServiceName string
		EmployeeID  string
		Rate        float64
		UpdatedAt   time.Time
	}
	err := r.data.DB().WithContext(ctx).Model(&model.ProjectCommission{}).
		Select("project_commission.service_id", "service.name as service_name",
			"project_commission.employee_id", "project_commission.rate", "project_commission.updated_at").
		Joins("LEFT JOIN service ON service.service_id = project_commission.service_id").
		Where("project_commission.employee_id = ?", employeeID).
		Order("service.name").
		Scan(&rows).Error
	if err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	commissions := make([]*biz.ProjectCommission, 0, len(rows))
	for _, row := range rows {
		commissions = append(commissions, &biz.ProjectCommission{
			ServiceID:   row.ServiceID,
			ServiceName: row.ServiceName,
			EmployeeID:  row.EmployeeID,
			Rate:        row.Rate,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return commissions, nil
}

// GetProjectCommissionRate 查提成比例，未配置返回 0
func (r *employeeRepo) GetProjectCommissionRate(ctx context.Context, serviceID, employeeID string) (float64, error) {
	var m model.ProjectCommission
	err := r.data.DB().WithContext(ctx).
		Where("service_id = ? AND employee_id = ?", serviceID, employeeID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, dataErrors.ErrStorageFailure(err)
	}
	return m.Rate, nil
}
