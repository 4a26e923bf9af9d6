package model

import (
	"time"
)

// Employee 员工表
type Employee struct {
	EmployeeID string     `gorm:"primaryKey;type:varchar(36)"`
	Name       string     `gorm:"type:varchar(64);not null"`
	Phone      string     `gorm:"type:varchar(32)"`
	HireDate   *time.Time `gorm:"type:date"`
	// RechargeRate 充值提成比例（百分比，5 表示 5%）
	RechargeRate float64   `gorm:"type:decimal(5,2);not null;default:0.00"`
	Status       string    `gorm:"type:varchar(16);not null;default:'active'"` // active:在职, departed:离职
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Employee) TableName() string {
	return "employee"
}

// ProjectCommission 项目提成表
// 一个 (服务项目, 员工) 组合一条比例记录
type ProjectCommission struct {
	ProjectCommissionID string `gorm:"primaryKey;type:varchar(36)"`
	ServiceID           string `gorm:"type:varchar(36);not null;uniqueIndex:idx_service_employee,priority:1"`
	EmployeeID          string `gorm:"type:varchar(36);not null;uniqueIndex:idx_service_employee,priority:2"`
	// Rate 提成比例（百分比）
	Rate      float64   `gorm:"type:decimal(5,2);not null;default:0.00"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (ProjectCommission) TableName() string {
	return "project_commission"
}
