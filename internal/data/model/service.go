package model

import (
	"time"
)

// Service 服务项目表
// vip_price / diamond_price 可以为空，为空时按标准价收费
type Service struct {
	ServiceID    string    `gorm:"primaryKey;type:varchar(36)"`
	Name         string    `gorm:"uniqueIndex;type:varchar(64);not null"`
	Category     string    `gorm:"type:varchar(32);not null"`
	Price        float64   `gorm:"type:decimal(10,2);not null"`
	VipPrice     *float64  `gorm:"type:decimal(10,2)"`
	DiamondPrice *float64  `gorm:"type:decimal(10,2)"`
	Status       string    `gorm:"type:varchar(16);not null;default:'enabled'"` // enabled:启用, disabled:停用
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Service) TableName() string {
	return "service"
}
