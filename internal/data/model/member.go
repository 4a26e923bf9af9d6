package model

import (
	"time"
)

// Member 会员表
// balance 只允许流水核心（Charge/Recharge 事务）修改
type Member struct {
	MemberID  string    `gorm:"primaryKey;type:varchar(36)"`
	Name      string    `gorm:"type:varchar(64);not null"`
	Phone     string    `gorm:"uniqueIndex;type:varchar(32);not null"`
	Level     string    `gorm:"type:varchar(16);not null;default:'standard'"` // standard:普通, vip:VIP, diamond:钻石
	Balance   float64   `gorm:"type:decimal(10,2);not null;default:0.00"`
	Status    string    `gorm:"type:varchar(16);not null;default:'active'"` // active:正常, suspended:停用, closed:注销
	Remark    string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Member) TableName() string {
	return "member"
}
