package model

import (
	"time"
)

// 流水类型常量
const (
	// EntryKindCharge 消费扣款
	EntryKindCharge = "charge"
	// EntryKindRecharge 充值
	EntryKindRecharge = "recharge"
)

// LedgerEntry 余额流水表
// 只追加，创建后不允许更新或删除，与 member.balance 互为校验
type LedgerEntry struct {
	LedgerEntryID string  `gorm:"primaryKey;type:varchar(36)"`
	MemberID      string  `gorm:"type:varchar(36);not null;index:idx_member_date,priority:1"`
	ServiceID     *string `gorm:"type:varchar(36)"` // 纯充值时为空
	Kind          string  `gorm:"type:varchar(16);not null"` // charge:消费, recharge:充值
	Amount        float64 `gorm:"type:decimal(10,2);not null"`
	BalanceBefore float64 `gorm:"type:decimal(10,2);not null"`
	BalanceAfter  float64 `gorm:"type:decimal(10,2);not null"`
	OperatorID    *string `gorm:"type:varchar(36)"`
	// CommissionAmount 经手员工的提成金额，仅用于报表，不参与余额结算
	CommissionAmount float64   `gorm:"type:decimal(10,2);not null;default:0.00"`
	PaymentMethod    string    `gorm:"type:varchar(16)"` // 仅充值流水填写
	Remark           string    `gorm:"type:varchar(255)"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index:idx_member_date,priority:2"`
}

// TableName 指定表名
func (LedgerEntry) TableName() string {
	return "ledger_entry"
}
