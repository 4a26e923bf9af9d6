package model

import (
	"time"
)

// Setting 设置表（键值对，存登录密码哈希等）
type Setting struct {
	SettingKey   string    `gorm:"primaryKey;column:setting_key;type:varchar(64)"`
	SettingValue string    `gorm:"column:setting_value;type:varchar(255);not null"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "setting"
}
