package data

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/data/model"
	dataErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// settingRepo 设置表数据访问
type settingRepo struct {
	data *Data
	log  *log.Helper
}

// NewSettingRepo 创建设置 repo（返回 biz.SettingRepo 接口）
func NewSettingRepo(data *Data, logger log.Logger) biz.SettingRepo {
	return &settingRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// GetSetting 读取设置项，不存在返回空串
func (r *settingRepo) GetSetting(ctx context.Context, key string) (string, error) {
	var m model.Setting
	if err := r.data.DB().WithContext(ctx).Where("setting_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", dataErrors.ErrStorageFailure(err)
	}
	return m.SettingValue, nil
}

// SetSetting 写入设置项，存在则覆盖
func (r *settingRepo) SetSetting(ctx context.Context, key, value string) error {
	m := model.Setting{
		SettingKey:   key,
		SettingValue: value,
	}
	err := r.data.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}
