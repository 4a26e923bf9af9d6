package data

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/data/model"
	dataErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// memberRepo 会员数据访问
type memberRepo struct {
	data *Data
	log  *log.Helper
}

// NewMemberRepo 创建会员 repo（返回 biz.MemberRepo 接口）
func NewMemberRepo(data *Data, logger log.Logger) biz.MemberRepo {
	return &memberRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func memberToBiz(m *model.Member) *biz.Member {
	return &biz.Member{
		MemberID:  m.MemberID,
		Name:      m.Name,
		Phone:     m.Phone,
		Level:     m.Level,
		Balance:   m.Balance,
		Status:    m.Status,
		Remark:    m.Remark,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CreateMember 新建会员
func (r *memberRepo) CreateMember(ctx context.Context, b *biz.Member) error {
	if b.MemberID == "" {
		b.MemberID = uuid.New().String()
	}
	m := model.Member{
		MemberID: b.MemberID,
		Name:     b.Name,
		Phone:    b.Phone,
		Level:    b.Level,
		Balance:  b.Balance,
		Status:   b.Status,
		Remark:   b.Remark,
	}
	if err := r.data.DB().WithContext(ctx).Create(&m).Error; err != nil {
		r.log.Errorf("CreateMember failed: phone=%s, error=%v", b.Phone, err)
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}

// UpdateMember 更新会员资料，不触碰 balance 列
func (r *memberRepo) UpdateMember(ctx context.Context, b *biz.Member) error {
	err := r.data.DB().WithContext(ctx).Model(&model.Member{}).
		Where("member_id = ?", b.MemberID).
		Updates(map[string]interface{}{
			"name":   b.Name,
			"phone":  b.Phone,
			"level":  b.Level,
			"status": b.Status,
			"remark": b.Remark,
		}).Error
	if err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}

// DeleteMember 删除会员（流水保留）
func (r *memberRepo) DeleteMember(ctx context.Context, memberID string) error {
	if err := r.data.DB().WithContext(ctx).
		Where("member_id = ?", memberID).Delete(&model.Member{}).Error; err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}

// GetMember 按 ID 查会员，不存在返回 nil（业务层决定是否报错）
func (r *memberRepo) GetMember(ctx context.Context, memberID string) (*biz.Member, error) {
	var m model.Member
	if err := r.data.DB().WithContext(ctx).Where("member_id = ?", memberID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dataErrors.ErrStorageFailure(err)
	}
	return memberToBiz(&m), nil
}

// GetMemberByPhone 按手机号查会员，不存在返回 nil
func (r *memberRepo) GetMemberByPhone(ctx context.Context, phone string) (*biz.Member, error) {
	var m model.Member
	if err := r.data.DB().WithContext(ctx).Where("phone = ?", phone).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dataErrors.ErrStorageFailure(err)
	}
	return memberToBiz(&m), nil
}

// ListMembers 按搜索条件查会员，按创建时间倒序
func (r *memberRepo) ListMembers(ctx context.Context, filter *biz.MemberFilter) ([]*biz.Member, error) {
	db := r.data.DB().WithContext(ctx).Model(&model.Member{})
	if filter != nil {
		if filter.Name != "" {
			db = db.Where("name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.Phone != "" {
			db = db.Where("phone LIKE ?", "%"+filter.Phone+"%")
		}
		if filter.Level != "" {
			db = db.Where("level = ?", filter.Level)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
	}

	var models []model.Member
	if err := db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}
	members := make([]*biz.Member, 0, len(models))
	for i := range models {
		members = append(members, memberToBiz(&models[i]))
	}
	return members, nil
}
