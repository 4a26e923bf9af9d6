package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	memberErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// Member 会员领域对象
// Balance 是流水核心维护的物化快照，只读，任何 CRUD 都不直接改它
type Member struct {
	MemberID  string
	Name      string
	Phone     string
	Level     string
	Balance   float64
	Status    string
	Remark    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberFilter 会员搜索条件
type MemberFilter struct {
	Name   string // 姓名（模糊）
	Phone  string // 手机号（模糊）
	Level  string // 会员等级（精确）
	Status string // 状态（精确）
}

// MemberRepo 会员数据层接口（定义在 biz 层）
type MemberRepo interface {
	CreateMember(ctx context.Context, m *Member) error
	UpdateMember(ctx context.Context, m *Member) error
	DeleteMember(ctx context.Context, memberID string) error
	GetMember(ctx context.Context, memberID string) (*Member, error)
	GetMemberByPhone(ctx context.Context, phone string) (*Member, error)
	ListMembers(ctx context.Context, filter *MemberFilter) ([]*Member, error)
}

// MemberUseCase 会员业务逻辑
type MemberUseCase struct {
	repo MemberRepo
	log  *log.Helper
}

// NewMemberUseCase 创建会员 UseCase
func NewMemberUseCase(repo MemberRepo, logger log.Logger) *MemberUseCase {
	return &MemberUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// CreateMember 新建会员（手机号唯一，初始余额为 0，开卡金额走充值流水）
func (uc *MemberUseCase) CreateMember(ctx context.Context, m *Member) (*Member, error) {
	existing, err := uc.repo.GetMemberByPhone(ctx, m.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, memberErrors.ErrPhoneExists(m.Phone)
	}
	m.Balance = 0
	if err := uc.repo.CreateMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMember 更新会员资料（不含余额）
func (uc *MemberUseCase) UpdateMember(ctx context.Context, m *Member) error {
	current, err := uc.repo.GetMember(ctx, m.MemberID)
	if err != nil {
		return err
	}
	if current == nil {
		return memberErrors.ErrMemberNotFound(m.MemberID)
	}
	if m.Phone != current.Phone {
		other, err := uc.repo.GetMemberByPhone(ctx, m.Phone)
		if err != nil {
			return err
		}
		if other != nil && other.MemberID != m.MemberID {
			return memberErrors.ErrPhoneExists(m.Phone)
		}
	}
	return uc.repo.UpdateMember(ctx, m)
}

// DeleteMember 删除会员（流水不级联删除，历史保留）
func (uc *MemberUseCase) DeleteMember(ctx context.Context, memberID string) error {
	current, err := uc.repo.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	if current == nil {
		return memberErrors.ErrMemberNotFound(memberID)
	}
	return uc.repo.DeleteMember(ctx, memberID)
}

// GetMember 按 ID 获取会员
func (uc *MemberUseCase) GetMember(ctx context.Context, memberID string) (*Member, error) {
	m, err := uc.repo.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, memberErrors.ErrMemberNotFound(memberID)
	}
	return m, nil
}

// GetMemberByPhone 按手机号获取会员
func (uc *MemberUseCase) GetMemberByPhone(ctx context.Context, phone string) (*Member, error) {
	m, err := uc.repo.GetMemberByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, memberErrors.ErrMemberNotFound(phone)
	}
	return m, nil
}

// ListMembers 按条件搜索会员，按创建时间倒序
func (uc *MemberUseCase) ListMembers(ctx context.Context, filter *MemberFilter) ([]*Member, error) {
	return uc.repo.ListMembers(ctx, filter)
}
