package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/constants"
)

// MemberService 会员管理服务
type MemberService struct {
	uc  *biz.MemberUseCase
	log *log.Helper
}

// NewMemberService 创建 MemberService
func NewMemberService(uc *biz.MemberUseCase, logger log.Logger) *MemberService {
	return &MemberService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// MemberReply 会员信息
type MemberReply struct {
	MemberID  string  `json:"member_id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Level     string  `json:"level"`
	Balance   float64 `json:"balance"`
	Status    string  `json:"status"`
	Remark    string  `json:"remark"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreateMemberRequest 创建会员请求
type CreateMemberRequest struct {
	Name   string `json:"name" validate:"required,max=64"`
	Phone  string `json:"phone" validate:"required,max=20"`
	Level  string `json:"level" validate:"omitempty,oneof=standard vip diamond"`
	Status string `json:"status" validate:"omitempty,oneof=active suspended closed"`
	Remark string `json:"remark" validate:"max=255"`
}

// UpdateMemberRequest 更新会员请求（不含余额，余额只能走流水）
type UpdateMemberRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=64"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Level    string `json:"level" validate:"required,oneof=standard vip diamond"`
	Status   string `json:"status" validate:"required,oneof=active suspended closed"`
	Remark   string `json:"remark" validate:"max=255"`
}

// SearchMembersRequest 会员搜索条件
type SearchMembersRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Level  string `json:"level" validate:"omitempty,oneof=standard vip diamond"`
	Status string `json:"status" validate:"omitempty,oneof=active suspended closed"`
}

func memberToReply(m *biz.Member) *MemberReply {
	return &MemberReply{
		MemberID:  m.MemberID,
		Name:      m.Name,
		Phone:     m.Phone,
		Level:     m.Level,
		Balance:   m.Balance,
		Status:    m.Status,
		Remark:    m.Remark,
		CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: m.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// CreateMember 创建会员
func (s *MemberService) CreateMember(ctx context.Context, req *CreateMemberRequest) (*MemberReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	level := req.Level
	if level == "" {
		level = constants.MemberLevelStandard
	}
	status := req.Status
	if status == "" {
		status = constants.MemberStatusActive
	}

	m, err := s.uc.CreateMember(ctx, &biz.Member{
		Name:   req.Name,
		Phone:  req.Phone,
		Level:  level,
		Status: status,
		Remark: req.Remark,
	})
	if err != nil {
		s.log.Errorf("CreateMember failed: %v", err)
		return nil, err
	}
	return memberToReply(m), nil
}

// UpdateMember 更新会员资料
func (s *MemberService) UpdateMember(ctx context.Context, req *UpdateMemberRequest) (*MemberReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	if err := s.uc.UpdateMember(ctx, &biz.Member{
		MemberID: req.MemberID,
		Name:     req.Name,
		Phone:    req.Phone,
		Level:    req.Level,
		Status:   req.Status,
		Remark:   req.Remark,
	}); err != nil {
		s.log.Errorf("UpdateMember failed: %v", err)
		return nil, err
	}

	m, err := s.uc.GetMember(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	return memberToReply(m), nil
}

// DeleteMember 删除会员
func (s *MemberService) DeleteMember(ctx context.Context, memberID string) error {
	if err := s.uc.DeleteMember(ctx, memberID); err != nil {
		s.log.Errorf("DeleteMember failed: %v", err)
		return err
	}
	return nil
}

// GetMember 按 ID 获取会员
func (s *MemberService) GetMember(ctx context.Context, memberID string) (*MemberReply, error) {
	m, err := s.uc.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return memberToReply(m), nil
}

// GetMemberByPhone 按手机号获取会员
func (s *MemberService) GetMemberByPhone(ctx context.Context, phone string) (*MemberReply, error) {
	m, err := s.uc.GetMemberByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return memberToReply(m), nil
}

// SearchMembers 按条件搜索会员
func (s *MemberService) SearchMembers(ctx context.Context, req *SearchMembersRequest) ([]*MemberReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	members, err := s.uc.ListMembers(ctx, &biz.MemberFilter{
		Name:   req.Name,
		Phone:  req.Phone,
		Level:  req.Level,
		Status: req.Status,
	})
	if err != nil {
		s.log.Errorf("SearchMembers failed: %v", err)
		return nil, err
	}

	replies := make([]*MemberReply, 0, len(members))
	for _, m := range members {
		replies = append(replies, memberToReply(m))
	}
	return replies, nil
}
