package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/biz"
)

// AuthService 登录服务
type AuthService struct {
	uc  *biz.AuthUseCase
	log *log.Helper
}

// NewAuthService 创建 AuthService
func NewAuthService(uc *biz.AuthUseCase, logger log.Logger) *AuthService {
	return &AuthService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginReply 登录结果
type LoginReply struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=64"`
}

// Login 登录换取令牌
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	result, err := s.uc.Login(ctx, req.Username, req.Password)
	if err != nil {
		s.log.Warnf("Login failed: username=%s err=%v", req.Username, err)
		return nil, err
	}
	return &LoginReply{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// ChangePassword 修改登录密码
func (s *AuthService) ChangePassword(ctx context.Context, req *ChangePasswordRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	if err := s.uc.ChangePassword(ctx, req.OldPassword, req.NewPassword); err != nil {
		s.log.Warnf("ChangePassword failed: %v", err)
		return err
	}
	return nil
}

// VerifyToken 校验令牌（server 层鉴权过滤器使用）
func (s *AuthService) VerifyToken(token string) error {
	return s.uc.VerifyToken(token)
}
