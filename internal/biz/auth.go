package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/IfFaith/MemberLite/internal/conf"
	"github.com/IfFaith/MemberLite/internal/constants"
	authErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// SettingRepo 设置表数据层接口（定义在 biz 层）
type SettingRepo interface {
	// GetSetting 读取设置项，不存在时返回空串
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// LoginResult 登录结果
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// AuthUseCase 登录业务逻辑
// 单操作员模型：用户名固定，密码哈希存设置表（沿用桌面端本地口令门）
type AuthUseCase struct {
	repo   SettingRepo
	secret []byte
	expire time.Duration
	log    *log.Helper
}

// NewAuthUseCase 创建登录 UseCase
func NewAuthUseCase(repo SettingRepo, c *conf.Bootstrap, logger log.Logger) *AuthUseCase {
	secret := "memberlite-dev-secret"
	expireHours := 12
	if c.Auth != nil {
		if c.Auth.JWTSecret != "" {
			secret = c.Auth.JWTSecret
		}
		if c.Auth.TokenExpireHours > 0 {
			expireHours = c.Auth.TokenExpireHours
		}
	}
	return &AuthUseCase{
		repo:   repo,
		secret: []byte(secret),
		expire: time.Duration(expireHours) * time.Hour,
		log:    log.NewHelper(logger),
	}
}

// Login 校验账号密码并签发令牌
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username != constants.DefaultUsername {
		return nil, authErrors.ErrInvalidCredentials()
	}
	hash, err := uc.repo.GetSetting(ctx, constants.SettingKeyPasswordHash)
	if err != nil {
		return nil, err
	}
	if hash == "" {
		return nil, authErrors.ErrInvalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		uc.log.Warnf("login rejected: username=%s", username)
		return nil, authErrors.ErrInvalidCredentials()
	}

	expiresAt := time.Now().Add(uc.expire)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(uc.secret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: signed, ExpiresAt: expiresAt}, nil
}

// ChangePassword 修改登录密码
func (uc *AuthUseCase) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	hash, err := uc.repo.GetSetting(ctx, constants.SettingKeyPasswordHash)
	if err != nil {
		return err
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)) != nil {
		return authErrors.ErrInvalidCredentials()
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.SetSetting(ctx, constants.SettingKeyPasswordHash, string(newHash))
}

// VerifyToken 校验令牌签名与有效期
func (uc *AuthUseCase) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authErrors.ErrUnauthorized()
		}
		return uc.secret, nil
	})
	if err != nil || !token.Valid {
		return authErrors.ErrUnauthorized()
	}
	return nil
}
