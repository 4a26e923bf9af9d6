package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/constants"
	catalogErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// Service 服务项目领域对象
type Service struct {
	ServiceID    string
	Name         string
	Category     string
	Price        float64
	VipPrice     *float64
	DiamondPrice *float64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CatalogRepo 服务项目数据层接口（定义在 biz 层）
type CatalogRepo interface {
	CreateService(ctx context.Context, s *Service) error
	UpdateService(ctx context.Context, s *Service) error
	DeleteService(ctx context.Context, serviceID string) error
	GetService(ctx context.Context, serviceID string) (*Service, error)
	GetServiceByName(ctx context.Context, name string) (*Service, error)
	ListServices(ctx context.Context) ([]*Service, error)
}

// CatalogUseCase 服务项目业务逻辑
type CatalogUseCase struct {
	repo CatalogRepo
	log  *log.Helper
}

// NewCatalogUseCase 创建服务项目 UseCase
func NewCatalogUseCase(repo CatalogRepo, logger log.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// ResolvePrice 按会员等级解析应收价格
// VIP/钻石价未设置时回落到标准价；无状态纯函数，不在事务边界内
func ResolvePrice(level string, s *Service) float64 {
	switch level {
	case constants.MemberLevelVIP:
		if s.VipPrice != nil {
			return *s.VipPrice
		}
	case constants.MemberLevelDiamond:
		if s.DiamondPrice != nil {
			return *s.DiamondPrice
		}
	}
	return s.Price
}

// CreateService 新建服务项目（名称唯一）
func (uc *CatalogUseCase) CreateService(ctx context.Context, s *Service) (*Service, error) {
	existing, err := uc.repo.GetServiceByName(ctx, s.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, catalogErrors.ErrServiceNameExists(s.Name)
	}
	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateService 更新服务项目
func (uc *CatalogUseCase) UpdateService(ctx context.Context, s *Service) error {
	current, err := uc.repo.GetService(ctx, s.ServiceID)
	if err != nil {
		return err
	}
	if current == nil {
		return catalogErrors.ErrServiceNotFound(s.ServiceID)
	}
	if s.Name != current.Name {
		other, err := uc.repo.GetServiceByName(ctx, s.Name)
		if err != nil {
			return err
		}
		if other != nil && other.ServiceID != s.ServiceID {
			return catalogErrors.ErrServiceNameExists(s.Name)
		}
	}
	return uc.repo.UpdateService(ctx, s)
}

// DeleteService 删除服务项目
func (uc *CatalogUseCase) DeleteService(ctx context.Context, serviceID string) error {
	current, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return err
	}
	if current == nil {
		return catalogErrors.ErrServiceNotFound(serviceID)
	}
	return uc.repo.DeleteService(ctx, serviceID)
}

// GetService 按 ID 获取服务项目
func (uc *CatalogUseCase) GetService(ctx context.Context, serviceID string) (*Service, error) {
	s, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, catalogErrors.ErrServiceNotFound(serviceID)
	}
	return s, nil
}

// ListServices 获取全部服务项目，按分类、名称排序
func (uc *CatalogUseCase) ListServices(ctx context.Context) ([]*Service, error) {
	return uc.repo.ListServices(ctx)
}
