package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/constants"
)

// CatalogService 服务项目管理服务
type CatalogService struct {
	uc  *biz.CatalogUseCase
	log *log.Helper
}

// NewCatalogService 创建 CatalogService
func NewCatalogService(uc *biz.CatalogUseCase, logger log.Logger) *CatalogService {
	return &CatalogService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// ServiceReply 服务项目信息
type ServiceReply struct {
	ServiceID    string   `json:"service_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	VipPrice     *float64 `json:"vip_price"`
	DiamondPrice *float64 `json:"diamond_price"`
	Status       string   `json:"status"`
}

// CreateServiceRequest 创建服务项目请求
type CreateServiceRequest struct {
	Name         string   `json:"name" validate:"required,max=64"`
	Category     string   `json:"category" validate:"max=64"`
	Price        float64  `json:"price" validate:"gte=0"`
	VipPrice     *float64 `json:"vip_price" validate:"omitempty,gte=0"`
	DiamondPrice *float64 `json:"diamond_price" validate:"omitempty,gte=0"`
	Status       string   `json:"status" validate:"omitempty,oneof=enabled disabled"`
}

// UpdateServiceRequest 更新服务项目请求
type UpdateServiceRequest struct {
	ServiceID    string   `json:"service_id" validate:"required"`
	Name         string   `json:"name" validate:"required,max=64"`
	Category     string   `json:"category" validate:"max=64"`
	Price        float64  `json:"price" validate:"gte=0"`
	VipPrice     *float64 `json:"vip_price" validate:"omitempty,gte=0"`
	DiamondPrice *float64 `json:"diamond_price" validate:"omitempty,gte=0"`
	Status       string   `json:"status" validate:"required,oneof=enabled disabled"`
}

func serviceToReply(s *biz.Service) *ServiceReply {
	return &ServiceReply{
		ServiceID:    s.ServiceID,
		Name:         s.Name,
		Category:     s.Category,
		Price:        s.Price,
		VipPrice:     s.VipPrice,
		DiamondPrice: s.DiamondPrice,
		Status:       s.Status,
	}
}

// CreateService 创建服务项目
func (s *CatalogService) CreateService(ctx context.Context, req *CreateServiceRequest) (*ServiceReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = constants.ServiceStatusEnabled
	}

	svc, err := s.uc.CreateService(ctx, &biz.Service{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		VipPrice:     req.VipPrice,
		DiamondPrice: req.DiamondPrice,
		Status:       status,
	})
	if err != nil {
		s.log.Errorf("CreateService failed: %v", err)
		return nil, err
	}
	return serviceToReply(svc), nil
}

// UpdateService 更新服务项目
func (s *CatalogService) UpdateService(ctx context.Context, req *UpdateServiceRequest) (*ServiceReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	if err := s.uc.UpdateService(ctx, &biz.Service{
		ServiceID:    req.ServiceID,
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		VipPrice:     req.VipPrice,
		DiamondPrice: req.DiamondPrice,
		Status:       req.Status,
	}); err != nil {
		s.log.Errorf("UpdateService failed: %v", err)
		return nil, err
	}

	svc, err := s.uc.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	return serviceToReply(svc), nil
}

// DeleteService 删除服务项目
func (s *CatalogService) DeleteService(ctx context.Context, serviceID string) error {
	if err := s.uc.DeleteService(ctx, serviceID); err != nil {
		s.log.Errorf("DeleteService failed: %v", err)
		return err
	}
	return nil
}

// GetService 按 ID 获取服务项目
func (s *CatalogService) GetService(ctx context.Context, serviceID string) (*ServiceReply, error) {
	svc, err := s.uc.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return serviceToReply(svc), nil
}

// ListServices 获取全部服务项目
func (s *CatalogService) ListServices(ctx context.Context) ([]*ServiceReply, error) {
	services, err := s.uc.ListServices(ctx)
	if err != nil {
		s.log.Errorf("ListServices failed: %v", err)
		return nil, err
	}

	replies := make([]*ServiceReply, 0, len(services))
	for _, svc := range services {
		replies = append(replies, serviceToReply(svc))
	}
	return replies, nil
}
