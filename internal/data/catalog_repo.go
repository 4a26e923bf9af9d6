package data

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/constants"
	"github.com/IfFaith/MemberLite/internal/data/model"
	dataErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// catalogRepo 服务项目数据访问
// 列表读走进程内缓存（cache-aside），写路径统一失效
type catalogRepo struct {
	data *Data
	log  *log.Helper
}

// NewCatalogRepo 创建服务项目 repo（返回 biz.CatalogRepo 接口）
func NewCatalogRepo(data *Data, logger log.Logger) biz.CatalogRepo {
	return &catalogRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func serviceToBiz(m *model.Service) *biz.Service {
	return &biz.Service{
		ServiceID:    m.ServiceID,
		Name:         m.Name,
		Category:     m.Category,
		Price:        m.Price,
		VipPrice:     m.VipPrice,
		DiamondPrice: m.DiamondPrice,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CreateService 新建服务项目
func (r *catalogRepo) CreateService(ctx context.Context, b *biz.Service) error {
	if b.ServiceID == "" {
		b.ServiceID = uuid.New().String()
	}
	m := model.Service{
		ServiceID:    b.ServiceID,
		Name:         b.Name,
		Category:     b.Category,
		Price:        b.Price,
		VipPrice:     b.VipPrice,
		DiamondPrice: b.DiamondPrice,
		Status:       b.Status,
	}
	if err := r.data.DB().WithContext(ctx).Create(&m).Error; err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	r.data.cache.Delete(constants.CacheKeyServices)
	return nil
}

// UpdateService 更新服务项目
func (r *catalogRepo) UpdateService(ctx context.Context, b *biz.Service) error {
	err := r.data.DB().WithContext(ctx).Model(&model.Service{}).
		Where("service_id = ?", b.ServiceID).
		Updates(map[string]interface{}{
			"name":          b.Name,
			"category":      b.Category,
			"price":         b.Price,
			"vip_price":     b.VipPrice,
			"diamond_price": b.DiamondPrice,
			"status":        b.Status,
		}).Error
	if err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	r.data.cache.Delete(constants.CacheKeyServices)
	return nil
}

// DeleteService 删除服务项目
func (r *catalogRepo) DeleteService(ctx context.Context, serviceID string) error {
	if err := r.data.DB().WithContext(ctx).
		Where("service_id = ?", serviceID).Delete(&model.Service{}).Error; err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	r.data.cache.Delete(constants.CacheKeyServices)
	return nil
}

// GetService 按 ID 查服务项目，不存在返回 nil
func (r *catalogRepo) GetService(ctx context.Context, serviceID string) (*biz.Service, error) {
	var m model.Service
	if err := r.data.DB().WithContext(ctx).Where("service_id = ?", serviceID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dataErrors.ErrStorageFailure(err)
	}
	return serviceToBiz(&m), nil
}

// GetServiceByName 按名称查服务项目，不存在返回 nil
func (r *catalogRepo) GetServiceByName(ctx context.Context, name string) (*biz.Service, error) {
	var m model.Service
	if err := r.data.DB().WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dataErrors.ErrStorageFailure(err)
	}
	return serviceToBiz(&m), nil
}

// ListServices 获取全部服务项目，按分类、名称排序
func (r *catalogRepo) ListServices(ctx context.Context) ([]*biz.Service, error) {
	if cached, ok := r.data.cache.Get(constants.CacheKeyServices); ok {
		if services, ok := cached.([]*biz.Service); ok {
			return services, nil
		}
	}

	var models []model.Service
	if err := r.data.DB().WithContext(ctx).
		Order("category, name").Find(&models).Error; err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}
	services := make([]*biz.Service, 0, len(models))
	for i := range models {
		services = append(services, serviceToBiz(&models[i]))
	}

	r.data.cache.SetDefault(constants.CacheKeyServices, services)
	return services, nil
}
