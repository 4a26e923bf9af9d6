package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IfFaith/MemberLite/internal/constants"
	bizErrors "github.com/IfFaith/MemberLite/internal/errors"
)

func ptr(v float64) *float64 { return &v }

func TestResolvePrice(t *testing.T) {
	full := &Service{Price: 30.00, VipPrice: ptr(25.00), DiamondPrice: ptr(20.00)}
	standardOnly := &Service{Price: 30.00}

	tests := []struct {
		name  string
		level string
		svc   *Service
		want  float64
	}{
		{"普通会员走标准价", constants.MemberLevelStandard, full, 30.00},
		{"VIP 走 VIP 价", constants.MemberLevelVIP, full, 25.00},
		{"钻石走钻石价", constants.MemberLevelDiamond, full, 20.00},
		{"VIP 价未设置回落标准价", constants.MemberLevelVIP, standardOnly, 30.00},
		{"钻石价未设置回落标准价", constants.MemberLevelDiamond, standardOnly, 30.00},
		{"未知等级走标准价", "unknown", full, 30.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePrice(tt.level, tt.svc))
		})
	}
}

// fakeCatalogRepo 内存版服务项目 repo
type fakeCatalogRepo struct {
	services map[string]*Service
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: make(map[string]*Service)}
}

func (f *fakeCatalogRepo) CreateService(ctx context.Context, s *Service) error {
	if s.ServiceID == "" {
		s.ServiceID = "svc-" + s.Name
	}
	f.services[s.ServiceID] = s
	return nil
}

func (f *fakeCatalogRepo) UpdateService(ctx context.Context, s *Service) error {
	f.services[s.ServiceID] = s
	return nil
}

func (f *fakeCatalogRepo) DeleteService(ctx context.Context, serviceID string) error {
	delete(f.services, serviceID)
	return nil
}

func (f *fakeCatalogRepo) GetService(ctx context.Context, serviceID string) (*Service, error) {
	return f.services[serviceID], nil
}

func (f *fakeCatalogRepo) GetServiceByName(ctx context.Context, name string) (*Service, error) {
	for _, s := range f.services {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) ListServices(ctx context.Context) ([]*Service, error) {
	out := make([]*Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func TestCreateServiceRejectsDuplicateName(t *testing.T) {
	repo := newFakeCatalogRepo()
	uc := NewCatalogUseCase(repo, testLogger())
	ctx := context.Background()

	_, err := uc.CreateService(ctx, &Service{Name: "剪发", Price: 30.00})
	require.NoError(t, err)

	_, err = uc.CreateService(ctx, &Service{Name: "剪发", Price: 35.00})
	require.Error(t, err)
	assert.Equal(t, bizErrors.ReasonServiceNameExists, kratosReason(err))
}

func TestGetServiceNotFound(t *testing.T) {
	uc := NewCatalogUseCase(newFakeCatalogRepo(), testLogger())

	_, err := uc.GetService(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, bizErrors.ReasonServiceNotFound, kratosReason(err))
}
