package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/constants"
)

// 首次启动写入 5 个默认服务项目
func TestSeedDefaultServices(t *testing.T) {
	d := newTestData(t)
	repo := NewCatalogRepo(d, testLogger())

	services, err := repo.ListServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 5)

	names := make(map[string]bool)
	for _, s := range services {
		names[s.Name] = true
	}
	assert.True(t, names["剪发"])
	assert.True(t, names["烫发"])
}

func TestServiceCRUDInvalidatesCache(t *testing.T) {
	d := newTestData(t)
	repo := NewCatalogRepo(d, testLogger())
	ctx := context.Background()

	// 先把列表灌进缓存
	before, err := repo.ListServices(ctx)
	require.NoError(t, err)

	vip := 55.00
	svc := &biz.Service{
		Name:     "头皮护理",
		Category: "护理",
		Price:    66.00,
		VipPrice: &vip,
		Status:   constants.ServiceStatusEnabled,
	}
	require.NoError(t, repo.CreateService(ctx, svc))
	require.NotEmpty(t, svc.ServiceID)

	// 写入后缓存必须失效，能读到新项目
	after, err := repo.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	got, err := repo.GetService(ctx, svc.ServiceID)
	require.NoError(t, err)
	assert.Equal(t, 66.00, got.Price)
	require.NotNil(t, got.VipPrice)
	assert.Equal(t, 55.00, *got.VipPrice)
	assert.Nil(t, got.DiamondPrice)

	got.Price = 70.00
	got.Status = constants.ServiceStatusDisabled
	require.NoError(t, repo.UpdateService(ctx, got))

	got, err = repo.GetService(ctx, svc.ServiceID)
	require.NoError(t, err)
	assert.Equal(t, 70.00, got.Price)
	assert.Equal(t, constants.ServiceStatusDisabled, got.Status)

	require.NoError(t, repo.DeleteService(ctx, svc.ServiceID))
	got, err = repo.GetService(ctx, svc.ServiceID)
	require.NoError(t, err)
	assert.Nil(t, got)

	final, err := repo.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, final, len(before))
}

func TestGetServiceByName(t *testing.T) {
	d := newTestData(t)
	repo := NewCatalogRepo(d, testLogger())
	ctx := context.Background()

	got, err := repo.GetServiceByName(ctx, "剪发")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 30.00, got.Price)

	missing, err := repo.GetServiceByName(ctx, "不存在的项目")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
