package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/constants"
)

func TestMemberCRUD(t *testing.T) {
	d := newTestData(t)
	repo := NewMemberRepo(d, testLogger())
	ctx := context.Background()

	m := createTestMember(t, repo, "13900000001", 0)
	require.NotEmpty(t, m.MemberID)

	got, err := repo.GetMember(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, "13900000001", got.Phone)
	assert.Equal(t, constants.MemberLevelStandard, got.Level)

	got.Name = "改名"
	got.Level = constants.MemberLevelVIP
	require.NoError(t, repo.UpdateMember(ctx, got))

	got, err = repo.GetMember(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, "改名", got.Name)
	assert.Equal(t, constants.MemberLevelVIP, got.Level)

	byPhone, err := repo.GetMemberByPhone(ctx, "13900000001")
	require.NoError(t, err)
	assert.Equal(t, m.MemberID, byPhone.MemberID)

	require.NoError(t, repo.DeleteMember(ctx, m.MemberID))
	got, err = repo.GetMember(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// 资料更新永远不触碰余额
func TestUpdateMemberDoesNotTouchBalance(t *testing.T) {
	d := newTestData(t)
	repo := NewMemberRepo(d, testLogger())
	ctx := context.Background()

	m := createTestMember(t, repo, "13900000002", 88.00)

	m.Name = "新名字"
	m.Balance = 9999.00
	require.NoError(t, repo.UpdateMember(ctx, m))

	got, err := repo.GetMember(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 88.00, got.Balance)
	assert.Equal(t, "新名字", got.Name)
}

func TestCreateMemberDuplicatePhone(t *testing.T) {
	d := newTestData(t)
	repo := NewMemberRepo(d, testLogger())
	ctx := context.Background()

	createTestMember(t, repo, "13900000003", 0)
	err := repo.CreateMember(ctx, &biz.Member{
		Name:   "重复手机号",
		Phone:  "13900000003",
		Level:  constants.MemberLevelStandard,
		Status: constants.MemberStatusActive,
	})
	assert.Error(t, err)
}

func TestListMembersFilters(t *testing.T) {
	d := newTestData(t)
	repo := NewMemberRepo(d, testLogger())
	ctx := context.Background()

	require.NoError(t, repo.CreateMember(ctx, &biz.Member{
		Name: "张三", Phone: "13911110001", Level: constants.MemberLevelVIP, Status: constants.MemberStatusActive,
	}))
	require.NoError(t, repo.CreateMember(ctx, &biz.Member{
		Name: "李四", Phone: "13911110002", Level: constants.MemberLevelStandard, Status: constants.MemberStatusSuspended,
	}))

	members, err := repo.ListMembers(ctx, &biz.MemberFilter{Name: "张"})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "张三", members[0].Name)

	members, err = repo.ListMembers(ctx, &biz.MemberFilter{Phone: "1391111"})
	require.NoError(t, err)
	assert.Len(t, members, 2)

	members, err = repo.ListMembers(ctx, &biz.MemberFilter{Level: constants.MemberLevelVIP})
	require.NoError(t, err)
	assert.Len(t, members, 1)

	members, err = repo.ListMembers(ctx, &biz.MemberFilter{Status: constants.MemberStatusSuspended})
	require.NoError(t, err)
	assert.Len(t, members, 1)

	members, err = repo.ListMembers(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
