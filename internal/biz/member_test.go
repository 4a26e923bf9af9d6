package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bizErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// fakeMemberRepo 内存版会员 repo
type fakeMemberRepo struct {
	members map[string]*Member
	nextID  int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*Member)}
}

func (f *fakeMemberRepo) CreateMember(ctx context.Context, m *Member) error {
	if m.MemberID == "" {
		f.nextID++
		m.MemberID = fmt.Sprintf("m-%d", f.nextID)
	}
	f.members[m.MemberID] = m
	return nil
}

func (f *fakeMemberRepo) UpdateMember(ctx context.Context, m *Member) error {
	// 资料更新不触碰余额
	if current, ok := f.members[m.MemberID]; ok {
		m.Balance = current.Balance
	}
	f.members[m.MemberID] = m
	return nil
}

func (f *fakeMemberRepo) DeleteMember(ctx context.Context, memberID string) error {
	delete(f.members, memberID)
	return nil
}

func (f *fakeMemberRepo) GetMember(ctx context.Context, memberID string) (*Member, error) {
	return f.members[memberID], nil
}

func (f *fakeMemberRepo) GetMemberByPhone(ctx context.Context, phone string) (*Member, error) {
	for _, m := range f.members {
		if m.Phone == phone {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberRepo) ListMembers(ctx context.Context, filter *MemberFilter) ([]*Member, error) {
	out := make([]*Member, 0, len(f.members))
	for _, m := range f.members {
		out = append(out, m)
	}
	return out, nil
}

// 开卡余额强制为 0，开卡金额应当走充值流水
func TestCreateMemberForcesZeroBalance(t *testing.T) {
	uc := NewMemberUseCase(newFakeMemberRepo(), testLogger())

	m, err := uc.CreateMember(context.Background(), &Member{
		Name: "张三", Phone: "13800001111", Balance: 500.00,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.00, m.Balance)
}

func TestCreateMemberDuplicatePhoneRejected(t *testing.T) {
	uc := NewMemberUseCase(newFakeMemberRepo(), testLogger())
	ctx := context.Background()

	_, err := uc.CreateMember(ctx, &Member{Name: "张三", Phone: "13800001111"})
	require.NoError(t, err)

	_, err = uc.CreateMember(ctx, &Member{Name: "李四", Phone: "13800001111"})
	require.Error(t, err)
	assert.Equal(t, bizErrors.ReasonPhoneExists, kratosReason(err))
}

func TestUpdateMemberPhoneConflict(t *testing.T) {
	uc := NewMemberUseCase(newFakeMemberRepo(), testLogger())
	ctx := context.Background()

	m1, err := uc.CreateMember(ctx, &Member{Name: "张三", Phone: "13800001111"})
	require.NoError(t, err)
	_, err = uc.CreateMember(ctx, &Member{Name: "李四", Phone: "13800002222"})
	require.NoError(t, err)

	// 改成他人手机号被拒
	err = uc.UpdateMember(ctx, &Member{MemberID: m1.MemberID, Name: "张三", Phone: "13800002222"})
	require.Error(t, err)
	assert.Equal(t, bizErrors.ReasonPhoneExists, kratosReason(err))

	// 保留自己的手机号没问题
	err = uc.UpdateMember(ctx, &Member{MemberID: m1.MemberID, Name: "张三改", Phone: "13800001111"})
	require.NoError(t, err)
}

func TestMemberNotFoundErrors(t *testing.T) {
	uc := NewMemberUseCase(newFakeMemberRepo(), testLogger())
	ctx := context.Background()

	_, err := uc.GetMember(ctx, "missing")
	assert.Equal(t, bizErrors.ReasonMemberNotFound, kratosReason(err))

	_, err = uc.GetMemberByPhone(ctx, "13899999999")
	assert.Equal(t, bizErrors.ReasonMemberNotFound, kratosReason(err))

	err = uc.UpdateMember(ctx, &Member{MemberID: "missing", Phone: "1"})
	assert.Equal(t, bizErrors.ReasonMemberNotFound, kratosReason(err))

	err = uc.DeleteMember(ctx, "missing")
	assert.Equal(t, bizErrors.ReasonMemberNotFound, kratosReason(err))
}
