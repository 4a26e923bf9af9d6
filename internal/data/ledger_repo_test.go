package data

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/constants"
	dataErrors "github.com/IfFaith/MemberLite/internal/errors"
)

func TestChargeDeductsBalanceAndAppendsEntry(t *testing.T) {
	d := newTestData(t)
	memberRepo := NewMemberRepo(d, testLogger())
	ledgerRepo := NewLedgerRepo(d, testLogger())
	ctx := context.Background()

	m := createTestMember(t, memberRepo, "13800000001", 100.00)

	entry, err := ledgerRepo.CreateChargeEntry(ctx, &biz.ChargeParams{
		MemberID:  m.MemberID,
		ServiceID: "svc-1",
		Amount:    30.00,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.EntryKindCharge, entry.Kind)
	assert.Equal(t, 100.00, entry.BalanceBefore)
	assert.Equal(t, 70.00, entry.BalanceAfter)
	assert.Equal(t, 30.00, entry.Amount)

	got, err := memberRepo.GetMember(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 70.00, got.Balance)

	entries, err := ledgerRepo.ListMemberEntries(ctx, m.MemberID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.LedgerEntryID, entries[0].LedgerEntryID)
}

func TestChargeInsufficientBalanceLeavesNoTrace(t *testing.T) {
	d := newTestData(t)
	memberRepo := NewMemberRepo(d, testLogger())
	ledgerRepo := NewLedgerRepo(d, testLogger())
	ctx := context.Background()

	m := createTestMember(t, memberRepo, "13800000002", 20.00)

	_, err := ledgerRepo.CreateChargeEntry(ctx, &biz.ChargeParams{
		MemberID:  m.MemberID,
		ServiceID: "svc-1",
		Amount:    30.00,
	})
	require.Error(t, err)
	assert.True(t, dataErrors.IsInsufficientBalance(err))

	got, err := memberRepo.GetMember(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 20.00, got.Balance)

	entries, err := ledgerRepo.ListMemberEntries(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestChargeExactBalanceSucceeds(t *testing.T) {
	d := newTestData(t)
	memberRepo := NewMemberRepo(d, testLogger())
	ledgerRepo := NewLedgerRepo(d, testLogger())
	ctx := context.Background()

	m := createTestMember(t, memberRepo, "13800000003", 30.00)

	entry, err := ledgerRepo.CreateChargeEntry(ctx, &biz.ChargeParams{
		MemberID:  m.MemberID,
		ServiceID: "svc-1",
		Amount:    30.00,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.00, entry.BalanceAfter)
}

func TestChargeMemberNotFound(t *testing.T) {
	d := newTestData(t)
	ledgerRepo := NewLedgerRepo(d, testLogger())

	_, err := ledgerRepo.CreateChargeEntry(context.Background(), &biz.ChargeParams{
		MemberID:  "no-such-member",
		ServiceID: "svc-1",
		Amount:    10.00,
	})
	require.Error(t, err)
	assert.True(t, dataErrors.IsMemberNotFound(err))
}

func TestRechargeAddsBalance(t *testing.T) {
	d := newTestData(t)
	memberRepo := NewMemberRepo(d, testLogger())
	ledgerRepo := NewLedgerRepo(d, testLogger())
	ctx := context.Background()

	m := createTestMember(t, memberRepo, "13800000004", 50.00)

	entry, err := ledgerRepo.CreateRechargeEntry(ctx, &biz.RechargeParams{
		MemberID:         m.MemberID,
		Amount:           100.00,
		CommissionAmount: 5.00,
		PaymentMethod:    constants.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.EntryKindRecharge, entry.Kind)
	assert.Equal(t, 50.00, entry.BalanceBefore)
	assert.Equal(t, 150.00, entry.BalanceAfter)
	assert.Equal(t, 5.00, entry.CommissionAmount)
	assert.Equal(t, constants.PaymentMethodCash, entry.PaymentMethod)

	got, err := memberRepo.GetMember(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 150.00, got.Balance)
}

// 同余额并发扣款，最多只允许成功一笔，余额不可能为负
func TestConcurrentChargesNeverOverdraft(t *testing.T) {
	d := newTestData(t)
	memberRepo := NewMemberRepo(d, testLogger())
	ledgerRepo := NewLedgerRepo(d, testLogger())
	ctx := context.Background()

	m := createTestMember(t, memberRepo, "13800000005", 100.00)

	amounts := []float64{100.00, 60.00}
	errs := make([]error, len(amounts))
	var wg sync.WaitGroup
	for i, amount := range amounts {
		wg.Add(1)
		go func(i int, amount float64) {
			defer wg.Done()
			_, errs[i] = ledgerRepo.CreateChargeEntry(ctx, &biz.ChargeParams{
				MemberID:  m.MemberID,
				ServiceID: "svc-1",
				Amount:    amount,
			})
		}(i, amount)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, dataErrors.IsInsufficientBalance(err) || dataErrors.IsStorageFailure(err))
		}
	}
	assert.LessOrEqual(t, succeeded, 1)

	got, err := memberRepo.GetMember(ctx, m.MemberID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Balance, 0.00)

	entries, err := ledgerRepo.ListMemberEntries(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, succeeded, len(entries))
}

func TestListEntriesFilters(t *testing.T) {
	d := newTestData(t)
	memberRepo := NewMemberRepo(d, testLogger())
	ledgerRepo := NewLedgerRepo(d, testLogger())
	ctx := context.Background()

	m1 := createTestMember(t, memberRepo, "13800000006", 100.00)
	m2 := createTestMember(t, memberRepo, "13800000007", 100.00)

	_, err := ledgerRepo.CreateRechargeEntry(ctx, &biz.RechargeParams{MemberID: m1.MemberID, Amount: 50.00})
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = ledgerRepo.CreateChargeEntry(ctx, &biz.ChargeParams{MemberID: m1.MemberID, ServiceID: "svc-1", Amount: 30.00})
	require.NoError(t, err)
	_, err = ledgerRepo.CreateChargeEntry(ctx, &biz.ChargeParams{MemberID: m2.MemberID, ServiceID: "svc-1", Amount: 10.00})
	require.NoError(t, err)

	// 按会员过滤，倒序
	entries, err := ledgerRepo.ListMemberEntries(ctx, m1.MemberID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, constants.EntryKindCharge, entries[0].Kind)
	assert.Equal(t, constants.EntryKindRecharge, entries[1].Kind)

	// 按类型过滤
	entries, err = ledgerRepo.ListEntries(ctx, &biz.EntryFilter{Kind: constants.EntryKindCharge})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// 日期范围：今天之内
	today := time.Now()
	entries, err = ledgerRepo.ListEntries(ctx, &biz.EntryFilter{StartDate: &today, EndDate: &today})
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// 明天开始则查不到
	tomorrow := today.AddDate(0, 0, 1)
	entries, err = ledgerRepo.ListEntries(ctx, &biz.EntryFilter{StartDate: &tomorrow})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListEntriesJoinsDisplayNames(t *testing.T) {
	d := newTestData(t)
	memberRepo := NewMemberRepo(d, testLogger())
	employeeRepo := NewEmployeeRepo(d, testLogger())
	catalogRepo := NewCatalogRepo(d, testLogger())
	ledgerRepo := NewLedgerRepo(d, testLogger())
	ctx := context.Background()

	m := createTestMember(t, memberRepo, "13800000008", 100.00)
	svc := &biz.Service{Name: "按摩", Category: "按摩", Price: 60.00, Status: constants.ServiceStatusEnabled}
	require.NoError(t, catalogRepo.CreateService(ctx, svc))
	emp := &biz.Employee{Name: "小王", Status: constants.EmployeeStatusActive}
	require.NoError(t, employeeRepo.CreateEmployee(ctx, emp))

	_, err := ledgerRepo.CreateChargeEntry(ctx, &biz.ChargeParams{
		MemberID:   m.MemberID,
		ServiceID:  svc.ServiceID,
		Amount:     60.00,
		OperatorID: emp.EmployeeID,
	})
	require.NoError(t, err)

	entries, err := ledgerRepo.ListMemberEntries(ctx, m.MemberID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "测试会员", entries[0].MemberName)
	assert.Equal(t, "13800000008", entries[0].MemberPhone)
	assert.Equal(t, "按摩", entries[0].ServiceName)
	assert.Equal(t, "小王", entries[0].OperatorName)
}
