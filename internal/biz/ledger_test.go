package biz

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IfFaith/MemberLite/internal/constants"
	bizErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// fakeLedgerRepo 记录最近一次写入参数的内存 repo
type fakeLedgerRepo struct {
	lastCharge   *ChargeParams
	lastRecharge *RechargeParams
}

func (f *fakeLedgerRepo) CreateChargeEntry(ctx context.Context, p *ChargeParams) (*LedgerEntry, error) {
	f.lastCharge = p
	return &LedgerEntry{
		LedgerEntryID:    "entry-1",
		MemberID:         p.MemberID,
		ServiceID:        p.ServiceID,
		Kind:             constants.EntryKindCharge,
		Amount:           p.Amount,
		BalanceBefore:    100.00,
		BalanceAfter:     100.00 - p.Amount,
		CommissionAmount: p.CommissionAmount,
	}, nil
}

func (f *fakeLedgerRepo) CreateRechargeEntry(ctx context.Context, p *RechargeParams) (*LedgerEntry, error) {
	f.lastRecharge = p
	return &LedgerEntry{
		LedgerEntryID:    "entry-2",
		MemberID:         p.MemberID,
		Kind:             constants.EntryKindRecharge,
		Amount:           p.Amount,
		BalanceBefore:    50.00,
		BalanceAfter:     50.00 + p.Amount,
		CommissionAmount: p.CommissionAmount,
		PaymentMethod:    p.PaymentMethod,
	}, nil
}

func (f *fakeLedgerRepo) ListMemberEntries(ctx context.Context, memberID string) ([]*LedgerEntry, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) ListEntries(ctx context.Context, filter *EntryFilter) ([]*LedgerEntry, error) {
	return nil, nil
}

// fakeEmployeeRepo 固定返回预置员工与提成比例
type fakeEmployeeRepo struct {
	employees map[string]*Employee
	rates     map[string]float64 // key: serviceID+"/"+employeeID
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: make(map[string]*Employee),
		rates:     make(map[string]float64),
	}
}

func (f *fakeEmployeeRepo) CreateEmployee(ctx context.Context, e *Employee) error {
	f.employees[e.EmployeeID] = e
	return nil
}

func (f *fakeEmployeeRepo) UpdateEmployee(ctx context.Context, e *Employee) error {
	f.employees[e.EmployeeID] = e
	return nil
}

func (f *fakeEmployeeRepo) DeleteEmployee(ctx context.Context, employeeID string) error {
	delete(f.employees, employeeID)
	return nil
}

func (f *fakeEmployeeRepo) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	return f.employees[employeeID], nil
}

func (f *fakeEmployeeRepo) ListEmployees(ctx context.Context) ([]*Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) UpsertProjectCommission(ctx context.Context, c *ProjectCommission) error {
	f.rates[c.ServiceID+"/"+c.EmployeeID] = c.Rate
	return nil
}

func (f *fakeEmployeeRepo) DeleteProjectCommission(ctx context.Context, serviceID, employeeID string) error {
	delete(f.rates, serviceID+"/"+employeeID)
	return nil
}

func (f *fakeEmployeeRepo) ListProjectCommissions(ctx context.Context, employeeID string) ([]*ProjectCommission, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetProjectCommissionRate(ctx context.Context, serviceID, employeeID string) (float64, error) {
	return f.rates[serviceID+"/"+employeeID], nil
}

func TestChargeRejectsInvalidAmounts(t *testing.T) {
	uc := NewLedgerUseCase(&fakeLedgerRepo{}, newFakeEmployeeRepo(), testLogger())
	ctx := context.Background()

	for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := uc.Charge(ctx, &ChargeParams{MemberID: "m1", ServiceID: "s1", Amount: amount})
		require.Error(t, err)
		assert.Equal(t, bizErrors.ReasonInvalidAmount, kratosReason(err))
	}
}

func TestRechargeRejectsInvalidAmounts(t *testing.T) {
	uc := NewLedgerUseCase(&fakeLedgerRepo{}, newFakeEmployeeRepo(), testLogger())
	ctx := context.Background()

	for _, amount := range []float64{0, -0.01, math.NaN(), math.Inf(1)} {
		_, err := uc.Recharge(ctx, &RechargeParams{MemberID: "m1", Amount: amount})
		require.Error(t, err)
		assert.Equal(t, bizErrors.ReasonInvalidAmount, kratosReason(err))
	}
}

// 消费提成 = 金额 × (项目, 员工) 提成比例 / 100
func TestChargeComputesProjectCommission(t *testing.T) {
	repo := &fakeLedgerRepo{}
	employeeRepo := newFakeEmployeeRepo()
	require.NoError(t, employeeRepo.CreateEmployee(context.Background(), &Employee{EmployeeID: "e1", Name: "小王"}))
	require.NoError(t, employeeRepo.UpsertProjectCommission(context.Background(), &ProjectCommission{
		ServiceID: "s1", EmployeeID: "e1", Rate: 10.0,
	}))
	uc := NewLedgerUseCase(repo, employeeRepo, testLogger())

	result, err := uc.Charge(context.Background(), &ChargeParams{
		MemberID: "m1", ServiceID: "s1", Amount: 30.00, OperatorID: "e1",
	})
	require.NoError(t, err)
	assert.Equal(t, "entry-1", result.EntryID)
	assert.Equal(t, 70.00, result.NewBalance)
	require.NotNil(t, repo.lastCharge)
	assert.Equal(t, 3.00, repo.lastCharge.CommissionAmount)
}

// 未配置提成的 (项目, 员工) 组合提成为 0
func TestChargeWithoutCommissionConfig(t *testing.T) {
	repo := &fakeLedgerRepo{}
	employeeRepo := newFakeEmployeeRepo()
	require.NoError(t, employeeRepo.CreateEmployee(context.Background(), &Employee{EmployeeID: "e1", Name: "小王"}))
	uc := NewLedgerUseCase(repo, employeeRepo, testLogger())

	_, err := uc.Charge(context.Background(), &ChargeParams{
		MemberID: "m1", ServiceID: "s1", Amount: 30.00, OperatorID: "e1",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.00, repo.lastCharge.CommissionAmount)
}

// 消费的经手员工与充值一样必须真实存在
func TestChargeUnknownOperator(t *testing.T) {
	uc := NewLedgerUseCase(&fakeLedgerRepo{}, newFakeEmployeeRepo(), testLogger())

	_, err := uc.Charge(context.Background(), &ChargeParams{
		MemberID: "m1", ServiceID: "s1", Amount: 30.00, OperatorID: "ghost",
	})
	require.Error(t, err)
	assert.Equal(t, bizErrors.ReasonEmployeeNotFound, kratosReason(err))
}

// 充值提成 = 金额 × 员工充值提成比例 / 100
func TestRechargeComputesOperatorCommission(t *testing.T) {
	repo := &fakeLedgerRepo{}
	employeeRepo := newFakeEmployeeRepo()
	require.NoError(t, employeeRepo.CreateEmployee(context.Background(), &Employee{
		EmployeeID: "e1", Name: "小王", RechargeRate: 5.0,
	}))
	uc := NewLedgerUseCase(repo, employeeRepo, testLogger())

	result, err := uc.Recharge(context.Background(), &RechargeParams{
		MemberID: "m1", Amount: 100.00, OperatorID: "e1", PaymentMethod: constants.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.00, result.NewBalance)
	require.NotNil(t, repo.lastRecharge)
	assert.Equal(t, 5.00, repo.lastRecharge.CommissionAmount)
}

func TestRechargeUnknownOperator(t *testing.T) {
	uc := NewLedgerUseCase(&fakeLedgerRepo{}, newFakeEmployeeRepo(), testLogger())

	_, err := uc.Recharge(context.Background(), &RechargeParams{
		MemberID: "m1", Amount: 100.00, OperatorID: "ghost",
	})
	require.Error(t, err)
	assert.Equal(t, bizErrors.ReasonEmployeeNotFound, kratosReason(err))
}

func TestRechargeWithoutOperatorNoCommission(t *testing.T) {
	repo := &fakeLedgerRepo{}
	uc := NewLedgerUseCase(repo, newFakeEmployeeRepo(), testLogger())

	_, err := uc.Recharge(context.Background(), &RechargeParams{MemberID: "m1", Amount: 100.00})
	require.NoError(t, err)
	assert.Equal(t, 0.00, repo.lastRecharge.CommissionAmount)
}

func TestAmountRoundedToCents(t *testing.T) {
	repo := &fakeLedgerRepo{}
	uc := NewLedgerUseCase(repo, newFakeEmployeeRepo(), testLogger())

	_, err := uc.Charge(context.Background(), &ChargeParams{
		MemberID: "m1", ServiceID: "s1", Amount: 29.999,
	})
	require.NoError(t, err)
	assert.Equal(t, 30.00, repo.lastCharge.Amount)
}
