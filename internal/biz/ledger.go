package biz

import (
	"context"
	"math"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	ledgerErrors "github.com/IfFaith/MemberLite/internal/errors"
	"github.com/IfFaith/MemberLite/internal/metrics"
)

// LedgerEntry 余额流水领域对象
// 创建后不可变，与 Member.Balance 互为校验：
// BalanceAfter == BalanceBefore ± Amount（按流水类型取号）
type LedgerEntry struct {
	LedgerEntryID string
	MemberID      string
	ServiceID     string // 纯充值为空
	Kind          string
	Amount        float64
	BalanceBefore float64
	BalanceAfter  float64
	OperatorID    string
	// CommissionAmount 经手员工提成，仅报表用途，不参与余额结算
	CommissionAmount float64
	PaymentMethod    string
	Remark           string
	CreatedAt        time.Time

	// 联表查询时填充的展示字段
	MemberName   string
	MemberPhone  string
	ServiceName  string
	OperatorName string
}

// ChargeParams 扣款入参（金额已由调用方按等级价解析）
type ChargeParams struct {
	MemberID         string
	ServiceID        string
	Amount           float64
	OperatorID       string
	CommissionAmount float64
	Remark           string
}

// RechargeParams 充值入参
type RechargeParams struct {
	MemberID         string
	Amount           float64
	OperatorID       string
	CommissionAmount float64
	PaymentMethod    string
	Remark           string
}

// EntryFilter 流水查询条件
type EntryFilter struct {
	MemberID  string
	Kind      string
	StartDate *time.Time // 含当天
	EndDate   *time.Time // 含当天
}

// LedgerResult 扣款/充值结果
type LedgerResult struct {
	EntryID    string
	NewBalance float64
}

// LedgerRepo 流水数据层接口（定义在 biz 层）
// 两个写方法各自是一个原子事务：读余额、校验、写余额、追加流水
type LedgerRepo interface {
	CreateChargeEntry(ctx context.Context, p *ChargeParams) (*LedgerEntry, error)
	CreateRechargeEntry(ctx context.Context, p *RechargeParams) (*LedgerEntry, error)
	ListMemberEntries(ctx context.Context, memberID string) ([]*LedgerEntry, error)
	ListEntries(ctx context.Context, filter *EntryFilter) ([]*LedgerEntry, error)
}

// LedgerUseCase 流水核心业务逻辑
type LedgerUseCase struct {
	repo         LedgerRepo
	employeeRepo EmployeeRepo
	log          *log.Helper
	metrics      *metrics.LedgerMetrics
}

// NewLedgerUseCase 创建流水 UseCase
func NewLedgerUseCase(repo LedgerRepo, employeeRepo EmployeeRepo, logger log.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		repo:         repo,
		employeeRepo: employeeRepo,
		log:          log.NewHelper(logger),
		metrics:      metrics.GetMetrics(),
	}
}

// roundCents 金额取整到分
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// validAmount 金额必须为正的有限数
func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Charge 消费扣款
// 失败不留任何痕迹：余额与流水条数与调用前一致
func (uc *LedgerUseCase) Charge(ctx context.Context, p *ChargeParams) (*LedgerResult, error) {
	startTime := time.Now()
	defer func() {
		uc.metrics.ChargeDuration.Observe(time.Since(startTime).Seconds())
	}()

	if !validAmount(p.Amount) {
		uc.metrics.ChargeTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, ledgerErrors.ErrInvalidAmount("charge amount must be a positive number")
	}
	p.Amount = roundCents(p.Amount)

	// 提成比例查询只是报表数据，放在事务外
	if p.OperatorID != "" {
		operator, err := uc.employeeRepo.GetEmployee(ctx, p.OperatorID)
		if err != nil {
			uc.metrics.ChargeTotal.WithLabelValues(metrics.ResultError).Inc()
			return nil, err
		}
		if operator == nil {
			uc.metrics.ChargeTotal.WithLabelValues(metrics.ResultError).Inc()
			return nil, ledgerErrors.ErrEmployeeNotFound(p.OperatorID)
		}
		rate, err := uc.employeeRepo.GetProjectCommissionRate(ctx, p.ServiceID, p.OperatorID)
		if err != nil {
			uc.metrics.ChargeTotal.WithLabelValues(metrics.ResultError).Inc()
			return nil, err
		}
		p.CommissionAmount = roundCents(p.Amount * rate / 100)
	}

	entry, err := uc.repo.CreateChargeEntry(ctx, p)
	if err != nil {
		if ledgerErrors.IsInsufficientBalance(err) {
			uc.metrics.InsufficientBalanceTotal.Inc()
		}
		uc.metrics.ChargeTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	uc.metrics.ChargeTotal.WithLabelValues(metrics.ResultOK).Inc()
	uc.metrics.ChargeAmount.Add(entry.Amount)
	uc.log.Infof("charge ok: member=%s service=%s amount=%.2f balance=%.2f",
		p.MemberID, p.ServiceID, entry.Amount, entry.BalanceAfter)

	return &LedgerResult{EntryID: entry.LedgerEntryID, NewBalance: entry.BalanceAfter}, nil
}

// Recharge 充值
// 提成 = 金额 × 员工充值提成比例 / 100，只记录在流水上
func (uc *LedgerUseCase) Recharge(ctx context.Context, p *RechargeParams) (*LedgerResult, error) {
	startTime := time.Now()
	defer func() {
		uc.metrics.RechargeDuration.Observe(time.Since(startTime).Seconds())
	}()

	if !validAmount(p.Amount) {
		uc.metrics.RechargeTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, ledgerErrors.ErrInvalidAmount("recharge amount must be a positive number")
	}
	p.Amount = roundCents(p.Amount)

	if p.OperatorID != "" {
		operator, err := uc.employeeRepo.GetEmployee(ctx, p.OperatorID)
		if err != nil {
			uc.metrics.RechargeTotal.WithLabelValues(metrics.ResultError).Inc()
			return nil, err
		}
		if operator == nil {
			uc.metrics.RechargeTotal.WithLabelValues(metrics.ResultError).Inc()
			return nil, ledgerErrors.ErrEmployeeNotFound(p.OperatorID)
		}
		p.CommissionAmount = roundCents(p.Amount * operator.RechargeRate / 100)
	}

	entry, err := uc.repo.CreateRechargeEntry(ctx, p)
	if err != nil {
		uc.metrics.RechargeTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	uc.metrics.RechargeTotal.WithLabelValues(metrics.ResultOK).Inc()
	uc.metrics.RechargeAmount.Add(entry.Amount)
	uc.log.Infof("recharge ok: member=%s amount=%.2f method=%s balance=%.2f",
		p.MemberID, entry.Amount, p.PaymentMethod, entry.BalanceAfter)

	return &LedgerResult{EntryID: entry.LedgerEntryID, NewBalance: entry.BalanceAfter}, nil
}

// ListMemberEntries 获取会员全部流水，按创建时间倒序
func (uc *LedgerUseCase) ListMemberEntries(ctx context.Context, memberID string) ([]*LedgerEntry, error) {
	return uc.repo.ListMemberEntries(ctx, memberID)
}

// ListEntries 按条件查询流水，按创建时间倒序
func (uc *LedgerUseCase) ListEntries(ctx context.Context, filter *EntryFilter) ([]*LedgerEntry, error) {
	return uc.repo.ListEntries(ctx, filter)
}
