package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// DateRange 统计日期范围（均为含当天，可空）
type DateRange struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// MemberStats 会员统计
type MemberStats struct {
	TotalMembers  int64
	ActiveMembers int64
	TotalBalance  float64
}

// ConsumptionStats 消费统计
type ConsumptionStats struct {
	TotalTransactions int64
	TotalConsumption  float64
}

// RechargeStats 充值统计
type RechargeStats struct {
	TotalRecharges      int64
	TotalRechargeAmount float64
}

// ServiceUsage 单个服务项目的使用统计
type ServiceUsage struct {
	ServiceID   string
	Name        string
	UsageCount  int64
	TotalAmount float64
}

// Statistics 汇总统计
type Statistics struct {
	MemberStats      *MemberStats
	ConsumptionStats *ConsumptionStats
	RechargeStats    *RechargeStats
	ServiceStats     []*ServiceUsage
}

// CommissionSummary 员工提成汇总
type CommissionSummary struct {
	EmployeeID         string
	Name               string
	ChargeCommission   float64
	RechargeCommission float64
	TotalCommission    float64
}

// StatsRepo 统计数据层接口（定义在 biz 层）
// 查询失败必须返回错误，不允许吞掉错误返回零值
type StatsRepo interface {
	GetStatistics(ctx context.Context, r *DateRange) (*Statistics, error)
	ListCommissionSummary(ctx context.Context, r *DateRange) ([]*CommissionSummary, error)
}

// StatsUseCase 统计业务逻辑
type StatsUseCase struct {
	repo StatsRepo
	log  *log.Helper
}

// NewStatsUseCase 创建统计 UseCase
func NewStatsUseCase(repo StatsRepo, logger log.Logger) *StatsUseCase {
	return &StatsUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// GetStatistics 获取汇总统计
func (uc *StatsUseCase) GetStatistics(ctx context.Context, r *DateRange) (*Statistics, error) {
	return uc.repo.GetStatistics(ctx, r)
}

// ListCommissionSummary 获取员工提成汇总
func (uc *StatsUseCase) ListCommissionSummary(ctx context.Context, r *DateRange) ([]*CommissionSummary, error) {
	return uc.repo.ListCommissionSummary(ctx, r)
}
