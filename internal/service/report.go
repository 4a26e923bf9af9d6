package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/biz"
)

// ReportService 统计报表服务
type ReportService struct {
	uc  *biz.StatsUseCase
	log *log.Helper
}

// NewReportService 创建 ReportService
func NewReportService(uc *biz.StatsUseCase, logger log.Logger) *ReportService {
	return &ReportService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// DateRangeRequest 日期范围（均含当天，可空）
type DateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// StatisticsReply 汇总统计
type StatisticsReply struct {
	TotalMembers        int64                `json:"total_members"`
	ActiveMembers       int64                `json:"active_members"`
	TotalBalance        float64              `json:"total_balance"`
	TotalTransactions   int64                `json:"total_transactions"`
	TotalConsumption    float64              `json:"total_consumption"`
	TotalRecharges      int64                `json:"total_recharges"`
	TotalRechargeAmount float64              `json:"total_recharge_amount"`
	ServiceStats        []*ServiceUsageReply `json:"service_stats"`
}

// ServiceUsageReply 单个服务项目的使用统计
type ServiceUsageReply struct {
	ServiceID   string  `json:"service_id"`
	Name        string  `json:"name"`
	UsageCount  int64   `json:"usage_count"`
	TotalAmount float64 `json:"total_amount"`
}

// CommissionSummaryReply 员工提成汇总
type CommissionSummaryReply struct {
	EmployeeID         string  `json:"employee_id"`
	Name               string  `json:"name"`
	ChargeCommission   float64 `json:"charge_commission"`
	RechargeCommission float64 `json:"recharge_commission"`
	TotalCommission    float64 `json:"total_commission"`
}

func (s *ReportService) parseRange(req *DateRangeRequest) (*biz.DateRange, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	return &biz.DateRange{StartDate: startDate, EndDate: endDate}, nil
}

// GetStatistics 获取汇总统计
func (s *ReportService) GetStatistics(ctx context.Context, req *DateRangeRequest) (*StatisticsReply, error) {
	r, err := s.parseRange(req)
	if err != nil {
		return nil, err
	}

	stats, err := s.uc.GetStatistics(ctx, r)
	if err != nil {
		s.log.Errorf("GetStatistics failed: %v", err)
		return nil, err
	}

	reply := &StatisticsReply{
		TotalMembers:        stats.MemberStats.TotalMembers,
		ActiveMembers:       stats.MemberStats.ActiveMembers,
		TotalBalance:        stats.MemberStats.TotalBalance,
		TotalTransactions:   stats.ConsumptionStats.TotalTransactions,
		TotalConsumption:    stats.ConsumptionStats.TotalConsumption,
		TotalRecharges:      stats.RechargeStats.TotalRecharges,
		TotalRechargeAmount: stats.RechargeStats.TotalRechargeAmount,
		ServiceStats:        make([]*ServiceUsageReply, 0, len(stats.ServiceStats)),
	}
	for _, u := range stats.ServiceStats {
		reply.ServiceStats = append(reply.ServiceStats, &ServiceUsageReply{
			ServiceID:   u.ServiceID,
			Name:        u.Name,
			UsageCount:  u.UsageCount,
			TotalAmount: u.TotalAmount,
		})
	}
	return reply, nil
}

// ListCommissions 获取员工提成汇总
func (s *ReportService) ListCommissions(ctx context.Context, req *DateRangeRequest) ([]*CommissionSummaryReply, error) {
	r, err := s.parseRange(req)
	if err != nil {
		return nil, err
	}

	summaries, err := s.uc.ListCommissionSummary(ctx, r)
	if err != nil {
		s.log.Errorf("ListCommissions failed: %v", err)
		return nil, err
	}

	replies := make([]*CommissionSummaryReply, 0, len(summaries))
	for _, c := range summaries {
		replies = append(replies, &CommissionSummaryReply{
			EmployeeID:         c.EmployeeID,
			Name:               c.Name,
			ChargeCommission:   c.ChargeCommission,
			RechargeCommission: c.RechargeCommission,
			TotalCommission:    c.TotalCommission,
		})
	}
	return replies, nil
}
