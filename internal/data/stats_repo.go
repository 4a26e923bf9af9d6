package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/data/model"
	dataErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// statsRepo 统计数据访问
type statsRepo struct {
	data *Data
	log  *log.Helper
}

// NewStatsRepo 创建统计 repo（返回 biz.StatsRepo 接口）
func NewStatsRepo(data *Data, logger log.Logger) biz.StatsRepo {
	return &statsRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// scopeEntryRange 流水表的日期范围条件（含当天）
func scopeEntryRange(db *gorm.DB, r *biz.DateRange) *gorm.DB {
	if r == nil {
		return db
	}
	if r.StartDate != nil {
		db = db.Where("ledger_entry.created_at >= ?", dayStart(*r.StartDate))
	}
	if r.EndDate != nil {
		db = db.Where("ledger_entry.created_at < ?", dayStart(*r.EndDate).AddDate(0, 0, 1))
	}
	return db
}

// GetStatistics 汇总统计：会员、消费、充值、分服务项目使用量
func (r *statsRepo) GetStatistics(ctx context.Context, dateRange *biz.DateRange) (*biz.Statistics, error) {
	db := r.data.DB().WithContext(ctx)

	// 会员统计（不受日期范围影响，口径与余额快照一致）
	var memberRow struct {
		TotalMembers  int64
		ActiveMembers int64
		TotalBalance  float64
	}
	err := db.Model(&model.Member{}).
		Select("COUNT(*) AS total_members, " +
			"SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END) AS active_members, " +
			"COALESCE(SUM(balance), 0) AS total_balance").
		Scan(&memberRow).Error
	if err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	// 消费统计
	var consumptionRow struct {
		TotalTransactions int64
		TotalConsumption  float64
	}
	err = scopeEntryRange(db.Model(&model.LedgerEntry{}).Where("kind = ?", model.EntryKindCharge), dateRange).
		Select("COUNT(*) AS total_transactions, COALESCE(SUM(amount), 0) AS total_consumption").
		Scan(&consumptionRow).Error
	if err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	// 充值统计
	var rechargeRow struct {
		TotalRecharges      int64
		TotalRechargeAmount float64
	}
	err = scopeEntryRange(db.Model(&model.LedgerEntry{}).Where("kind = ?", model.EntryKindRecharge), dateRange).
		Select("COUNT(*) AS total_recharges, COALESCE(SUM(amount), 0) AS total_recharge_amount").
		Scan(&rechargeRow).Error
	if err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	// 分服务项目统计（按使用次数倒序）
	serviceStats, err := r.listServiceUsage(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	return &biz.Statistics{
		MemberStats: &biz.MemberStats{
			TotalMembers:  memberRow.TotalMembers,
			ActiveMembers: memberRow.ActiveMembers,
			TotalBalance:  memberRow.TotalBalance,
		},
		ConsumptionStats: &biz.ConsumptionStats{
			TotalTransactions: consumptionRow.TotalTransactions,
			TotalConsumption:  consumptionRow.TotalConsumption,
		},
		RechargeStats: &biz.RechargeStats{
			TotalRecharges:      rechargeRow.TotalRecharges,
			TotalRechargeAmount: rechargeRow.TotalRechargeAmount,
		},
		ServiceStats: serviceStats,
	}, nil
}

func (r *statsRepo) listServiceUsage(ctx context.Context, dateRange *biz.DateRange) ([]*biz.ServiceUsage, error) {
	join := "LEFT JOIN ledger_entry ON ledger_entry.service_id = service.service_id AND ledger_entry.kind = 'charge'"
	var args []interface{}
	if dateRange != nil {
		if dateRange.StartDate != nil {
			join += " AND ledger_entry.created_at >= ?"
			args = append(args, dayStart(*dateRange.StartDate))
		}
		if dateRange.EndDate != nil {
			join += " AND ledger_entry.created_at < ?"
			args = append(args, dayStart(*dateRange.EndDate).AddDate(0, 0, 1))
		}
	}

	var rows []struct {
		ServiceID   string
		Name        string
		UsageCount  int64
		TotalAmount float64
	}
	err := r.data.DB().WithContext(ctx).Model(&model.Service{}).
		Select("service.service_id AS service_id, service.name AS name, " +
			"COUNT(ledger_entry.ledger_entry_id) AS usage_count, " +
			"COALESCE(SUM(ledger_entry.amount), 0) AS total_amount").
		Joins(join, args...).
		Group("service.service_id, service.name").
		Order("usage_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	usages := make([]*biz.ServiceUsage, 0, len(rows))
	for _, row := range rows {
		usages = append(usages, &biz.ServiceUsage{
			ServiceID:   row.ServiceID,
			Name:        row.Name,
			UsageCount:  row.UsageCount,
			TotalAmount: row.TotalAmount,
		})
	}
	return usages, nil
}

// ListCommissionSummary 员工提成汇总：按经手员工分组，消费/充值分列
func (r *statsRepo) ListCommissionSummary(ctx context.Context, dateRange *biz.DateRange) ([]*biz.CommissionSummary, error) {
	db := scopeEntryRange(
		r.data.DB().WithContext(ctx).Model(&model.LedgerEntry{}).
			Where("ledger_entry.operator_id IS NOT NULL"),
		dateRange,
	)

	var rows []struct {
		EmployeeID         string
		Name               *string
		ChargeCommission   float64
		RechargeCommission float64
	}
	err := db.
		Select("ledger_entry.operator_id AS employee_id, employee.name AS name, " +
			"COALESCE(SUM(CASE WHEN kind = 'charge' THEN commission_amount ELSE 0 END), 0) AS charge_commission, " +
			"COALESCE(SUM(CASE WHEN kind = 'recharge' THEN commission_amount ELSE 0 END), 0) AS recharge_commission").
		Joins("LEFT JOIN employee ON employee.employee_id = ledger_entry.operator_id").
		Group("ledger_entry.operator_id, employee.name").
		Order("recharge_commission + charge_commission DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	summaries := make([]*biz.CommissionSummary, 0, len(rows))
	for _, row := range rows {
		s := &biz.CommissionSummary{
			EmployeeID:         row.EmployeeID,
			ChargeCommission:   row.ChargeCommission,
			RechargeCommission: row.RechargeCommission,
			TotalCommission:    roundMoney(row.ChargeCommission + row.RechargeCommission),
		}
		if row.Name != nil {
			s.Name = *row.Name
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
