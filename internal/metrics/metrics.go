package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics 流水核心指标
type LedgerMetrics struct {
	// 扣款相关指标
	ChargeTotal    *prometheus.CounterVec // 扣款总数（按结果）
	ChargeAmount   prometheus.Counter     // 扣款总金额（仅成功）
	ChargeDuration prometheus.Histogram   // 扣款耗时

	// 充值相关指标
	RechargeTotal    *prometheus.CounterVec // 充值总数（按结果）
	RechargeAmount   prometheus.Counter     // 充值总金额（仅成功）
	RechargeDuration prometheus.Histogram   // 充值耗时

	// 余额相关指标
	InsufficientBalanceTotal prometheus.Counter // 余额不足拒绝总数

	// 备份相关指标
	BackupTotal *prometheus.CounterVec // 备份总数（按结果）
}

// 操作结果标签值
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	instance *LedgerMetrics
	once     sync.Once
)

// GetMetrics 获取指标单例
func GetMetrics() *LedgerMetrics {
	once.Do(func() {
		instance = newLedgerMetrics()
	})
	return instance
}

func newLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		ChargeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberlite_charge_total",
				Help: "Total number of charge operations",
			},
			[]string{"result"},
		),
		ChargeAmount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "memberlite_charge_amount_total",
				Help: "Total amount charged",
			},
		),
		ChargeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "memberlite_charge_duration_seconds",
				Help:    "Duration of charge operations",
				Buckets: prometheus.DefBuckets,
			},
		),
		RechargeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberlite_recharge_total",
				Help: "Total number of recharge operations",
			},
			[]string{"result"},
		),
		RechargeAmount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "memberlite_recharge_amount_total",
				Help: "Total amount recharged",
			},
		),
		RechargeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "memberlite_recharge_duration_seconds",
				Help:    "Duration of recharge operations",
				Buckets: prometheus.DefBuckets,
			},
		),
		InsufficientBalanceTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "memberlite_insufficient_balance_total",
				Help: "Total number of charges rejected for insufficient balance",
			},
		),
		BackupTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memberlite_backup_total",
				Help: "Total number of database backups",
			},
			[]string{"result"},
		),
	}
}
