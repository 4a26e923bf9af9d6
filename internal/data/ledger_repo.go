package data

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/data/model"
	dataErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// errBalanceConflict 余额写入时发现快照过期（并发修改），触发事务重试
var errBalanceConflict = errors.New("balance snapshot conflict")

// balanceRetryLimit 快照冲突重试次数上限
const balanceRetryLimit = 3

// ledgerRepo 流水数据访问
// 写路径是本仓库唯一允许修改 member.balance 的地方：
// 读余额、算新值、带快照条件写回、追加流水，四步在同一事务内，
// 快照条件（WHERE balance = 读到的值）保证并发下不丢更新
type ledgerRepo struct {
	data *Data
	log  *log.Helper
}

// NewLedgerRepo 创建流水 repo（返回 biz.LedgerRepo 接口）
func NewLedgerRepo(data *Data, logger log.Logger) biz.LedgerRepo {
	return &ledgerRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func entryToBiz(m *model.LedgerEntry) *biz.LedgerEntry {
	e := &biz.LedgerEntry{
		LedgerEntryID:    m.LedgerEntryID,
		MemberID:         m.MemberID,
		Kind:             m.Kind,
		Amount:           m.Amount,
		BalanceBefore:    m.BalanceBefore,
		BalanceAfter:     m.BalanceAfter,
		CommissionAmount: m.CommissionAmount,
		PaymentMethod:    m.PaymentMethod,
		Remark:           m.Remark,
		CreatedAt:        m.CreatedAt,
	}
	if m.ServiceID != nil {
		e.ServiceID = *m.ServiceID
	}
	if m.OperatorID != nil {
		e.OperatorID = *m.OperatorID
	}
	return e
}

// CreateChargeEntry 消费扣款事务
func (r *ledgerRepo) CreateChargeEntry(ctx context.Context, p *biz.ChargeParams) (*biz.LedgerEntry, error) {
	var entry model.LedgerEntry

	for attempt := 0; attempt < balanceRetryLimit; attempt++ {
		// 整个事务在 Data 的共享锁内执行，与备份恢复的换文件互斥
		err := r.data.WithDB(func(db *gorm.DB) error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				var m model.Member
				if err := tx.Where("member_id = ?", p.MemberID).First(&m).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return dataErrors.ErrMemberNotFound(p.MemberID)
					}
					return err
				}

				balanceBefore := m.Balance
				balanceAfter := roundMoney(balanceBefore - p.Amount)
				if balanceAfter < 0 {
					return dataErrors.ErrInsufficientBalance()
				}

				// 带快照条件写回，RowsAffected == 0 说明期间余额被改过
				res := tx.Model(&model.Member{}).
					Where("member_id = ? AND balance = ?", p.MemberID, balanceBefore).
					Update("balance", balanceAfter)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return errBalanceConflict
				}

				entry = model.LedgerEntry{
					LedgerEntryID:    uuid.New().String(),
					MemberID:         p.MemberID,
					ServiceID:        &p.ServiceID,
					Kind:             model.EntryKindCharge,
					Amount:           p.Amount,
					BalanceBefore:    balanceBefore,
					BalanceAfter:     balanceAfter,
					CommissionAmount: p.CommissionAmount,
					Remark:           p.Remark,
				}
				if p.OperatorID != "" {
					entry.OperatorID = &p.OperatorID
				}
				return tx.Create(&entry).Error
			})
		})

		if errors.Is(err, errBalanceConflict) {
			r.log.Warnf("charge balance conflict, retrying: member=%s attempt=%d", p.MemberID, attempt+1)
			continue
		}
		if err != nil {
			return nil, wrapLedgerErr(err)
		}
		return entryToBiz(&entry), nil
	}

	return nil, dataErrors.ErrStorageFailure(errBalanceConflict)
}

// CreateRechargeEntry 充值事务（无透支问题，余额只增）
func (r *ledgerRepo) CreateRechargeEntry(ctx context.Context, p *biz.RechargeParams) (*biz.LedgerEntry, error) {
	var entry model.LedgerEntry

	for attempt := 0; attempt < balanceRetryLimit; attempt++ {
		err := r.data.WithDB(func(db *gorm.DB) error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				var m model.Member
				if err := tx.Where("member_id = ?", p.MemberID).First(&m).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return dataErrors.ErrMemberNotFound(p.MemberID)
					}
					return err
				}

				balanceBefore := m.Balance
				balanceAfter := roundMoney(balanceBefore + p.Amount)

				res := tx.Model(&model.Member{}).
					Where("member_id = ? AND balance = ?", p.MemberID, balanceBefore).
					Update("balance", balanceAfter)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return errBalanceConflict
				}

				entry = model.LedgerEntry{
					LedgerEntryID:    uuid.New().String(),
					MemberID:         p.MemberID,
					Kind:             model.EntryKindRecharge,
					Amount:           p.Amount,
					BalanceBefore:    balanceBefore,
					BalanceAfter:     balanceAfter,
					CommissionAmount: p.CommissionAmount,
					PaymentMethod:    p.PaymentMethod,
					Remark:           p.Remark,
				}
				if p.OperatorID != "" {
					entry.OperatorID = &p.OperatorID
				}
				return tx.Create(&entry).Error
			})
		})

		if errors.Is(err, errBalanceConflict) {
			r.log.Warnf("recharge balance conflict, retrying: member=%s attempt=%d", p.MemberID, attempt+1)
			continue
		}
		if err != nil {
			return nil, wrapLedgerErr(err)
		}
		return entryToBiz(&entry), nil
	}

	return nil, dataErrors.ErrStorageFailure(errBalanceConflict)
}

// ListMemberEntries 查会员全部流水，按创建时间倒序
func (r *ledgerRepo) ListMemberEntries(ctx context.Context, memberID string) ([]*biz.LedgerEntry, error) {
	return r.ListEntries(ctx, &biz.EntryFilter{MemberID: memberID})
}

// entryRow 联表查询行
type entryRow struct {
	model.LedgerEntry
	MemberName   *string
	MemberPhone  *string
	ServiceName  *string
	OperatorName *string
}

// ListEntries 按条件查流水，联表补齐会员/服务项目/经手员工名称
// 会员被删后流水保留，联表字段为 NULL
func (r *ledgerRepo) ListEntries(ctx context.Context, filter *biz.EntryFilter) ([]*biz.LedgerEntry, error) {
	db := r.data.DB().WithContext(ctx).Model(&model.LedgerEntry{}).
		Select("ledger_entry.*",
			"member.name AS member_name", "member.phone AS member_phone",
			"service.name AS service_name", "employee.name AS operator_name").
		Joins("LEFT JOIN member ON member.member_id = ledger_entry.member_id").
		Joins("LEFT JOIN service ON service.service_id = ledger_entry.service_id").
		Joins("LEFT JOIN employee ON employee.employee_id = ledger_entry.operator_id")

	if filter != nil {
		if filter.MemberID != "" {
			db = db.Where("ledger_entry.member_id = ?", filter.MemberID)
		}
		if filter.Kind != "" {
			db = db.Where("ledger_entry.kind = ?", filter.Kind)
		}
		if filter.StartDate != nil {
			db = db.Where("ledger_entry.created_at >= ?", dayStart(*filter.StartDate))
		}
		if filter.EndDate != nil {
			db = db.Where("ledger_entry.created_at < ?", dayStart(*filter.EndDate).AddDate(0, 0, 1))
		}
	}

	var rows []entryRow
	if err := db.Order("ledger_entry.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	entries := make([]*biz.LedgerEntry, 0, len(rows))
	for i := range rows {
		e := entryToBiz(&rows[i].LedgerEntry)
		if rows[i].MemberName != nil {
			e.MemberName = *rows[i].MemberName
		}
		if rows[i].MemberPhone != nil {
			e.MemberPhone = *rows[i].MemberPhone
		}
		if rows[i].ServiceName != nil {
			e.ServiceName = *rows[i].ServiceName
		}
		if rows[i].OperatorName != nil {
			e.OperatorName = *rows[i].OperatorName
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// wrapLedgerErr 业务错误原样透出，其余归为存储失败
func wrapLedgerErr(err error) error {
	if dataErrors.IsMemberNotFound(err) || dataErrors.IsInsufficientBalance(err) {
		return err
	}
	return dataErrors.ErrStorageFailure(err)
}

// roundMoney 金额取整到分
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// dayStart 取当天零点
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
