package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/constants"
)

// LedgerService 流水服务（扣款/充值/历史查询）
type LedgerService struct {
	uc        *biz.LedgerUseCase
	memberUC  *biz.MemberUseCase
	catalogUC *biz.CatalogUseCase
	log       *log.Helper
}

// NewLedgerService 创建 LedgerService
func NewLedgerService(uc *biz.LedgerUseCase, memberUC *biz.MemberUseCase, catalogUC *biz.CatalogUseCase, logger log.Logger) *LedgerService {
	return &LedgerService{
		uc:        uc,
		memberUC:  memberUC,
		catalogUC: catalogUC,
		log:       log.NewHelper(logger),
	}
}

// ChargeRequest 消费扣款请求
// Amount 不传时按会员等级从服务项目价格表解析
type ChargeRequest struct {
	MemberID   string  `json:"member_id" validate:"required"`
	ServiceID  string  `json:"service_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	OperatorID string  `json:"operator_id"`
	Remark     string  `json:"remark" validate:"max=255"`
}

// RechargeRequest 充值请求
type RechargeRequest struct {
	MemberID      string  `json:"member_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	OperatorID    string  `json:"operator_id"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash card mobile other"`
	Remark        string  `json:"remark" validate:"max=255"`
}

// LedgerReply 扣款/充值结果
type LedgerReply struct {
	EntryID    string  `json:"entry_id"`
	NewBalance float64 `json:"new_balance"`
}

// LedgerEntryReply 流水明细
type LedgerEntryReply struct {
	LedgerEntryID    string  `json:"ledger_entry_id"`
	MemberID         string  `json:"member_id"`
	MemberName       string  `json:"member_name"`
	MemberPhone      string  `json:"member_phone"`
	ServiceID        string  `json:"service_id"`
	ServiceName      string  `json:"service_name"`
	Kind             string  `json:"kind"`
	Amount           float64 `json:"amount"`
	BalanceBefore    float64 `json:"balance_before"`
	BalanceAfter     float64 `json:"balance_after"`
	OperatorID       string  `json:"operator_id"`
	OperatorName     string  `json:"operator_name"`
	CommissionAmount float64 `json:"commission_amount"`
	PaymentMethod    string  `json:"payment_method"`
	Remark           string  `json:"remark"`
	CreatedAt        string  `json:"created_at"`
}

// ListEntriesRequest 流水查询条件
type ListEntriesRequest struct {
	MemberID  string `json:"member_id"`
	Kind      string `json:"kind" validate:"omitempty,oneof=charge recharge"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func entryToReply(e *biz.LedgerEntry) *LedgerEntryReply {
	return &LedgerEntryReply{
		LedgerEntryID:    e.LedgerEntryID,
		MemberID:         e.MemberID,
		MemberName:       e.MemberName,
		MemberPhone:      e.MemberPhone,
		ServiceID:        e.ServiceID,
		ServiceName:      e.ServiceName,
		Kind:             e.Kind,
		Amount:           e.Amount,
		BalanceBefore:    e.BalanceBefore,
		BalanceAfter:     e.BalanceAfter,
		OperatorID:       e.OperatorID,
		OperatorName:     e.OperatorName,
		CommissionAmount: e.CommissionAmount,
		PaymentMethod:    e.PaymentMethod,
		Remark:           e.Remark,
		CreatedAt:        e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Charge 消费扣款
// 金额未显式给出时按会员等级解析服务项目价格
func (s *LedgerService) Charge(ctx context.Context, req *ChargeRequest) (*LedgerReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount == 0 {
		member, err := s.memberUC.GetMember(ctx, req.MemberID)
		if err != nil {
			return nil, err
		}
		svc, err := s.catalogUC.GetService(ctx, req.ServiceID)
		if err != nil {
			return nil, err
		}
		amount = biz.ResolvePrice(member.Level, svc)
	}

	result, err := s.uc.Charge(ctx, &biz.ChargeParams{
		MemberID:   req.MemberID,
		ServiceID:  req.ServiceID,
		Amount:     amount,
		OperatorID: req.OperatorID,
		Remark:     req.Remark,
	})
	if err != nil {
		s.log.Warnf("Charge failed: member=%s service=%s err=%v", req.MemberID, req.ServiceID, err)
		return nil, err
	}
	return &LedgerReply{EntryID: result.EntryID, NewBalance: result.NewBalance}, nil
}

// Recharge 充值
func (s *LedgerService) Recharge(ctx context.Context, req *RechargeRequest) (*LedgerReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = constants.PaymentMethodCash
	}

	result, err := s.uc.Recharge(ctx, &biz.RechargeParams{
		MemberID:      req.MemberID,
		Amount:        req.Amount,
		OperatorID:    req.OperatorID,
		PaymentMethod: method,
		Remark:        req.Remark,
	})
	if err != nil {
		s.log.Warnf("Recharge failed: member=%s err=%v", req.MemberID, err)
		return nil, err
	}
	return &LedgerReply{EntryID: result.EntryID, NewBalance: result.NewBalance}, nil
}

// ListMemberEntries 获取会员全部流水
func (s *LedgerService) ListMemberEntries(ctx context.Context, memberID string) ([]*LedgerEntryReply, error) {
	entries, err := s.uc.ListMemberEntries(ctx, memberID)
	if err != nil {
		s.log.Errorf("ListMemberEntries failed: %v", err)
		return nil, err
	}

	replies := make([]*LedgerEntryReply, 0, len(entries))
	for _, e := range entries {
		replies = append(replies, entryToReply(e))
	}
	return replies, nil
}

// ListEntries 按条件查询流水
func (s *LedgerService) ListEntries(ctx context.Context, req *ListEntriesRequest) ([]*LedgerEntryReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	entries, err := s.uc.ListEntries(ctx, &biz.EntryFilter{
		MemberID:  req.MemberID,
		Kind:      req.Kind,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		s.log.Errorf("ListEntries failed: %v", err)
		return nil, err
	}

	replies := make([]*LedgerEntryReply, 0, len(entries))
	for _, e := range entries {
		replies = append(replies, entryToReply(e))
	}
	return replies, nil
}
