package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/wire"

	"github.com/IfFaith/MemberLite/internal/constants"
	ledgerErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(
	NewMemberService,
	NewCatalogService,
	NewEmployeeService,
	NewLedgerService,
	NewReportService,
	NewMaintenanceService,
	NewAuthService,
)

// validate 请求参数校验器（service 层共用）
var validate = validator.New()

// checkRequest 校验请求结构体，失败转为 BAD_REQUEST
func checkRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return ledgerErrors.ErrBadRequest(err.Error())
	}
	return nil
}

// parseDate 解析 2006-01-02 格式日期，空串返回 nil
// 流水 created_at 存的是本地时间，日期必须按本地时区解析，
// 否则在非 UTC 机器上日期过滤会整体偏移一个时区
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(constants.TimeFormatDate, s, time.Local)
	if err != nil {
		return nil, ledgerErrors.ErrBadRequest("date must be in YYYY-MM-DD format: " + s)
	}
	return &t, nil
}

// formatDate 格式化日期指针，nil 返回空串
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constants.TimeFormatDate)
}
