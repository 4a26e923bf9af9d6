package service

import (
	"testing"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerErrors "github.com/IfFaith/MemberLite/internal/errors"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-08-29")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.August, got.Month())
	assert.Equal(t, 29, got.Day())
	// created_at 存本地时间，日期过滤必须落在同一时区
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local), *got)

	got, err = parseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDate("29/08/2026")
	require.Error(t, err)
	assert.Equal(t, ledgerErrors.ReasonBadRequest, kerrors.Reason(err))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", formatDate(nil))
	d := time.Date(2026, 8, 29, 10, 30, 0, 0, time.Local)
	assert.Equal(t, "2026-08-29", formatDate(&d))
}

func TestCheckRequestValidation(t *testing.T) {
	// 必填缺失
	err := checkRequest(&LoginRequest{Username: "admin"})
	require.Error(t, err)
	assert.Equal(t, ledgerErrors.ReasonBadRequest, kerrors.Reason(err))

	// 枚举值非法
	err = checkRequest(&CreateMemberRequest{Name: "张三", Phone: "138", Level: "platinum"})
	require.Error(t, err)
	assert.Equal(t, ledgerErrors.ReasonBadRequest, kerrors.Reason(err))

	// 合法请求
	require.NoError(t, checkRequest(&CreateMemberRequest{Name: "张三", Phone: "13800000000", Level: "vip"}))
	require.NoError(t, checkRequest(&LoginRequest{Username: "admin", Password: "123456"}))
}
