package data

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/conf"
	"github.com/IfFaith/MemberLite/internal/constants"
)

// newTestData 建一个落在临时目录里的库，用完自动清理
func newTestData(t *testing.T) *Data {
	t.Helper()
	bc := &conf.Bootstrap{
		Data: &conf.Data{
			Database: &conf.Database{Path: filepath.Join(t.TempDir(), "test.db")},
		},
	}
	d, cleanup, err := NewData(bc, log.NewStdLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return d
}

func testLogger() log.Logger {
	return log.NewStdLogger(io.Discard)
}

func kratosReason(err error) string {
	return kerrors.Reason(err)
}

// createTestMember 建一个带指定余额的会员
func createTestMember(t *testing.T, repo biz.MemberRepo, phone string, balance float64) *biz.Member {
	t.Helper()
	m := &biz.Member{
		Name:    "测试会员",
		Phone:   phone,
		Level:   constants.MemberLevelStandard,
		Balance: balance,
		Status:  constants.MemberStatusActive,
	}
	require.NoError(t, repo.CreateMember(context.Background(), m))
	return m
}
