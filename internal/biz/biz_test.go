package biz

import (
	"io"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

func testLogger() log.Logger {
	return log.NewStdLogger(io.Discard)
}

func kratosReason(err error) string {
	return kerrors.Reason(err)
}
