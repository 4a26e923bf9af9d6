package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/robfig/cron/v3"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/conf"
)

// BackupServer 定时自动备份
// 作为 kratos transport.Server 挂进应用生命周期，调度表达式为空时不启用
type BackupServer struct {
	scheduler *cron.Cron
	uc        *biz.MaintenanceUseCase
	spec      string
	log       *log.Helper
	enabled   bool
}

// NewBackupServer 创建自动备份服务
func NewBackupServer(c *conf.Bootstrap, uc *biz.MaintenanceUseCase, logger log.Logger) *BackupServer {
	spec := ""
	if c.Backup != nil {
		spec = c.Backup.Cron
	}
	if spec == "" {
		return &BackupServer{enabled: false, log: log.NewHelper(logger)}
	}

	return &BackupServer{
		scheduler: cron.New(cron.WithSeconds()),
		uc:        uc,
		spec:      spec,
		log:       log.NewHelper(logger),
		enabled:   true,
	}
}

// Start 启动调度器
func (s *BackupServer) Start(ctx context.Context) error {
	if !s.enabled {
		s.log.Info("auto backup disabled, skipping startup")
		return nil
	}

	_, err := s.scheduler.AddFunc(s.spec, func() {
		if _, err := s.uc.Backup(context.Background()); err != nil {
			s.log.Errorf("scheduled backup failed: %v", err)
			return
		}
		s.log.Info("scheduled backup done")
	})
	if err != nil {
		s.log.Errorf("invalid backup cron spec %q: %v", s.spec, err)
		// 调度表达式配错不拖垮整个应用
		return nil
	}

	s.log.Infof("auto backup scheduled: %s", s.spec)
	s.scheduler.Start()
	return nil
}

// Stop 停止调度器，等待在跑的任务结束
func (s *BackupServer) Stop(ctx context.Context) error {
	if !s.enabled || s.scheduler == nil {
		return nil
	}
	s.log.Info("stopping auto backup scheduler")
	<-s.scheduler.Stop().Done()
	return nil
}
