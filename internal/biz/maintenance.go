package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/metrics"
)

// BackupFile 备份文件信息
type BackupFile struct {
	FileName   string
	FilePath   string
	FileSize   int64
	ModifiedAt time.Time
}

// RestoreResult 恢复结果
type RestoreResult struct {
	// SafetyCopyPath 恢复前对当前库做的保险备份路径
	SafetyCopyPath string
}

// MaintenanceRepo 数据管理数据层接口（定义在 biz 层）
// Restore 负责关闭连接、换文件、重开连接，不与流水事务并发
type MaintenanceRepo interface {
	Backup(ctx context.Context) (*BackupFile, error)
	ListBackups(ctx context.Context) ([]*BackupFile, error)
	Restore(ctx context.Context, backupPath string) (*RestoreResult, error)
	DeleteBackup(ctx context.Context, backupPath string) error
}

// MaintenanceUseCase 数据管理业务逻辑
type MaintenanceUseCase struct {
	repo    MaintenanceRepo
	log     *log.Helper
	metrics *metrics.LedgerMetrics
}

// NewMaintenanceUseCase 创建数据管理 UseCase
func NewMaintenanceUseCase(repo MaintenanceRepo, logger log.Logger) *MaintenanceUseCase {
	return &MaintenanceUseCase{
		repo:    repo,
		log:     log.NewHelper(logger),
		metrics: metrics.GetMetrics(),
	}
}

// Backup 备份数据库文件
func (uc *MaintenanceUseCase) Backup(ctx context.Context) (*BackupFile, error) {
	f, err := uc.repo.Backup(ctx)
	if err != nil {
		uc.metrics.BackupTotal.WithLabelValues(metrics.ResultError).Inc()
		uc.log.Errorf("backup failed: %v", err)
		return nil, err
	}
	uc.metrics.BackupTotal.WithLabelValues(metrics.ResultOK).Inc()
	uc.log.Infof("backup ok: file=%s size=%d", f.FileName, f.FileSize)
	return f, nil
}

// ListBackups 获取备份文件列表，按时间倒序
func (uc *MaintenanceUseCase) ListBackups(ctx context.Context) ([]*BackupFile, error) {
	return uc.repo.ListBackups(ctx)
}

// Restore 从备份文件恢复数据库
func (uc *MaintenanceUseCase) Restore(ctx context.Context, backupPath string) (*RestoreResult, error) {
	res, err := uc.repo.Restore(ctx, backupPath)
	if err != nil {
		uc.log.Errorf("restore failed: path=%s err=%v", backupPath, err)
		return nil, err
	}
	uc.log.Infof("restore ok: from=%s safety_copy=%s", backupPath, res.SafetyCopyPath)
	return res, nil
}

// DeleteBackup 删除备份文件
func (uc *MaintenanceUseCase) DeleteBackup(ctx context.Context, backupPath string) error {
	return uc.repo.DeleteBackup(ctx, backupPath)
}
