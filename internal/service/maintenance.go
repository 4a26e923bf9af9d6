package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/biz"
)

// MaintenanceService 数据管理服务（备份/恢复）
type MaintenanceService struct {
	uc  *biz.MaintenanceUseCase
	log *log.Helper
}

// NewMaintenanceService 创建 MaintenanceService
func NewMaintenanceService(uc *biz.MaintenanceUseCase, logger log.Logger) *MaintenanceService {
	return &MaintenanceService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// BackupFileReply 备份文件信息
type BackupFileReply struct {
	FileName   string `json:"file_name"`
	FilePath   string `json:"file_path"`
	FileSize   int64  `json:"file_size"`
	ModifiedAt string `json:"modified_at"`
}

// RestoreRequest 恢复请求
type RestoreRequest struct {
	FilePath string `json:"file_path" validate:"required"`
}

// RestoreReply 恢复结果
type RestoreReply struct {
	// SafetyCopyPath 恢复前自动生成的保险备份路径
	SafetyCopyPath string `json:"safety_copy_path"`
}

// DeleteBackupRequest 删除备份请求
type DeleteBackupRequest struct {
	FilePath string `json:"file_path" validate:"required"`
}

func backupToReply(f *biz.BackupFile) *BackupFileReply {
	return &BackupFileReply{
		FileName:   f.FileName,
		FilePath:   f.FilePath,
		FileSize:   f.FileSize,
		ModifiedAt: f.ModifiedAt.Format("2006-01-02 15:04:05"),
	}
}

// Backup 手动备份数据库
func (s *MaintenanceService) Backup(ctx context.Context) (*BackupFileReply, error) {
	f, err := s.uc.Backup(ctx)
	if err != nil {
		s.log.Errorf("Backup failed: %v", err)
		return nil, err
	}
	s.log.Infof("backup created: %s (%d bytes)", f.FilePath, f.FileSize)
	return backupToReply(f), nil
}

// ListBackups 获取备份列表
func (s *MaintenanceService) ListBackups(ctx context.Context) ([]*BackupFileReply, error) {
	files, err := s.uc.ListBackups(ctx)
	if err != nil {
		s.log.Errorf("ListBackups failed: %v", err)
		return nil, err
	}

	replies := make([]*BackupFileReply, 0, len(files))
	for _, f := range files {
		replies = append(replies, backupToReply(f))
	}
	return replies, nil
}

// Restore 从备份恢复数据库
func (s *MaintenanceService) Restore(ctx context.Context, req *RestoreRequest) (*RestoreReply, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	result, err := s.uc.Restore(ctx, req.FilePath)
	if err != nil {
		s.log.Errorf("Restore failed: %v", err)
		return nil, err
	}
	s.log.Infof("database restored from %s, safety copy at %s", req.FilePath, result.SafetyCopyPath)
	return &RestoreReply{SafetyCopyPath: result.SafetyCopyPath}, nil
}

// DeleteBackup 删除备份文件
func (s *MaintenanceService) DeleteBackup(ctx context.Context, req *DeleteBackupRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	if err := s.uc.DeleteBackup(ctx, req.FilePath); err != nil {
		s.log.Errorf("DeleteBackup failed: %v", err)
		return err
	}
	return nil
}
