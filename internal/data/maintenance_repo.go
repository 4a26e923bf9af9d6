package data

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/conf"
	"github.com/IfFaith/MemberLite/internal/constants"
	dataErrors "github.com/IfFaith/MemberLite/internal/errors"
)

// maintenanceRepo 数据管理（备份/恢复）数据访问
// 备份就是复制数据库文件；恢复通过 Data.SwapDatabase 关连接换文件再重开
type maintenanceRepo struct {
	data      *Data
	backupDir string
	log       *log.Helper
}

// NewMaintenanceRepo 创建数据管理 repo（返回 biz.MaintenanceRepo 接口）
func NewMaintenanceRepo(data *Data, c *conf.Bootstrap, logger log.Logger) biz.MaintenanceRepo {
	dir := ""
	if c.Backup != nil {
		dir = c.Backup.Dir
	}
	if dir == "" {
		dir = filepath.Join(filepath.Dir(data.Path()), "backups")
	}
	return &maintenanceRepo{
		data:      data,
		backupDir: dir,
		log:       log.NewHelper(logger),
	}
}

// copyFile 整文件复制
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return 0, err
	}
	return n, out.Sync()
}

// Backup 复制数据库文件到备份目录，文件名带时间戳
func (r *maintenanceRepo) Backup(ctx context.Context) (*biz.BackupFile, error) {
	if err := os.MkdirAll(r.backupDir, 0o755); err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	fileName := fmt.Sprintf("memberlite_backup_%s.db", time.Now().Format(constants.TimeFormatBackup))
	backupPath := filepath.Join(r.backupDir, fileName)

	// WAL 模式下已提交事务可能还留在 -wal 文件里，先回写再复制
	if err := r.data.Checkpoint(ctx); err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}
	size, err := copyFile(r.data.Path(), backupPath)
	if err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	return &biz.BackupFile{
		FileName:   fileName,
		FilePath:   backupPath,
		FileSize:   size,
		ModifiedAt: time.Now(),
	}, nil
}

// ListBackups 获取备份目录下的 .db 文件，按修改时间倒序
func (r *maintenanceRepo) ListBackups(ctx context.Context) ([]*biz.BackupFile, error) {
	entries, err := os.ReadDir(r.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*biz.BackupFile{}, nil
		}
		return nil, dataErrors.ErrStorageFailure(err)
	}

	files := make([]*biz.BackupFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, &biz.BackupFile{
			FileName:   entry.Name(),
			FilePath:   filepath.Join(r.backupDir, entry.Name()),
			FileSize:   info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModifiedAt.After(files[j].ModifiedAt)
	})
	return files, nil
}

// Restore 从备份文件恢复数据库
// 先把当前库做保险备份，再关连接、覆盖文件、重开连接
func (r *maintenanceRepo) Restore(ctx context.Context, backupPath string) (*biz.RestoreResult, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return nil, dataErrors.ErrBackupNotFound(backupPath)
	}

	safetyCopy := filepath.Join(filepath.Dir(r.data.Path()),
		fmt.Sprintf("memberlite_before_restore_%s.db", time.Now().Format(constants.TimeFormatBackup)))

	// 保险备份同样要求主库文件是完整快照
	if err := r.data.Checkpoint(ctx); err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}
	err := r.data.SwapDatabase(func(dbPath string) error {
		if _, err := os.Stat(dbPath); err == nil {
			if _, err := copyFile(dbPath, safetyCopy); err != nil {
				return fmt.Errorf("create safety copy failed: %w", err)
			}
		}
		if _, err := copyFile(backupPath, dbPath); err != nil {
			return fmt.Errorf("copy backup over database failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, dataErrors.ErrStorageFailure(err)
	}

	return &biz.RestoreResult{SafetyCopyPath: safetyCopy}, nil
}

// DeleteBackup 删除备份文件
func (r *maintenanceRepo) DeleteBackup(ctx context.Context, backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return dataErrors.ErrBackupNotFound(backupPath)
	}
	if err := os.Remove(backupPath); err != nil {
		return dataErrors.ErrStorageFailure(err)
	}
	return nil
}
