package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/IfFaith/MemberLite/internal/conf"
	"github.com/IfFaith/MemberLite/internal/constants"
	"github.com/IfFaith/MemberLite/internal/data/model"

	"github.com/glebarez/sqlite"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewMemberRepo,
	NewCatalogRepo,
	NewEmployeeRepo,
	NewLedgerRepo,
	NewStatsRepo,
	NewSettingRepo,
	NewMaintenanceRepo,
)

// Data 数据层结构体
// 持有嵌入式 SQLite 句柄；备份恢复时通过 SwapDatabase 安全换文件
type Data struct {
	mu    sync.RWMutex
	db    *gorm.DB
	path  string
	cache *cache.Cache
	log   *log.Helper
}

// NewData 创建数据层实例：打开数据库、建表并写入初始数据
func NewData(c *conf.Bootstrap, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	if c.Data == nil || c.Data.Database == nil || c.Data.Database.Path == "" {
		return nil, nil, fmt.Errorf("database config is nil")
	}
	path := c.Data.Database.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database dir failed: %w", err)
		}
	}

	db, err := openDB(path)
	if err != nil {
		return nil, nil, err
	}
	if err := seedDefaults(db); err != nil {
		return nil, nil, err
	}

	d := &Data{
		db:    db,
		path:  path,
		cache: cache.New(5*time.Minute, 10*time.Minute),
		log:   helper,
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.db == nil {
			return
		}
		if sqlDB, err := d.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				helper.Errorf("failed to close database: %v", err)
			}
		}
		d.db = nil
	}

	return d, cleanup, nil
}

// openDB 打开 SQLite 数据库并完成建表
// SQLite 只允许一个写入者，这里把连接池压到单连接，
// 使每次 Charge/Recharge 事务天然成为该库的串行化点
func openDB(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite failed: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Member{},
		&model.Service{},
		&model.Employee{},
		&model.ProjectCommission{},
		&model.LedgerEntry{},
		&model.Setting{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return db, nil
}

// seedDefaults 写入初始数据：默认服务项目和默认登录密码
func seedDefaults(db *gorm.DB) error {
	type seedService struct {
		name, category             string
		price, vipPrice, diamPrice float64
	}
	defaults := []seedService{
		{"剪发", "剪发", 30.00, 25.00, 20.00},
		{"染发", "染发", 150.00, 130.00, 110.00},
		{"烫发", "烫发", 200.00, 180.00, 160.00},
		{"护理", "护理", 80.00, 70.00, 60.00},
		{"造型", "造型", 50.00, 45.00, 40.00},
	}
	for _, s := range defaults {
		var count int64
		if err := db.Model(&model.Service{}).Where("name = ?", s.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		vip, diamond := s.vipPrice, s.diamPrice
		m := model.Service{
			ServiceID:    uuid.New().String(),
			Name:         s.name,
			Category:     s.category,
			Price:        s.price,
			VipPrice:     &vip,
			DiamondPrice: &diamond,
			Status:       constants.ServiceStatusEnabled,
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&model.Setting{}).
		Where("setting_key = ?", constants.SettingKeyPasswordHash).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(constants.DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&model.Setting{
			SettingKey:   constants.SettingKeyPasswordHash,
			SettingValue: string(hash),
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// DB 获取当前数据库句柄
func (d *Data) DB() *gorm.DB {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db
}

// WithDB 在共享锁内执行 fn
// 余额写事务必须走这里：整个事务期间持有读锁，
// 与 SwapDatabase 的写锁互斥，恢复期间不会截断正在写的库文件
func (d *Data) WithDB(fn func(db *gorm.DB) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fn(d.db)
}

// Checkpoint 把 WAL 日志回写进主库文件并截断
// 备份前必须执行，否则复制出的文件缺少 WAL 中未回写的事务
func (d *Data) Checkpoint(ctx context.Context) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db.WithContext(ctx).Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error
}

// Path 数据库文件路径
func (d *Data) Path() string {
	return d.path
}

// SwapDatabase 关闭当前连接，执行文件替换回调，再重新打开连接
// 写锁与 WithDB 的读锁互斥，进行中的流水事务结束前不会开始换文件
func (d *Data) SwapDatabase(swap func(dbPath string) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sqlDB, err := d.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			d.log.Warnf("close database before swap failed: %v", err)
		}
	}
	// 残留的 WAL 文件会在重开时回放到换入的库上，必须清掉
	os.Remove(d.path + "-wal")
	os.Remove(d.path + "-shm")

	swapErr := swap(d.path)

	db, err := openDB(d.path)
	if err != nil {
		return fmt.Errorf("reopen database failed: %w", err)
	}
	d.db = db
	d.cache.Flush()

	return swapErr
}
