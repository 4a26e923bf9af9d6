package constants

// 时间格式常量
const (
	// TimeFormatDate 日期格式 (YYYY-MM-DD)
	TimeFormatDate = "2006-01-02"
	// TimeFormatBackup 备份文件名时间戳格式
	TimeFormatBackup = "20060102-150405"
)

// 会员等级常量
const (
	// MemberLevelStandard 普通会员
	MemberLevelStandard = "standard"
	// MemberLevelVIP VIP 会员
	MemberLevelVIP = "vip"
	// MemberLevelDiamond 钻石会员
	MemberLevelDiamond = "diamond"
)

// 会员状态常量
const (
	// MemberStatusActive 正常
	MemberStatusActive = "active"
	// MemberStatusSuspended 停用
	MemberStatusSuspended = "suspended"
	// MemberStatusClosed 注销
	MemberStatusClosed = "closed"
)

// 服务项目状态常量
const (
	// ServiceStatusEnabled 启用
	ServiceStatusEnabled = "enabled"
	// ServiceStatusDisabled 停用
	ServiceStatusDisabled = "disabled"
)

// 员工状态常量
const (
	// EmployeeStatusActive 在职
	EmployeeStatusActive = "active"
	// EmployeeStatusDeparted 离职
	EmployeeStatusDeparted = "departed"
)

// 流水类型常量
const (
	// EntryKindCharge 消费扣款
	EntryKindCharge = "charge"
	// EntryKindRecharge 充值
	EntryKindRecharge = "recharge"
)

// 支付方式常量
const (
	// PaymentMethodCash 现金
	PaymentMethodCash = "cash"
	// PaymentMethodCard 刷卡
	PaymentMethodCard = "card"
	// PaymentMethodMobile 移动支付
	PaymentMethodMobile = "mobile"
	// PaymentMethodOther 其他
	PaymentMethodOther = "other"
)

// 缓存 Key 常量
const (
	// CacheKeyServices 服务项目列表缓存 key
	CacheKeyServices = "catalog:services"
)

// 设置项 Key 常量
const (
	// SettingKeyPasswordHash 登录密码哈希
	SettingKeyPasswordHash = "login_password_hash"
)

// 默认登录账号
const (
	// DefaultUsername 默认登录用户名
	DefaultUsername = "admin"
	// DefaultPassword 默认登录密码（首次启动时写入设置表）
	DefaultPassword = "123456"
)
