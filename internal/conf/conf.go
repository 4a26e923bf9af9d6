package conf

// Bootstrap 启动配置（由 kratos config 从 configs/config.yaml 扫描）
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Auth   *Auth   `json:"auth"`
	Backup *Backup `json:"backup"`
}

// Server 服务配置
type Server struct {
	HTTP *HTTP `json:"http"`
}

// HTTP HTTP 服务配置
type HTTP struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	// Timeout 请求超时，如 "5s"
	Timeout string `json:"timeout"`
}

// Data 数据层配置
type Data struct {
	Database *Database `json:"database"`
}

// Database 数据库配置
type Database struct {
	// Path SQLite 数据库文件路径
	Path string `json:"path"`
}

// Auth 登录配置
type Auth struct {
	// JWTSecret 签发登录令牌的密钥
	JWTSecret string `json:"jwt_secret"`
	// TokenExpireHours 令牌有效期（小时），默认 12
	TokenExpireHours int `json:"token_expire_hours"`
}

// Backup 备份配置
type Backup struct {
	// Dir 备份文件目录，默认数据库同级 backups 目录
	Dir string `json:"dir"`
	// Cron 自动备份调度表达式（含秒），为空则不启用
	Cron string `json:"cron"`
}
