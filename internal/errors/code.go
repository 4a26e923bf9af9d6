package errors

import (
	"github.com/go-kratos/kratos/v2/errors"
)

// MemberLite 错误码定义
// 错误码格式：SSMMEE (6位数字)
//   SS: 服务标识，MemberLite 固定为 27
//   MM: 模块标识，按业务划分
//   EE: 模块内错误序号
//
// 模块划分：
//   01: 会员模块
//   02: 服务项目模块
//   03: 员工模块
//   04: 流水模块
//   05: 统计模块
//   06: 数据管理模块
//   07: 登录模块

// 错误 Reason 常量（对外稳定的判别标识）
const (
	// ReasonMemberNotFound 会员不存在
	ReasonMemberNotFound = "MEMBER_NOT_FOUND"
	// ReasonPhoneExists 手机号已被注册
	ReasonPhoneExists = "PHONE_EXISTS"
	// ReasonServiceNotFound 服务项目不存在
	ReasonServiceNotFound = "SERVICE_NOT_FOUND"
	// ReasonServiceNameExists 服务项目名称已存在
	ReasonServiceNameExists = "SERVICE_NAME_EXISTS"
	// ReasonEmployeeNotFound 员工不存在
	ReasonEmployeeNotFound = "EMPLOYEE_NOT_FOUND"
	// ReasonInvalidAmount 金额非法（非正数或非法数值）
	ReasonInvalidAmount = "INVALID_AMOUNT"
	// ReasonInsufficientBalance 余额不足
	ReasonInsufficientBalance = "INSUFFICIENT_BALANCE"
	// ReasonStorageFailure 存储层失败（事务已回滚）
	ReasonStorageFailure = "STORAGE_FAILURE"
	// ReasonBackupNotFound 备份文件不存在
	ReasonBackupNotFound = "BACKUP_NOT_FOUND"
	// ReasonInvalidCredentials 账号或密码错误
	ReasonInvalidCredentials = "INVALID_CREDENTIALS"
	// ReasonUnauthorized 未登录或令牌失效
	ReasonUnauthorized = "UNAUTHORIZED"
	// ReasonBadRequest 请求参数非法
	ReasonBadRequest = "BAD_REQUEST"
)

// 通用错误 (270000-270099)

// ErrBadRequest 请求参数非法
func ErrBadRequest(message string) *errors.Error {
	return errors.New(400, ReasonBadRequest, message).
		WithMetadata(map[string]string{"code": "270001"})
}

// 会员模块错误 (270100-270199)

// ErrMemberNotFound 会员不存在
func ErrMemberNotFound(memberID string) *errors.Error {
	return errors.New(404, ReasonMemberNotFound, "member not found").
		WithMetadata(map[string]string{"member_id": memberID, "code": "270101"})
}

// ErrPhoneExists 手机号已被注册
func ErrPhoneExists(phone string) *errors.Error {
	return errors.New(409, ReasonPhoneExists, "phone already registered").
		WithMetadata(map[string]string{"phone": phone, "code": "270102"})
}

// 服务项目模块错误 (270200-270299)

// ErrServiceNotFound 服务项目不存在
func ErrServiceNotFound(serviceID string) *errors.Error {
	return errors.New(404, ReasonServiceNotFound, "service not found").
		WithMetadata(map[string]string{"service_id": serviceID, "code": "270201"})
}

// ErrServiceNameExists 服务项目名称已存在
func ErrServiceNameExists(name string) *errors.Error {
	return errors.New(409, ReasonServiceNameExists, "service name already exists").
		WithMetadata(map[string]string{"name": name, "code": "270202"})
}

// 员工模块错误 (270300-270399)

// ErrEmployeeNotFound 员工不存在
func ErrEmployeeNotFound(employeeID string) *errors.Error {
	return errors.New(404, ReasonEmployeeNotFound, "employee not found").
		WithMetadata(map[string]string{"employee_id": employeeID, "code": "270301"})
}

// 流水模块错误 (270400-270499)

// ErrInvalidAmount 金额非法
func ErrInvalidAmount(reason string) *errors.Error {
	return errors.New(400, ReasonInvalidAmount, reason).
		WithMetadata(map[string]string{"code": "270401"})
}

// ErrInsufficientBalance 余额不足，本次扣款会透支
func ErrInsufficientBalance() *errors.Error {
	return errors.New(409, ReasonInsufficientBalance, "insufficient balance").
		WithMetadata(map[string]string{"code": "270402"})
}

// ErrStorageFailure 存储层失败，事务已整体回滚
func ErrStorageFailure(cause error) *errors.Error {
	return errors.New(500, ReasonStorageFailure, "storage failure").
		WithMetadata(map[string]string{"code": "270403"}).WithCause(cause)
}

// 数据管理模块错误 (270600-270699)

// ErrBackupNotFound 备份文件不存在
func ErrBackupNotFound(path string) *errors.Error {
	return errors.New(404, ReasonBackupNotFound, "backup file not found").
		WithMetadata(map[string]string{"path": path, "code": "270601"})
}

// 登录模块错误 (270700-270799)

// ErrInvalidCredentials 账号或密码错误
func ErrInvalidCredentials() *errors.Error {
	return errors.New(401, ReasonInvalidCredentials, "invalid username or password").
		WithMetadata(map[string]string{"code": "270701"})
}

// ErrUnauthorized 未登录或令牌失效
func ErrUnauthorized() *errors.Error {
	return errors.New(401, ReasonUnauthorized, "missing or invalid token").
		WithMetadata(map[string]string{"code": "270702"})
}

// IsMemberNotFound 判断是否为会员不存在错误
func IsMemberNotFound(err error) bool {
	return errors.Reason(err) == ReasonMemberNotFound
}

// IsInvalidAmount 判断是否为金额非法错误
func IsInvalidAmount(err error) bool {
	return errors.Reason(err) == ReasonInvalidAmount
}

// IsInsufficientBalance 判断是否为余额不足错误
func IsInsufficientBalance(err error) bool {
	return errors.Reason(err) == ReasonInsufficientBalance
}

// IsStorageFailure 判断是否为存储层失败错误
func IsStorageFailure(err error) bool {
	return errors.Reason(err) == ReasonStorageFailure
}
