package reservation

import (
	"errors"
	"strings"
)

// 业务错误按类别区分，传输层据此映射 HTTP 状态码：
// 校验失败 400、找不到 404、业务冲突 400、存储失败 500。
var (
	// ErrCarNotFound 目录中没有该 VIN。
	ErrCarNotFound = errors.New("car not found")
	// ErrCarUnavailable 车辆当前不可租（包括提交过程中被别人抢先订走）。
	ErrCarUnavailable = errors.New("car is not available")
	// ErrOrderNotFound 订单号不存在。
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyConfirmed 订单已经确认过，重复确认是冲突而不是幂等成功。
	ErrAlreadyConfirmed = errors.New("order already confirmed")
)

// ValidationError 请求字段校验失败（调用方的问题）。
type ValidationError struct {
	Missing []string // 缺失的必填字段名
	Message string   // 非缺失类的校验失败原因
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "missing information: " + strings.Join(e.Missing, ", ")
	}
	return e.Message
}
