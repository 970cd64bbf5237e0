package order

import "fmt"

// AllowTransition 定义订单状态机的允许流转关系。
// 目前只有 pending -> confirmed 一条边；confirmed 是终态。
// 注意确认一个已确认的订单是业务冲突而不是幂等操作，
// 因此这里不把 from == to 视为合法流转。
var AllowTransition = map[Status][]Status{
	StatusPending:   {StatusConfirmed},
	StatusConfirmed: {},
}

// CanTransition 判断 from -> to 是否是一个允许的状态流转。
func CanTransition(from, to Status) bool {
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition 对订单应用状态变更。
// 仅在 CanTransition 返回 true 时修改订单。
func ApplyTransition(o *Order, to Status) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("invalid order status transition: %s -> %s", o.Status, to)
	}
	o.Status = to
	return nil
}
