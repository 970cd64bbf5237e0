package order

// Status 订单状态枚举（持久化为字符串）。
type Status string

const (
	StatusPending   Status = "pending"   // 已提交，等待确认
	StatusConfirmed Status = "confirmed" // 已确认（终态）
)

// Order 租车订单（直接对应 data/orders.json 中的一条记录）。
// OrderID 一经分配不再变化；TotalPrice 在下单时一次性算好，之后不重算。
type Order struct {
	OrderID          string  `json:"order_id"`
	VIN              string  `json:"vin"`
	CustomerName     string  `json:"customer_name"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	License          string  `json:"license"`
	StartDate        string  `json:"start_date"`
	RentalPeriodDays int     `json:"rental_period_days"`
	TotalPrice       float64 `json:"total_price"`
	Status           Status  `json:"status"`
}

// Draft 待入库的订单字段，OrderID 和 Status 由存储层在落盘时分配。
type Draft struct {
	VIN              string
	CustomerName     string
	Phone            string
	Email            string
	License          string
	StartDate        string
	RentalPeriodDays int
	TotalPrice       float64
}
