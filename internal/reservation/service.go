package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/CarRentalHub/CarRentalHub/internal/car"
	"github.com/CarRentalHub/CarRentalHub/internal/order"
)

// CarStore 预订流程依赖的车辆目录操作。
type CarStore interface {
	GetByVIN(vin string) (*car.Car, error)
	SetAvailability(vin string, available bool) error
}

// OrderStore 预订流程依赖的订单存储操作。
type OrderStore interface {
	GetByID(orderID string) (*order.Order, error)
	Append(d order.Draft) (string, error)
	SetStatus(orderID string, status order.Status) error
}

// Service 封装预订领域的核心用例（不依赖 HTTP），便于复用和测试。
// mu 把“查可用性 -> 写订单 -> 翻转可用标记”整段做成一个临界区：
// 两个并发请求订同一辆车时，后进入的一定会看到前者翻转后的标记，
// 不会出现双重预订。
type Service struct {
	mu     sync.Mutex
	cars   CarStore
	orders OrderStore
}

func NewService(cars CarStore, orders OrderStore) *Service {
	return &Service{cars: cars, orders: orders}
}

// SubmitInput 提交预订的入参（可作为传输层 DTO 的基础）。
type SubmitInput struct {
	VIN              string
	CustomerName     string
	Phone            string
	Email            string
	License          string
	StartDate        string
	RentalPeriodDays int
}

// SubmitResult 提交成功后返回给前端的最小结果。
type SubmitResult struct {
	OrderID    string  `json:"order_id"`
	TotalPrice float64 `json:"total_price"`
}

// Submit 提交一笔预订：校验字段、核对车辆可用、算价、落订单、占车。
// 失败即返回第一个未满足的前置条件，不做重试。
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if s == nil || s.cars == nil || s.orders == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	if missing := missingFields(in); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}
	if in.RentalPeriodDays < 1 {
		return nil, &ValidationError{Message: "rental_period_days must be at least 1"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cars.GetByVIN(strings.TrimSpace(in.VIN))
	if err != nil {
		if errors.Is(err, car.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to load car: %w", err)
	}
	if !c.Availability {
		return nil, ErrCarUnavailable
	}

	totalPrice := c.PricePerDay * float64(in.RentalPeriodDays)

	orderID, err := s.orders.Append(order.Draft{
		VIN:              c.VIN,
		CustomerName:     strings.TrimSpace(in.CustomerName),
		Phone:            strings.TrimSpace(in.Phone),
		Email:            strings.TrimSpace(in.Email),
		License:          strings.TrimSpace(in.License),
		StartDate:        strings.TrimSpace(in.StartDate),
		RentalPeriodDays: in.RentalPeriodDays,
		TotalPrice:       totalPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cars.SetAvailability(c.VIN, false); err != nil {
		// 订单已经落盘但占车失败。再查一次当前状态，区分
		// “可用标记已被独立置为 false（输给并发预订）”和真正的写盘错误。
		// 两种情况都不回滚已创建的订单，沿用既有流程的取舍（见 DESIGN.md）。
		if cur, gerr := s.cars.GetByVIN(c.VIN); gerr == nil && !cur.Availability {
			return nil, ErrCarUnavailable
		}
		return nil, fmt.Errorf("failed to update car availability: %w", err)
	}

	return &SubmitResult{OrderID: orderID, TotalPrice: totalPrice}, nil
}

// Confirm 把订单从 pending 推进到 confirmed。
// 重复确认返回 ErrAlreadyConfirmed，状态机里没有 confirmed 的出边。
func (s *Service) Confirm(ctx context.Context, orderID string) (string, error) {
	if s == nil || s.orders == nil {
		return "", fmt.Errorf("service not initialized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return "", &ValidationError{Missing: []string{"order_id"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return "", ErrOrderNotFound
		}
		return "", fmt.Errorf("failed to load order: %w", err)
	}
	if o.Status == order.StatusConfirmed {
		return "", ErrAlreadyConfirmed
	}
	if err := order.ApplyTransition(o, order.StatusConfirmed); err != nil {
		return "", fmt.Errorf("failed to apply status transition: %w", err)
	}
	if err := s.orders.SetStatus(orderID, order.StatusConfirmed); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return "", ErrOrderNotFound
		}
		return "", fmt.Errorf("failed to update order status: %w", err)
	}
	return orderID, nil
}

// missingFields 按固定顺序检查必填字段，返回缺失的字段名列表。
// RentalPeriodDays 为零值时视为未填写。
func missingFields(in SubmitInput) []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("vin", in.VIN)
	check("customer_name", in.CustomerName)
	check("phone", in.Phone)
	check("email", in.Email)
	check("license", in.License)
	check("start_date", in.StartDate)
	if in.RentalPeriodDays == 0 {
		missing = append(missing, "rental_period_days")
	}
	return missing
}
