package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNotFound 订单不存在。
var ErrNotFound = errors.New("order not found")

// Store 基于单个 JSON 文件的订单存储，更新原语与 car.Store 相同：
// 整文件读出-改写，所有操作串行化在同一把锁下。
// 订单号的 count+1 推导也发生在锁内，并发下单不会算出相同序号。
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// List 返回全部订单。文件缺失或无法解析时返回空列表，约定同车辆目录。
func (s *Store) List() []Order {
	if s == nil || s.path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// GetByID 按订单号线性查找。
func (s *Store) GetByID(orderID string) (*Order, error) {
	if s == nil || s.path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.load() {
		if o.OrderID == orderID {
			o := o
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// Append 分配订单号并追加一条 pending 订单，然后整体重写文件。
// 订单号形如 ORD-<年份><4位序号>，序号取当前订单数+1。
func (s *Store) Append(d Draft) (string, error) {
	if s == nil || s.path == "" {
		return "", fmt.Errorf("store path is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.load()
	orderID := fmt.Sprintf("ORD-%d%04d", s.now().Year(), len(orders)+1)

	orders = append(orders, Order{
		OrderID:          orderID,
		VIN:              d.VIN,
		CustomerName:     d.CustomerName,
		Phone:            d.Phone,
		Email:            d.Email,
		License:          d.License,
		StartDate:        d.StartDate,
		RentalPeriodDays: d.RentalPeriodDays,
		TotalPrice:       d.TotalPrice,
		Status:           StatusPending,
	})

	if err := s.save(orders); err != nil {
		return "", err
	}
	return orderID, nil
}

// SetStatus 修改单个订单的状态并整体重写文件。
// 订单号不存在返回 ErrNotFound，写盘失败原样返回底层错误。
func (s *Store) SetStatus(orderID string, status Status) error {
	if s == nil || s.path == "" {
		return fmt.Errorf("store path is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.load()
	updated := false
	for i := range orders {
		if orders[i].OrderID == orderID {
			orders[i].Status = status
			updated = true
			break
		}
	}
	if !updated {
		return ErrNotFound
	}
	return s.save(orders)
}

func (s *Store) load() []Order {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []Order{}
	}
	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return []Order{}
	}
	return orders
}

// save 先写临时文件再原子重命名，同 car.Store。
func (s *Store) save(orders []Order) error {
	data, err := json.MarshalIndent(orders, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode orders: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".orders-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write orders file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace orders file: %w", err)
	}
	return nil
}
