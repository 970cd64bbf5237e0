package car

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound 目录中不存在该 VIN。
var ErrNotFound = errors.New("car not found")

// Store 基于单个 JSON 文件的车辆目录存储。
// 唯一的更新原语是整文件读出-改写；所有操作都串行化在同一把锁下，
// 保证单进程内“读-改-写”不会交叠（见 order.Store 的同样约定）。
type Store struct {
	mu   sync.RWMutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// List 返回完整目录。文件缺失或无法解析时返回空列表而不是错误，
// 前端把空目录当作正常结果处理，这里沿用该约定。
func (s *Store) List() []Car {
	if s == nil || s.path == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// GetByVIN 按 VIN 线性查找，目录规模很小，无需索引。
func (s *Store) GetByVIN(vin string) (*Car, error) {
	if s == nil || s.path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.load() {
		if c.VIN == vin {
			c := c
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// SetAvailability 修改单辆车的可用标记并整体重写文件。
// VIN 不存在返回 ErrNotFound；写盘失败原样返回底层错误，两者需要区分。
func (s *Store) SetAvailability(vin string, available bool) error {
	if s == nil || s.path == "" {
		return fmt.Errorf("store path is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cars := s.load()
	updated := false
	for i := range cars {
		if cars[i].VIN == vin {
			cars[i].Availability = available
			updated = true
			break
		}
	}
	if !updated {
		return ErrNotFound
	}
	return s.save(cars)
}

// load 读取并解析目录文件；任何失败都归一为“空目录”。
func (s *Store) load() []Car {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []Car{}
	}
	var cars []Car
	if err := json.Unmarshal(data, &cars); err != nil {
		return []Car{}
	}
	return cars
}

// save 整文件替换：先写临时文件再原子重命名，避免写一半留下损坏的存档。
func (s *Store) save(cars []Car) error {
	data, err := json.MarshalIndent(cars, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode cars: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".cars-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cars file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cars file: %w", err)
	}
	return nil
}
