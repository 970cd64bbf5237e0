package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/CarRentalHub/CarRentalHub/internal/car"
	"github.com/CarRentalHub/CarRentalHub/internal/common/logger"
	"github.com/CarRentalHub/CarRentalHub/internal/common/metrics"
	"github.com/CarRentalHub/CarRentalHub/internal/reservation"
)

// Handlers 请求/响应适配层：解析入参、调用领域服务、写 JSON 信封。
type Handlers struct {
	cars *car.Store
	resv *reservation.Service
	log  logger.Logger
}

func NewHandlers(cars *car.Store, resv *reservation.Service, log logger.Logger) *Handlers {
	return &Handlers{cars: cars, resv: resv, log: log}
}

// SearchCars GET /api/cars/search?keyword=&type=&brand=
// 先做关键字搜索再做多选过滤，两者都可省略。
func (h *Handlers) SearchCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := strings.TrimSpace(q.Get("keyword"))
	types := q["type"]
	brands := q["brand"]

	cars := h.cars.List()
	if keyword != "" {
		cars = car.Search(cars, keyword)
	}
	if len(types) > 0 || len(brands) > 0 {
		cars = car.FilterByMultiple(cars, types, brands)
	}
	if cars == nil {
		cars = []car.Car{}
	}
	writeSuccess(w, "", cars)
}

// CarDetails GET /api/cars/details?vin=
func (h *Handlers) CarDetails(w http.ResponseWriter, r *http.Request) {
	vin := strings.TrimSpace(r.URL.Query().Get("vin"))
	if vin == "" {
		writeError(w, http.StatusBadRequest, "missing vin")
		return
	}

	c, err := h.cars.GetByVIN(vin)
	if err != nil {
		if errors.Is(err, car.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Cannot find car with this VIN")
			return
		}
		h.log.Errorf("failed to load car vin=%s: %v", vin, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, "", c)
}

// Suggestions GET /api/cars/suggestions?query=
// 空查询返回空列表，不返回全量目录。
func (h *Handlers) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	writeSuccess(w, "", car.Suggestions(h.cars.List(), query))
}

// FilterOptions GET /api/cars/filters
// 返回目录中出现过的全部类型和品牌，供筛选栏渲染。
func (h *Handlers) FilterOptions(w http.ResponseWriter, r *http.Request) {
	cars := h.cars.List()
	writeSuccess(w, "", map[string][]string{
		"types":  car.AllTypes(cars),
		"brands": car.AllBrands(cars),
	})
}

// rentalDays 兼容数字和字符串两种写法（表单序列化过来常是字符串）。
// 无法解析的值按 0 处理，由预订流程的字段校验兜底。
type rentalDays int

func (d *rentalDays) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*d = rentalDays(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*d = rentalDays(int(f))
		return nil
	}
	*d = 0
	return nil
}

type submitOrderRequest struct {
	VIN              string     `json:"vin"`
	CustomerName     string     `json:"customer_name"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	License          string     `json:"license"`
	StartDate        string     `json:"start_date"`
	RentalPeriodDays rentalDays `json:"rental_period_days"`
}

// SubmitOrder POST /api/orders/submit
func (h *Handlers) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.resv.Submit(r.Context(), reservation.SubmitInput{
		VIN:              req.VIN,
		CustomerName:     req.CustomerName,
		Phone:            req.Phone,
		Email:            req.Email,
		License:          req.License,
		StartDate:        req.StartDate,
		RentalPeriodDays: int(req.RentalPeriodDays),
	})
	if err != nil {
		metrics.OrdersSubmittedTotal.WithLabelValues(outcomeLabel(err)).Inc()
		h.writeDomainError(w, err)
		return
	}

	metrics.OrdersSubmittedTotal.WithLabelValues("success").Inc()
	writeSuccess(w, "Order submitted, waiting for confirmation", result)
}

type confirmOrderRequest struct {
	OrderID string `json:"order_id"`
}

// ConfirmOrder POST /api/orders/confirm
func (h *Handlers) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req confirmOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderID, err := h.resv.Confirm(r.Context(), req.OrderID)
	if err != nil {
		metrics.OrdersConfirmedTotal.WithLabelValues(outcomeLabel(err)).Inc()
		h.writeDomainError(w, err)
		return
	}

	metrics.OrdersConfirmedTotal.WithLabelValues("success").Inc()
	writeSuccess(w, "order confirmed", map[string]string{"order_id": orderID})
}

// writeDomainError 把领域错误映射到 HTTP 状态码：
// 校验失败 400、找不到 404、业务冲突 400、其余按存储失败 500 处理。
func (h *Handlers) writeDomainError(w http.ResponseWriter, err error) {
	var ve *reservation.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, reservation.ErrCarNotFound):
		writeError(w, http.StatusNotFound, "Cannot find car with this VIN")
	case errors.Is(err, reservation.ErrCarUnavailable):
		writeError(w, http.StatusBadRequest, "It is not available now")
	case errors.Is(err, reservation.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "cannot find order")
	case errors.Is(err, reservation.ErrAlreadyConfirmed):
		writeError(w, http.StatusBadRequest, "order already confirmed")
	default:
		if h.log != nil {
			h.log.Errorf("reservation operation failed: %v", err)
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
	}
}

// outcomeLabel 指标里的失败分类。
func outcomeLabel(err error) string {
	var ve *reservation.ValidationError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, reservation.ErrCarNotFound), errors.Is(err, reservation.ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, reservation.ErrCarUnavailable), errors.Is(err, reservation.ErrAlreadyConfirmed):
		return "conflict"
	default:
		return "internal"
	}
}
