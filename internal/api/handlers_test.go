package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarRentalHub/CarRentalHub/internal/car"
	"github.com/CarRentalHub/CarRentalHub/internal/common/logger"
	"github.com/CarRentalHub/CarRentalHub/internal/order"
	"github.com/CarRentalHub/CarRentalHub/internal/reservation"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cars := []car.Car{
		{VIN: "1HGCM82633A004352", Type: "Sedan", Brand: "Honda", Model: "Accord", Description: "mid-size sedan", PricePerDay: 50, Availability: true},
		{VIN: "JTMZD33V185103456", Type: "SUV", Brand: "Toyota", Model: "RAV4", Description: "compact suv", PricePerDay: 65, Availability: true},
		{VIN: "WBA8E9G59GNT45123", Type: "Sedan", Brand: "BMW", Model: "330i", Description: "luxury sedan", PricePerDay: 110, Availability: false},
	}
	path := filepath.Join(t.TempDir(), "cars.json")
	data, err := json.Marshal(cars)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	carStore := car.NewStore(path)
	orderStore := order.NewStore(filepath.Join(t.TempDir(), "orders.json"))
	resv := reservation.NewService(carStore, orderStore)

	log, err := logger.NewLogger("error", "text", "stdout", "")
	require.NoError(t, err)

	return NewRouter(NewHandlers(carStore, resv, log))
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestSearchCarsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/cars/search", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
	var all []car.Car
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 3)

	rec, env = doRequest(t, router, http.MethodGet, "/api/cars/search?keyword=luxury", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hits []car.Car
	require.NoError(t, json.Unmarshal(env.Data, &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "330i", hits[0].Model)

	// 多选过滤：type 和 brand 取交集
	rec, env = doRequest(t, router, http.MethodGet, "/api/cars/search?type=Sedan&brand=Honda&brand=BMW", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered []car.Car
	require.NoError(t, json.Unmarshal(env.Data, &filtered))
	assert.Len(t, filtered, 2)
}

func TestCarDetailsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/cars/details", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)

	rec, env = doRequest(t, router, http.MethodGet, "/api/cars/details?vin=NOPE", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", env.Status)

	rec, env = doRequest(t, router, http.MethodGet, "/api/cars/details?vin=1HGCM82633A004352", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var c car.Car
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, "Accord", c.Model)
}

func TestSuggestionsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/cars/suggestions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var empty []string
	require.NoError(t, json.Unmarshal(env.Data, &empty))
	assert.Empty(t, empty)

	rec, env = doRequest(t, router, http.MethodGet, "/api/cars/suggestions?query=se", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []string
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Contains(t, got, "Sedan (Type)")
}

func TestFilterOptionsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/cars/filters", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var opts map[string][]string
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.ElementsMatch(t, []string{"Sedan", "SUV"}, opts["types"])
	assert.ElementsMatch(t, []string{"Honda", "Toyota", "BMW"}, opts["brands"])
}

func validOrderBody() string {
	return `{
		"vin": "1HGCM82633A004352",
		"customer_name": "Alice Zhang",
		"phone": "13800000000",
		"email": "alice@example.com",
		"license": "D1234567",
		"start_date": "2026-09-01",
		"rental_period_days": 3
	}`
}

func TestSubmitOrderEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/api/orders/submit", validOrderBody())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", env.Status)
	var result reservation.SubmitResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Regexp(t, `^ORD-\d{8}$`, result.OrderID)
	assert.Equal(t, float64(150), result.TotalPrice)

	// 同一辆车第二次提交：已被订走
	rec, env = doRequest(t, router, http.MethodPost, "/api/orders/submit", validOrderBody())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)
}

func TestSubmitOrderValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/api/orders/submit", `{"vin":"1HGCM82633A004352"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "customer_name")
	assert.Contains(t, env.Message, "rental_period_days")

	rec, env = doRequest(t, router, http.MethodPost, "/api/orders/submit", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := strings.Replace(validOrderBody(), `"vin": "1HGCM82633A004352"`, `"vin": "UNKNOWN0000000001"`, 1)
	rec, env = doRequest(t, router, http.MethodPost, "/api/orders/submit", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitOrderCoercesStringPeriod(t *testing.T) {
	router := newTestRouter(t)

	// 表单序列化出来的字符串天数也要能下单
	body := strings.Replace(validOrderBody(), `"rental_period_days": 3`, `"rental_period_days": "4"`, 1)
	rec, env := doRequest(t, router, http.MethodPost, "/api/orders/submit", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var result reservation.SubmitResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, float64(200), result.TotalPrice)
}

func TestConfirmOrderEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/api/orders/submit", validOrderBody())
	require.Equal(t, http.StatusOK, rec.Code)
	var result reservation.SubmitResult
	require.NoError(t, json.Unmarshal(env.Data, &result))

	rec, env = doRequest(t, router, http.MethodPost, "/api/orders/confirm", `{"order_id":"`+result.OrderID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)

	// 重复确认是冲突
	rec, env = doRequest(t, router, http.MethodPost, "/api/orders/confirm", `{"order_id":"`+result.OrderID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "already confirmed")

	rec, _ = doRequest(t, router, http.MethodPost, "/api/orders/confirm", `{"order_id":"ORD-20260099"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/api/orders/confirm", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderEndpointsRejectGet(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/orders/submit", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Please use POST method", env.Message)
}
