package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter 组装业务路由。恢复/日志/追踪/CORS/限流这些横切中间件
// 由 server.RunHTTPServer 统一包在外层，这里只管路由本身。
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/cars/search", h.SearchCars)
		r.Get("/cars/details", h.CarDetails)
		r.Get("/cars/suggestions", h.Suggestions)
		r.Get("/cars/filters", h.FilterOptions)
		r.Post("/orders/submit", h.SubmitOrder)
		r.Post("/orders/confirm", h.ConfirmOrder)
	})

	// 订单接口只收 POST，提示语和旧接口保持一致。
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api/orders/") {
			writeError(w, http.StatusMethodNotAllowed, "Please use POST method")
			return
		}
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
