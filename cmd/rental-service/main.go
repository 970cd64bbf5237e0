package main

import (
	"flag"
	"fmt"

	"github.com/CarRentalHub/CarRentalHub/internal/api"
	"github.com/CarRentalHub/CarRentalHub/internal/car"
	"github.com/CarRentalHub/CarRentalHub/internal/common/config"
	"github.com/CarRentalHub/CarRentalHub/internal/common/logger"
	"github.com/CarRentalHub/CarRentalHub/internal/common/server"
	"github.com/CarRentalHub/CarRentalHub/internal/common/tracing"
	"github.com/CarRentalHub/CarRentalHub/internal/order"
	"github.com/CarRentalHub/CarRentalHub/internal/reservation"
)

var (
	configPath  = flag.String("config", "configs/rental-service.json", "配置文件路径")
	consulKVKey = flag.String("consul-kv-key", "", "可选：从 Consul KV 读取配置（优先于本地文件）")
	consulHost  = flag.String("consul-host", "localhost", "Consul 地址（仅配合 -consul-kv-key 使用）")
	consulPort  = flag.Int("consul-port", 8500, "Consul 端口（仅配合 -consul-kv-key 使用）")
)

func main() {
	flag.Parse()

	// 加载配置（Consul KV 优先，其次本地文件，文件缺失时用默认值）
	var cfg *config.Config
	var err error
	if *consulKVKey != "" {
		cfg, err = config.LoadConfigFromConsulKV(*consulHost, *consulPort, *consulKVKey)
	} else {
		cfg, err = config.LoadConfig(*configPath)
	}
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 初始化链路追踪
	tracer, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

	// 初始化存储与领域服务
	carStore := car.NewStore(cfg.Store.CarsFile)
	orderStore := order.NewStore(cfg.Store.OrdersFile)
	resv := reservation.NewService(carStore, orderStore)

	handlers := api.NewHandlers(carStore, resv, log)
	router := api.NewRouter(handlers)

	// 启动统一的 HTTP 服务模板
	if err := server.RunHTTPServer(cfg, log, router); err != nil {
		log.Fatalf("rental-service exited with error: %v", err)
	}
}
