package main

import (
	"database/sql"
	"net/http"

	"campusmart-be/internal/cart"
	"campusmart-be/internal/config"
	"campusmart-be/internal/db"
	"campusmart-be/internal/httpapi"
	"campusmart-be/internal/logger"
	"campusmart-be/internal/order"
	"campusmart-be/internal/product"
	"campusmart-be/internal/user"

	"go.uber.org/zap"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, cfg.EmailDomain)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartRepo, order.NewLogSink(), cfg.OTPDevBypass)

	h := httpapi.NewHandler(userSvc, productSvc, cartSvc, orderSvc)
	return httpapi.NewRouter(h)
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	logger.L().Info("server listening",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(":"+cfg.AppPort, router)
}

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}
