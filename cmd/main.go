package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ucmob_admin/internal/config"
	"ucmob_admin/internal/controller"
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
	"ucmob_admin/internal/router"
	"ucmob_admin/internal/service"
	"ucmob_admin/internal/task"
	"ucmob_admin/pkg/database"
	"ucmob_admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	zl, err := logger.Init(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logger.Sync()

	// 店面库的表结构归 Drupal 管，这里只补自己的两张鉴权表
	db := database.InitDB(cfg.Database.DSN,
		&model.UserToken{},
		&model.UserDevice{},
	)

	// 状态目录启动时构建一次，之后只读
	orderStatuses := make([]model.OrderStatus, 0, len(cfg.OrderStatuses))
	for _, s := range cfg.OrderStatuses {
		orderStatuses = append(orderStatuses, model.OrderStatus{
			ID:         s.ID,
			Name:       s.Name,
			LanguageID: s.LanguageID,
			State:      s.State,
		})
	}
	orderCatalog := model.NewOrderStatusCatalog(orderStatuses)

	productStatuses := make([]model.ProductStatus, 0, len(cfg.ProductStatuses))
	for _, s := range cfg.ProductStatuses {
		productStatuses = append(productStatuses, model.ProductStatus{ID: s.ID, Name: s.Name})
	}
	productCatalog := model.NewProductStatusCatalog(productStatuses)

	// ==================== 依赖装配 ====================

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authSvc := service.NewAuthService(userRepo, tokenRepo, deviceRepo)
	imageSvc := service.NewImageService(productRepo, cfg.Files)
	orderSvc := service.NewOrderService(orderRepo, orderCatalog, cfg.Store, cfg.Files)
	clientSvc := service.NewClientService(orderRepo, userRepo, orderCatalog, cfg.Store)
	productSvc := service.NewProductService(productRepo, imageSvc, productCatalog, cfg.Store, cfg.Files)
	statsSvc := service.NewStatsService(statsRepo, orderRepo, userRepo, orderCatalog, cfg.Store.Currency)
	pushSvc := service.NewPushService(orderRepo, deviceRepo, cfg.FCM, cfg.Store, zl)

	version := cfg.API.Version
	ctrls := &router.Controllers{
		Auth:     controller.NewAuthController(version, authSvc),
		Orders:   controller.NewOrdersController(version, orderSvc, statsSvc),
		Clients:  controller.NewClientsController(version, clientSvc),
		Products: controller.NewProductsController(version, productSvc, imageSvc),
		Push:     controller.NewPushController(version, pushSvc),
	}

	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	router.Setup(engine, ctrls, authSvc, version)

	pushTask := task.NewPushTask(pushSvc, zl)
	if err := pushTask.Start(); err != nil {
		zl.Fatal("推送巡检任务启动失败", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}
	go func() {
		zl.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("HTTP 服务异常退出", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("收到退出信号，开始优雅关停")

	pushTask.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("优雅关停失败", zap.Error(err))
	}
	zl.Info("服务已退出")
}
