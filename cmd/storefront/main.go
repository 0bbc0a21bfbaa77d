package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anash06/E-commerce/pkg/app"
	"github.com/anash06/E-commerce/pkg/logger"
	"github.com/gin-gonic/gin"

	"github.com/anash06/E-commerce/api/middleware"
	v1 "github.com/anash06/E-commerce/api/v1"
	"github.com/anash06/E-commerce/internal/dao"
	"github.com/anash06/E-commerce/internal/dao/mysql"
	redisinit "github.com/anash06/E-commerce/internal/dao/redis"
	"github.com/anash06/E-commerce/internal/mq"
	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/utils"
)

func main() {
	// 加载配置
	cfg := app.BootstrapApp()

	// 设置Gin模式
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	db, err := mysql.InitDB(&cfg.Database.Mysql)
	if err != nil {
		logger.Fatal("连接Mysql数据库失败", "err", err)
	}

	// 启动迁移与种子数据：建表、管理员账号、演示商品
	if err := dao.Migrate(db); err != nil {
		logger.Fatal("数据库迁移失败", "err", err)
	}
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := dao.Seed(seedCtx, db); err != nil {
		seedCancel()
		logger.Fatal("种子数据写入失败", "err", err)
	}
	seedCancel()

	rdb, err := redisinit.InitRedis(&cfg.Database.Redis)
	if err != nil {
		logger.Fatal("连接Redis失败", "err", err)
	}

	// MQ不可用时降级运行：导出镜像事件停发，主流程不受影响
	var pub service.Publisher
	pool, err := mq.Init(&cfg.MQ)
	if err != nil {
		logger.Warn("连接RabbitMQ失败，导出同步事件停用", "err", err)
	} else {
		defer pool.Close()
		if err := pool.EnsureBaseTopology(); err != nil {
			logger.Warn("声明交换机失败", "err", err)
		}
		pub = pool
	}

	// dao层
	userDao := dao.NewUserDao(db)
	productDao := dao.NewProductDao(db)
	orderDao := dao.NewOrderDao(db)
	paymentDao := dao.NewPaymentDao(db)
	reportDao := dao.NewReportDao(db)
	cartDao := dao.NewCartDao(rdb)

	// service层
	authService := service.NewAuthService(userDao, cfg.JWT.Secret, cfg.JWT.ExpireHours, pub)
	userService := service.NewUserService(userDao, pub)
	productService := service.NewProductService(productDao, pub)
	cartService := service.NewCartService(cartDao, productDao)
	orderService := service.NewOrderService(orderDao, cartDao, rdb, pub)
	paymentService := service.NewPaymentService(paymentDao, orderDao, pub)
	reportService := service.NewReportService(reportDao)

	// JWT 工具
	jwtUtil := utils.NewJWTUtil(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// 创建处理器实例
	authHandler := v1.NewAuthHandler(authService)
	userHandler := v1.NewUserHandler(userService)
	productHandler := v1.NewProductHandler(productService)
	cartHandler := v1.NewCartHandler(cartService)
	orderHandler := v1.NewOrderHandler(orderService)
	paymentHandler := v1.NewPaymentHandler(paymentService, orderService)
	reportHandler := v1.NewReportHandler(reportService, pub)

	// 初始化Gin引擎
	r := gin.Default()

	// 全局限流中间件
	r.Use(middleware.GlobalRateLimit(cfg))

	// 健康检查接口
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "storefront is running",
		})
	})

	// 定义API路由组
	api := r.Group("/api/v1")
	{
		// 注册认证路由（无需认证）
		authHandler.RegisterRoutes(api)
		// 商品目录公开可浏览
		productHandler.RegisterRoutes(api)

		// 受保护的路由组（需要JWT认证）
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(jwtUtil))
		{
			userHandler.RegisterRoutes(protected)
			cartHandler.RegisterRoutes(protected)
		}

		// 下单路由（需要JWT认证 + 更严格的限流）
		orders := api.Group("/orders")
		orders.Use(middleware.JWTAuthMiddleware(jwtUtil))
		orders.Use(middleware.OrderRateLimit(cfg))
		{
			orderHandler.RegisterRoutes(orders)
			paymentHandler.RegisterRoutes(orders)
		}

		// 管理端路由（需要JWT认证 + admin角色）
		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuthMiddleware(jwtUtil))
		admin.Use(middleware.AdminRequired())
		{
			userHandler.RegisterAdminRoutes(admin)
			productHandler.RegisterAdminRoutes(admin)
			orderHandler.RegisterAdminRoutes(admin)
			paymentHandler.RegisterAdminRoutes(admin)
			reportHandler.RegisterAdminRoutes(admin)
		}
	}

	// 启动服务器
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("storefront starting on " + serverAddr)
	if err := r.Run(serverAddr); err != nil {
		logger.Error("Failed to start storefront: ", "err", err)
	}
}
