package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/library-console/internal/application/book"
	appcategory "github.com/xiebiao/library-console/internal/application/category"
	appcustomer "github.com/xiebiao/library-console/internal/application/customer"
	"github.com/xiebiao/library-console/internal/application/dashboard"
	apploan "github.com/xiebiao/library-console/internal/application/loan"
	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
	"github.com/xiebiao/library-console/internal/infrastructure/config"
	redisinfra "github.com/xiebiao/library-console/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library-console/internal/infrastructure/remote"
	"github.com/xiebiao/library-console/internal/interface/http/handler"
	"github.com/xiebiao/library-console/internal/interface/http/middleware"
	"github.com/xiebiao/library-console/pkg/metrics"
	"github.com/xiebiao/library-console/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go中有等价的Wire注入器，可用wire gen生成）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 馆藏后端: %s\n", cfg.Backend.BaseURL)
	fmt.Printf("  - 缓存存储: %s (新鲜期 %s)\n", cfg.Cache.Store, cfg.Cache.FreshTTL)

	// 2. 初始化指标
	if cfg.Metrics.Enabled {
		metrics.InitMetrics(cfg.Metrics.Namespace)
	}

	// 3. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// 远端Client ← Repository ← Service/UseCase ← Handler

	// 基础设施层
	backendClient := remote.NewClient(cfg.Backend)
	store, err := newCacheStore(cfg)
	if err != nil {
		log.Fatalf("初始化缓存存储失败: %v", err)
	}
	coordinator := cache.NewCoordinator(store, cfg.Cache.FreshTTL)

	bookRepo := remote.NewBookAPI(backendClient)
	customerRepo := remote.NewCustomerAPI(backendClient)
	categoryRepo := remote.NewCategoryAPI(backendClient)
	loanRepo := remote.NewLoanAPI(backendClient)

	// 领域层
	loanService := loan.NewService(loanRepo)

	// 应用层
	searchBooksUseCase := appbook.NewSearchBooksUseCase(bookRepo, coordinator)
	saveBookUseCase := appbook.NewSaveBookUseCase(bookRepo, coordinator)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookRepo, coordinator)
	listCustomersUseCase := appcustomer.NewListCustomersUseCase(customerRepo, coordinator)
	searchCustomersUseCase := appcustomer.NewSearchCustomersUseCase(customerRepo, coordinator)
	saveCustomerUseCase := appcustomer.NewSaveCustomerUseCase(customerRepo, coordinator)
	deleteCustomerUseCase := appcustomer.NewDeleteCustomerUseCase(customerRepo, coordinator)
	sendEmailUseCase := appcustomer.NewSendEmailUseCase(customerRepo)
	listCategoriesUseCase := appcategory.NewListCategoriesUseCase(categoryRepo, coordinator)
	listLoansUseCase := apploan.NewListLoansUseCase(loanRepo, coordinator)
	createLoanUseCase := apploan.NewCreateLoanUseCase(loanService, bookRepo, coordinator)
	closeLoanUseCase := apploan.NewCloseLoanUseCase(loanService, coordinator)
	eligibleBooksUseCase := apploan.NewEligibleBooksUseCase(bookRepo, loanRepo)
	overviewUseCase := dashboard.NewOverviewUseCase(bookRepo, customerRepo, categoryRepo, loanRepo)

	// 接口层
	bookHandler := handler.NewBookHandler(searchBooksUseCase, saveBookUseCase, deleteBookUseCase, listCategoriesUseCase)
	customerHandler := handler.NewCustomerHandler(listCustomersUseCase, searchCustomersUseCase, saveCustomerUseCase, deleteCustomerUseCase, sendEmailUseCase)
	categoryHandler := handler.NewCategoryHandler(listCategoriesUseCase)
	loanHandler := handler.NewLoanHandler(listLoansUseCase, createLoanUseCase, closeLoanUseCase, eligibleBooksUseCase, listCategoriesUseCase)
	dashboardHandler := handler.NewDashboardHandler(overviewUseCase)

	// 4. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// 5. 注册路由
	registerRoutes(r, cfg, bookHandler, customerHandler, categoryHandler, loanHandler, dashboardHandler)

	// 6. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   图书检索: GET http://localhost%s/api/v1/books?title=\n", addr)
	fmt.Printf("   读者列表: GET http://localhost%s/api/v1/customers\n", addr)
	fmt.Printf("   借阅登记: POST http://localhost%s/api/v1/loans\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// newCacheStore 按配置选择缓存存储
// memory适合单实例部署，redis让多实例共享同一份列表缓存
func newCacheStore(cfg *config.Config) (cache.Store, error) {
	if cfg.Cache.Store == "redis" {
		client, err := redisinfra.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisStore(client, cfg.Cache.KeyPrefix, 0), nil
	}
	return cache.NewMemoryStore(), nil
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	customerHandler *handler.CustomerHandler,
	categoryHandler *handler.CategoryHandler,
	loanHandler *handler.LoanHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档路由
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus指标
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)                 // ✅ 列表/按书名检索
			books.GET("/by-isbn", bookHandler.SearchByISBN) // ✅ 按ISBN精确查找
			books.POST("", bookHandler.Add)                 // ✅ 图书入档
			books.PUT("", bookHandler.Update)               // ✅ 图书修改
			books.DELETE("/:id", bookHandler.Delete)        // ✅ 图书删除
		}

		// 读者模块
		customers := v1.Group("/customers")
		{
			customers.GET("", customerHandler.List)             // ✅ 分页列表
			customers.GET("/search", customerHandler.Search)    // ✅ 按邮箱/姓氏检索
			customers.POST("", customerHandler.Add)             // ✅ 读者建档
			customers.PUT("", customerHandler.Update)           // ✅ 读者修改
			customers.DELETE("/:id", customerHandler.Delete)    // ✅ 读者删除
			customers.POST("/email", customerHandler.SendEmail) // ✅ 给读者发邮件
		}

		// 分类模块
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List) // ✅ 全部分类
		}

		// 借阅模块
		loans := v1.Group("/loans")
		{
			loans.GET("", loanHandler.List)                         // ✅ 借阅列表
			loans.POST("", loanHandler.Create)                      // ✅ 借阅登记
			loans.POST("/close", loanHandler.Close)                 // ✅ 归还登记
			loans.GET("/eligible-books", loanHandler.EligibleBooks) // ✅ 某读者可借图书
		}

		// 概览模块
		dashboards := v1.Group("/dashboard")
		{
			dashboards.GET("/overview", dashboardHandler.Overview) // ✅ 首页统计
		}
	}
}
