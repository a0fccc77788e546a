//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/console`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/library-console/internal/application/book"
	appcategory "github.com/xiebiao/library-console/internal/application/category"
	appcustomer "github.com/xiebiao/library-console/internal/application/customer"
	"github.com/xiebiao/library-console/internal/application/dashboard"
	apploan "github.com/xiebiao/library-console/internal/application/loan"
	"github.com/xiebiao/library-console/internal/domain/loan"
	"github.com/xiebiao/library-console/internal/infrastructure/cache"
	"github.com/xiebiao/library-console/internal/infrastructure/config"
	"github.com/xiebiao/library-console/internal/infrastructure/remote"
	"github.com/xiebiao/library-console/internal/interface/http/handler"
	"github.com/xiebiao/library-console/internal/interface/http/middleware"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、远端HTTP客户端、缓存存储与协调器
var infrastructureSet = wire.NewSet(
	config.Load,          // 加载配置文件
	provideBackendClient, // 馆藏后端HTTP客户端
	provideCacheStore,    // 缓存存储（memory或redis）
	provideCoordinator,   // 缓存协调器
)

// repositorySet 仓储层依赖
// 包含：四个远端资源的Repository实现
var repositorySet = wire.NewSet(
	remote.NewBookAPI,     // 图书仓储
	remote.NewCustomerAPI, // 读者仓储
	remote.NewCategoryAPI, // 分类仓储
	remote.NewLoanAPI,     // 借阅仓储
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	loan.NewService, // 借阅领域服务
)

// applicationSet 应用层依赖
// 包含：所有Use Case的构造函数
var applicationSet = wire.NewSet(
	appbook.NewSearchBooksUseCase,         // 图书检索用例
	appbook.NewSaveBookUseCase,            // 图书入档/修改用例
	appbook.NewDeleteBookUseCase,          // 图书删除用例
	appcustomer.NewListCustomersUseCase,   // 读者分页列表用例
	appcustomer.NewSearchCustomersUseCase, // 读者检索用例
	appcustomer.NewSaveCustomerUseCase,    // 读者建档/修改用例
	appcustomer.NewDeleteCustomerUseCase,  // 读者删除用例
	appcustomer.NewSendEmailUseCase,       // 读者邮件用例
	appcategory.NewListCategoriesUseCase,  // 分类列表用例
	apploan.NewListLoansUseCase,           // 借阅列表用例
	apploan.NewCreateLoanUseCase,          // 借阅登记用例
	apploan.NewCloseLoanUseCase,           // 归还登记用例
	apploan.NewEligibleBooksUseCase,       // 可借图书用例
	dashboard.NewOverviewUseCase,          // 首页概览用例
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,      // 图书处理器
	handler.NewCustomerHandler,  // 读者处理器
	handler.NewCategoryHandler,  // 分类处理器
	handler.NewLoanHandler,      // 借阅处理器
	handler.NewDashboardHandler, // 概览处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 教学说明：
// 有些依赖的构造函数参数不是直接的类型，需要从Config中提取，
// 这时需要编写自定义Provider函数

// provideBackendClient 从配置创建馆藏后端客户端
// 教学要点：remote.NewClient只需要Backend部分的配置，
// Wire无法自动知道如何从Config提取字段，所以手动编写Provider
func provideBackendClient(cfg *config.Config) *remote.Client {
	return remote.NewClient(cfg.Backend)
}

// provideCacheStore 按配置选择缓存存储
func provideCacheStore(cfg *config.Config) (cache.Store, error) {
	return newCacheStore(cfg)
}

// provideCoordinator 从配置创建缓存协调器
func provideCoordinator(store cache.Store, cfg *config.Config) *cache.Coordinator {
	return cache.NewCoordinator(store, cfg.Cache.FreshTTL)
}

// provideGinEngine 创建并配置Gin引擎
// 教学要点：路由注册复用main.go里的registerRoutes，
// 保证手动注入和Wire注入跑的是同一套路由
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	customerHandler *handler.CustomerHandler,
	categoryHandler *handler.CategoryHandler,
	loanHandler *handler.LoanHandler,
	dashboardHandler *handler.DashboardHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	registerRoutes(r, cfg, bookHandler, customerHandler, categoryHandler, loanHandler, dashboardHandler)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
//
// 依赖链示例：
// *gin.Engine 需要 → *handler.LoanHandler
// *handler.LoanHandler 需要 → *apploan.CreateLoanUseCase
// *apploan.CreateLoanUseCase 需要 → loan.Service
// loan.Service 需要 → loan.Repository
// loan.Repository 需要 → *remote.Client
// *remote.Client 需要 → *config.Config
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 仓储层
		repositorySet,

		// 领域层
		domainSet,

		// 应用层
		applicationSet,

		// 接口层
		handlerSet,

		// Gin引擎
		provideGinEngine,
	)

	// 返回值是占位符，实际运行时由wire_gen.go替代
	return nil, nil
}
