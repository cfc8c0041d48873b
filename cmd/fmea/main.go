package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/numancr7/fmea-sub001/internal/config"
	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/handler"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting fmea service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Team{},
		&entity.User{},
		&entity.EquipmentClass{},
		&entity.Manufacturer{},
		&entity.WorkCenter{},
		&entity.FailureMode{},
		&entity.FailureCause{},
		&entity.FailureMechanism{},
		&entity.Equipment{},
		&entity.Component{},
		&entity.RiskMatrixCell{},
		&entity.FMEARecord{},
		&entity.MaintenanceTask{},
		&entity.SparePart{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 装配各层
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services, cfg)

	// 种子数据：默认5×5风险矩阵 + 引导管理员账号
	ctx := context.Background()
	if err := services.RiskMatrix.SeedDefault(ctx); err != nil {
		zapLogger.Warn("Seed risk matrix warning", zap.Error(err))
	}
	if err := seedAdminUser(ctx, repos.User); err != nil {
		zapLogger.Warn("Seed admin user warning", zap.Error(err))
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// 唯一键冲突需要映射为 gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// seedAdminUser 空库时创建引导管理员，凭据来自环境变量
func seedAdminUser(ctx context.Context, userRepo *repository.UserRepository) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return userRepo.Create(ctx, &entity.User{
		ID:           uuid.New().String()[:32],
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         entity.RoleAdmin,
		Status:       "active",
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 公开路由（白名单）：登录、刷新、自助注册、只读参考数据
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}
		v1.POST("/users", h.User.Create)
		v1.GET("/risk-matrix-cells", h.RiskMatrix.List)

		// 受保护路由：白名单之外一律需要认证
		authed := v1.Group("")
		authed.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authed.GET("/auth/me", h.Auth.Me)
			authed.POST("/auth/logout", h.Auth.Logout)

			// 用户：列表/删除仅管理员；详情/更新的本人判定在handler内
			authed.GET("/users",
				middleware.Authorize(authz.ResourceUsers, authz.ActionRead), h.User.List)
			authed.GET("/users/:id", h.User.Get)
			authed.PATCH("/users/:id", h.User.Update)
			authed.DELETE("/users/:id",
				middleware.Authorize(authz.ResourceUsers, authz.ActionDelete), h.User.Delete)

			// 团队
			authed.GET("/teams", h.Team.List)
			authed.GET("/teams/:id", h.Team.Get)
			authed.POST("/teams",
				middleware.Authorize(authz.ResourceTeams, authz.ActionCreate), h.Team.Create)
			authed.PATCH("/teams/:id",
				middleware.Authorize(authz.ResourceTeams, authz.ActionUpdate), h.Team.Update)
			authed.DELETE("/teams/:id",
				middleware.Authorize(authz.ResourceTeams, authz.ActionDelete), h.Team.Delete)

			// 设备与部件
			authed.GET("/equipment", h.Equipment.List)
			authed.GET("/equipment/:id", h.Equipment.Get)
			authed.GET("/equipment/:id/summary", h.Equipment.Summary)
			authed.POST("/equipment",
				middleware.Authorize(authz.ResourceEquipment, authz.ActionCreate), h.Equipment.Create)
			authed.PATCH("/equipment/:id",
				middleware.Authorize(authz.ResourceEquipment, authz.ActionUpdate), h.Equipment.Update)
			authed.DELETE("/equipment/:id",
				middleware.Authorize(authz.ResourceEquipment, authz.ActionDelete), h.Equipment.Delete)

			authed.GET("/equipment/:id/components", h.Equipment.ListComponents)
			authed.POST("/equipment/:id/components",
				middleware.Authorize(authz.ResourceComponents, authz.ActionCreate), h.Equipment.CreateComponent)
			authed.PATCH("/components/:id",
				middleware.Authorize(authz.ResourceComponents, authz.ActionUpdate), h.Equipment.UpdateComponent)
			authed.DELETE("/components/:id",
				middleware.Authorize(authz.ResourceComponents, authz.ActionDelete), h.Equipment.DeleteComponent)

			// 参考数据（列表读在下方按公开注册）
			registerReferenceRoutes(v1, authed, h)

			// FMEA记录：创建对已认证用户开放，更新/删除的本人判定在handler内
			authed.GET("/fmea", h.FMEA.List)
			authed.GET("/fmea/export", h.FMEA.Export)
			authed.GET("/fmea/:id", h.FMEA.Get)
			authed.POST("/fmea", h.FMEA.Create)
			authed.PATCH("/fmea/:id", h.FMEA.Update)
			authed.DELETE("/fmea/:id", h.FMEA.Delete)
			authed.POST("/fmea/:id/recompute",
				middleware.Authorize(authz.ResourceFMEA, authz.ActionUpdate), h.FMEA.Recompute)
			authed.POST("/fmea/recompute",
				middleware.Authorize(authz.ResourceFMEA, authz.ActionUpdate), h.FMEA.RecomputeAll)

			// 维护任务
			authed.GET("/tasks", h.Task.List)
			authed.GET("/tasks/:id", h.Task.Get)
			authed.POST("/tasks",
				middleware.Authorize(authz.ResourceTasks, authz.ActionCreate), h.Task.Create)
			authed.PATCH("/tasks/:id",
				middleware.Authorize(authz.ResourceTasks, authz.ActionUpdate), h.Task.Update)
			authed.DELETE("/tasks/:id",
				middleware.Authorize(authz.ResourceTasks, authz.ActionDelete), h.Task.Delete)

			// 备件
			authed.GET("/spare-parts", h.SparePart.List)
			authed.GET("/spare-parts/:id", h.SparePart.Get)
			authed.POST("/spare-parts",
				middleware.Authorize(authz.ResourceSpareParts, authz.ActionCreate), h.SparePart.Create)
			authed.PATCH("/spare-parts/:id",
				middleware.Authorize(authz.ResourceSpareParts, authz.ActionUpdate), h.SparePart.Update)
			authed.DELETE("/spare-parts/:id",
				middleware.Authorize(authz.ResourceSpareParts, authz.ActionDelete), h.SparePart.Delete)

			// 风险矩阵（列表读为公开路由）
			authed.GET("/risk-matrix-cells/validate", h.RiskMatrix.Validate)
			authed.POST("/risk-matrix-cells",
				middleware.Authorize(authz.ResourceRiskMatrixCells, authz.ActionCreate), h.RiskMatrix.Create)
			authed.PATCH("/risk-matrix-cells/:id",
				middleware.Authorize(authz.ResourceRiskMatrixCells, authz.ActionUpdate), h.RiskMatrix.Update)
			authed.DELETE("/risk-matrix-cells/:id",
				middleware.Authorize(authz.ResourceRiskMatrixCells, authz.ActionDelete), h.RiskMatrix.Delete)

			// 看板
			authed.GET("/dashboard/summary", h.Dashboard.Summary)
		}
	}
}

// registerReferenceRoutes 参考数据路由：列表读公开，写操作仅管理员
func registerReferenceRoutes(public, authed *gin.RouterGroup, h *handler.Handlers) {
	type refRoutes struct {
		path     string
		resource string
		list     gin.HandlerFunc
		create   gin.HandlerFunc
		update   gin.HandlerFunc
		remove   gin.HandlerFunc
	}

	routes := []refRoutes{
		{"/equipment-classes", authz.ResourceEquipmentClasses,
			h.Reference.ListEquipmentClasses, h.Reference.CreateEquipmentClass,
			h.Reference.UpdateEquipmentClass, h.Reference.DeleteEquipmentClass},
		{"/manufacturers", authz.ResourceManufacturers,
			h.Reference.ListManufacturers, h.Reference.CreateManufacturer,
			h.Reference.UpdateManufacturer, h.Reference.DeleteManufacturer},
		{"/work-centers", authz.ResourceWorkCenters,
			h.Reference.ListWorkCenters, h.Reference.CreateWorkCenter,
			h.Reference.UpdateWorkCenter, h.Reference.DeleteWorkCenter},
		{"/failure-modes", authz.ResourceFailureModes,
			h.Reference.ListFailureModes, h.Reference.CreateFailureMode,
			h.Reference.UpdateFailureMode, h.Reference.DeleteFailureMode},
		{"/failure-causes", authz.ResourceFailureCauses,
			h.Reference.ListFailureCauses, h.Reference.CreateFailureCause,
			h.Reference.UpdateFailureCause, h.Reference.DeleteFailureCause},
		{"/failure-mechanisms", authz.ResourceFailureMechs,
			h.Reference.ListFailureMechanisms, h.Reference.CreateFailureMechanism,
			h.Reference.UpdateFailureMechanism, h.Reference.DeleteFailureMechanism},
	}

	for _, rt := range routes {
		public.GET(rt.path, rt.list)
		authed.POST(rt.path, middleware.Authorize(rt.resource, authz.ActionCreate), rt.create)
		authed.PATCH(rt.path+"/:id", middleware.Authorize(rt.resource, authz.ActionUpdate), rt.update)
		authed.DELETE(rt.path+"/:id", middleware.Authorize(rt.resource, authz.ActionDelete), rt.remove)
	}
}
