package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"moonpages/internal/ai"
	"moonpages/internal/config"
	"moonpages/internal/handler"
	adminHandler "moonpages/internal/handler/admin"
	assistantHandler "moonpages/internal/handler/assistant"
	authHandler "moonpages/internal/handler/auth"
	authorHandler "moonpages/internal/handler/author"
	bookHandler "moonpages/internal/handler/book"
	libraryHandler "moonpages/internal/handler/library"
	userHandler "moonpages/internal/handler/user"
	"moonpages/internal/model/auth"
	"moonpages/internal/pkg/cache"
	"moonpages/internal/pkg/jwt"
	"moonpages/internal/pkg/mailer"
	"moonpages/internal/pkg/mongodb"
	"moonpages/internal/pkg/storagefactory"
	authRepo "moonpages/internal/repository/auth"
	bookRepo "moonpages/internal/repository/book"
	libraryRepo "moonpages/internal/repository/library"
	"moonpages/internal/server/middleware"
	"moonpages/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 初始化 MongoDB（核心依赖）
	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	// 创建索引
	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	// 初始化 Redis（可选，缓存未命中时直接查库）
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	// 设置路由
	if err := srv.setupRoutes(); err != nil {
		return nil, err
	}

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() error {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS(s.cfg.Server.ClientURL))

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := s.mongo.Database()
	users := authRepo.NewUserRepo(db)
	books := bookRepo.NewBookRepo(db)
	userBooks := libraryRepo.NewUserBookRepo(db)

	// JWT 参数，未配置时使用默认值
	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	refreshSecret := s.cfg.Auth.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = jwtSecret
	}
	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}
	refreshTokenExpiry := s.cfg.Auth.RefreshTokenExpiry
	if refreshTokenExpiry == 0 {
		refreshTokenExpiry = 7 * 24 * time.Hour
	}
	resetTokenExpiry := s.cfg.Auth.ResetTokenExpiry
	if resetTokenExpiry == 0 {
		resetTokenExpiry = 15 * time.Minute
	}
	jwtUtil := jwt.NewJWT(jwtSecret, refreshSecret, accessTokenExpiry, refreshTokenExpiry)

	// 对象存储，未配置时默认本地文件系统
	storageCfg := s.cfg.Storage
	if storageCfg.Type == "" {
		storageCfg.Type = "local"
		storageCfg.Local = &config.LocalConfig{
			BasePath: "./uploads",
			BaseURL:  "/uploads",
		}
	}
	store, err := storagefactory.NewStorage(context.Background(), &storageCfg)
	if err != nil {
		return err
	}
	log.Info().Str("type", storageCfg.Type).Msg("initialized storage")

	mail := mailer.NewSMTPMailer(&s.cfg.Mail)

	// 服务层
	authSvc := service.NewAuthService(users, jwtUtil, mail, s.cfg.Server.ClientURL, resetTokenExpiry)
	bookSvc := service.NewBookService(books, store, s.redis)
	librarySvc := service.NewLibraryService(userBooks, books)
	adminSvc := service.NewAdminService(users, books, s.redis)
	authorSvc := service.NewAuthorService(books, userBooks, users)
	userSvc := service.NewUserService(users, store)

	authHdl := authHandler.NewHandler(authSvc)
	bookHdl := bookHandler.NewHandler(bookSvc)
	libraryHdl := libraryHandler.NewHandler(librarySvc)
	adminHdl := adminHandler.NewHandler(adminSvc)
	authorHdl := authorHandler.NewHandler(authorSvc)
	userHdl := userHandler.NewHandler(userSvc)

	// API v1
	v1 := s.engine.Group("/api/v1")

	// 认证接口（公开）
	v1.POST("/auth/register", authHdl.Register)
	v1.POST("/auth/login", authHdl.Login)
	v1.POST("/auth/refresh", authHdl.Refresh)
	v1.POST("/auth/forgot-password", authHdl.ForgotPassword)
	v1.POST("/auth/reset-password/:token", authHdl.ResetPassword)

	// 公开图书接口
	v1.GET("/books/published", bookHdl.ListPublishedBooks)

	// 需要认证的接口
	authed := v1.Group("")
	authed.Use(middleware.Auth(jwtUtil))
	{
		authed.GET("/auth/me", authHdl.Me)
		authed.POST("/auth/admin/register", middleware.RequireRole(auth.RoleAdmin.String()), authHdl.RegisterAdmin)

		// 图书管理（服务层校验作者角色与归属）
		authed.POST("/books", bookHdl.CreateBook)
		authed.GET("/books", bookHdl.ListBooks)
		authed.GET("/books/:bookId", bookHdl.GetFullBook)
		authed.DELETE("/books/:bookId", bookHdl.DeleteBook)
		authed.GET("/books/chapter/:bookId/:chapterNumber", bookHdl.GetChapter)
		authed.POST("/books/:bookId/chapter", bookHdl.AddChapter)
		authed.PATCH("/books/chapter/:bookId/:chapterNumber", bookHdl.UpdateChapter)
		authed.PATCH("/books/:bookId/categories", bookHdl.UpdateCategories)
		authed.PATCH("/books/:bookId/status", bookHdl.UpdateStatus)
		authed.POST("/books/:bookId/cover", bookHdl.UploadCover)

		// 读者书架
		authed.GET("/user-books", libraryHdl.GetLibrary)
		authed.GET("/user-books/:bookId", libraryHdl.GetUserBook)
		authed.PUT("/user-books/:bookId/bookmark", libraryHdl.UpdateBookmark)
		authed.POST("/user-books/:bookId/highlights", libraryHdl.AddHighlight)
		authed.DELETE("/user-books/:bookId/highlights/:highlightId", libraryHdl.DeleteHighlight)
		authed.POST("/user-books/:bookId/comments", libraryHdl.AddComment)
		authed.DELETE("/user-books/:bookId/comments/:commentId", libraryHdl.DeleteComment)

		// 用户资料
		authed.PUT("/user/update", userHdl.UpdateProfile)
		authed.DELETE("/user/delete", userHdl.DeleteAccount)
		authed.POST("/user/upload-profile", userHdl.UploadProfilePic)

		// 作者工作台
		authed.GET("/author/dashboard", authorHdl.GetDashboard)

		// 管理后台
		admin := authed.Group("/admin")
		admin.Use(middleware.RequireRole(auth.RoleAdmin.String()))
		{
			admin.GET("/dashboard", adminHdl.GetDashboard)
			admin.GET("/admins", adminHdl.ListAdmins)
			admin.POST("/admins", adminHdl.AddAdmin)
			admin.PUT("/admins/:id", adminHdl.UpdateAdmin)
			admin.DELETE("/admins/:id", adminHdl.DeleteAdmin)
			admin.GET("/authors", adminHdl.ListAuthors)
			admin.DELETE("/authors/:id", adminHdl.DeleteAuthor)
			admin.GET("/users", adminHdl.ListUsers)
			admin.DELETE("/users/:id", adminHdl.DeleteUser)
			admin.GET("/books", adminHdl.ListBooks)
		}
	}

	// AI 助手（可选，模型初始化失败时不挂载）
	aiClient, err := ai.NewClient(context.Background(), &s.cfg.AI)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize AI client, assistant endpoints disabled")
	} else {
		assistantSvc := service.NewAssistantService(aiClient, books)
		assistantHdl := assistantHandler.NewHandler(assistantSvc)
		v1.POST("/assistant/chat", assistantHdl.Chat)
		authed.POST("/assistant/generate", assistantHdl.Generate)
	}

	// 本地存储时直接由服务器托管上传文件（base_url可以是完整URL或路径）
	if storageCfg.Type == "local" {
		if u, err := url.Parse(storageCfg.Local.BaseURL); err == nil && u.Path != "" {
			s.engine.Static(u.Path, storageCfg.Local.BasePath)
		}
	}

	return nil
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		// 关闭连接
		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
