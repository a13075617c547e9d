package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/MyData-Folk/hotel-rm-app/internal/config"
	"github.com/MyData-Folk/hotel-rm-app/internal/server/handlers"
	"github.com/MyData-Folk/hotel-rm-app/internal/service/hoteldata"
	"github.com/MyData-Folk/hotel-rm-app/internal/store"
)

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	store    *store.Store
	handlers *handlers.Handlers
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	sqliteStore, err := store.New(filepath.Join(dataDir, "hotelrm.db"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	fileStore, err := hoteldata.NewFileStore(filepath.Join(dataDir, "hotels"))
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	s := &Server{
		router:   gin.Default(),
		store:    sqliteStore,
		handlers: handlers.NewHandlers(sqliteStore, fileStore, cfg),
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/status", s.handlers.GetStatus)

		api.POST("/hotels", s.handlers.CreateHotel)
		api.GET("/hotels", s.handlers.ListHotels)
		api.DELETE("/hotels/:id", s.handlers.DeleteHotel)

		api.POST("/hotels/:id/data", s.handlers.UploadData)
		api.GET("/hotels/:id/data", s.handlers.GetData)
		api.POST("/hotels/:id/config", s.handlers.UploadConfig)
		api.GET("/hotels/:id/config", s.handlers.GetConfig)
		api.GET("/hotels/:id/imports", s.handlers.GetImports)
		api.GET("/hotels/:id/summary", s.handlers.GetSummary)
		api.GET("/hotels/:id/plans", s.handlers.GetPlans)

		api.POST("/hotels/:id/simulate", s.handlers.Simulate)
		api.POST("/hotels/:id/simulate/export", s.handlers.ExportSimulation)
		api.POST("/hotels/:id/availability", s.handlers.Availability)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭底层存储
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
