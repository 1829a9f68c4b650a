package ui

import (
	"net/http"

	"ppi/app"
	"ppi/internal"

	"github.com/gin-gonic/gin"
)

// ServerConfig holds the API server settings.
type ServerConfig struct {
	UploadDir      string
	MaxUploadBytes int64
}

// Server serves the dataset JSON API under /api.
type Server struct {
	router  *gin.Engine
	service *app.DatasetService
	config  ServerConfig
	logger  *internal.Logger
}

// NewServer creates the API server around a dataset service.
func NewServer(service *app.DatasetService, config ServerConfig) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	if config.MaxUploadBytes > 0 && config.MaxUploadBytes < router.MaxMultipartMemory {
		router.MaxMultipartMemory = config.MaxUploadBytes
	}

	s := &Server{
		router:  router,
		service: service,
		config:  config,
		logger:  internal.NewComponentLogger("API"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the gin engine for mounting.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/upload", s.limitBody(), s.handleUpload)
	api.GET("/files", s.handleListFiles)
	api.GET("/file/:filename", s.handleGetFile)
	api.GET("/file", s.handleFindFile)
	api.DELETE("/delete/:filename", s.handleDeleteFile)
	api.GET("/uploads", s.handleListUploads)

	api.GET("/lists", s.handleListLists)
	api.GET("/list", s.handleGetList)
	api.GET("/rows", s.handleGetRows)
	api.POST("/rows", s.handleAppendRow)
	api.PUT("/rows/:index", s.handleUpdateRow)
	api.DELETE("/rows/:index", s.handleDeleteRow)

	api.POST("/analyze", s.handleAnalyze)
	api.POST("/dependencies", s.handleDependencies)
	api.GET("/profile", s.handleProfile)
	api.GET("/report", s.handleReport)
	api.GET("/export", s.handleExport)
}
