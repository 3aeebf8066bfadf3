package server

import (
	"saveenergy-server/confs"
	"saveenergy-server/db"
	httpHandler "saveenergy-server/handlers/http"
	"saveenergy-server/repositories"
	"saveenergy-server/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
}

func NewServer(database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
	}
}

func (s *Server) Start() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	calcRepo := repositories.NewCalculationPgRepository(s.db)

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo, confs.AppSecret(), confs.TokenTTL())
	calcUseCase := usecases.NewCalculationUseCase(calcRepo)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	calcHandler := httpHandler.NewCalcHandler(calcUseCase)
	exportHandler := httpHandler.NewExportHandler(calcUseCase)

	// Auth routes
	auth := s.app.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Calculation routes, all behind bearer auth
	calc := s.app.Group("/calc")
	calc.Use(httpHandler.AuthRequired(authUseCase))
	{
		calc.POST("", calcHandler.Create)
		calc.GET("", calcHandler.List)
		calc.GET("/export/csv", exportHandler.ExportCSV)
		calc.GET("/:id/export/pdf", exportHandler.ExportPDF)
	}

	if err := s.app.Run(confs.ListenAddr()); err != nil {
		panic(err)
	}
}
