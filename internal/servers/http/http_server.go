package http

import (
	"context"
	"errors"
	"fmt"
	"grammable/configs"
	_ "grammable/docs"
	"grammable/internal/handlers"
	"grammable/internal/metrics"
	"grammable/internal/web"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

type HttpServer struct {
	ctx               context.Context
	config            *configs.Config
	router            *gin.Engine
	rateLimiter       *handlers.RateLimiter
	authHandler       *handlers.AuthHandler
	gramHandler       *handlers.GramHandler
	commentHandler    *handlers.CommentHandler
	htmlHandler       *handlers.HtmlHandler
	socketFeedHandler *handlers.SocketFeedHandler
}

func NewHttpServer(
	ctx context.Context,
	config *configs.Config,
	authHandler *handlers.AuthHandler,
	gramHandler *handlers.GramHandler,
	commentHandler *handlers.CommentHandler,
	htmlHandler *handlers.HtmlHandler,
	socketFeedHandler *handlers.SocketFeedHandler,
) *HttpServer {
	return &HttpServer{
		ctx:               ctx,
		config:            config,
		authHandler:       authHandler,
		gramHandler:       gramHandler,
		commentHandler:    commentHandler,
		htmlHandler:       htmlHandler,
		socketFeedHandler: socketFeedHandler,
		rateLimiter: handlers.NewRateLimiter(
			config.Viper.GetFloat64("rate_limit.rps"),
			config.Viper.GetInt("rate_limit.burst"),
		),
	}
}

func (hs *HttpServer) Run() {
	server := hs.startServer()

	// Wait for interrupt signal to gracefully shut down the server
	hs.waitForShutdown(server)
}

// Handler builds the router on first use and wraps it with the body limit and form method override.
func (hs *HttpServer) Handler() http.Handler {
	if hs.router == nil {
		hs.initializeGin()
		hs.setupRoutes()
	}
	return handlers.LimitRequestBody(
		handlers.MethodOverride(hs.router),
		hs.config.Viper.GetInt64("server.max_body_bytes"),
	)
}

func (hs *HttpServer) initializeGin() {
	gin.SetMode(hs.config.Viper.GetString("server.mode"))

	hs.router = gin.New()
	hs.router.HTMLRender = &web.HTMLRenderer{}
	hs.router.Use(
		handlers.RequestLoggerMiddleware(),
		gin.Recovery(),
		metrics.GinMiddleware(),
	)

	if origins := hs.config.Viper.GetStringSlice("cors.allow_origins"); len(origins) > 0 {
		hs.router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	hs.router.Use(
		hs.rateLimiter.Middleware(),
		hs.authHandler.CurrentUserMiddleware(),
	)
}

func (hs *HttpServer) setupRoutes() {
	hs.router.NoRoute(hs.htmlHandler.NotFound)
	hs.router.GET("/health", hs.htmlHandler.Health)
	hs.router.GET("/metrics", gin.WrapH(metrics.Handler()))
	hs.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if !hs.config.Viper.GetBool("minio.enabled") {
		hs.router.Static("/uploads", hs.config.Viper.GetString("server.uploads_dir"))
	}

	// accounts
	hs.router.GET("/users/sign_up", hs.authHandler.SignUp)
	hs.router.POST("/users", hs.authHandler.Register)
	hs.router.GET("/users/sign_in", hs.authHandler.SignIn)
	hs.router.POST("/users/sign_in", hs.authHandler.Login)
	hs.router.DELETE("/users/sign_out", hs.authHandler.Logout)

	// public
	hs.router.GET("/", hs.gramHandler.Index)
	hs.router.GET("/grams", hs.gramHandler.Index)
	hs.router.GET("/grams/:id", hs.gramHandler.Show)
	hs.router.GET("/ws/feed", hs.socketFeedHandler.HandleSocketFeedRoute)

	protected := hs.router.Group("/")
	protected.Use(hs.authHandler.MustAuthenticateMiddleware())
	{
		protected.GET("/grams/new", hs.gramHandler.New)
		protected.POST("/grams", hs.gramHandler.Create)
		protected.GET("/grams/:id/edit", hs.gramHandler.Edit)
		protected.PATCH("/grams/:id", hs.gramHandler.Update)
		protected.PUT("/grams/:id", hs.gramHandler.Update)
		protected.DELETE("/grams/:id", hs.gramHandler.Destroy)
		protected.GET("/grams/:id/comments/new", hs.commentHandler.New)
		protected.POST("/grams/:id/comments", hs.commentHandler.Create)
	}
}

func (hs *HttpServer) startServer() *http.Server {
	addr := fmt.Sprintf(":%d", hs.config.Viper.GetInt("server.port"))
	server := &http.Server{
		Addr:              addr,
		Handler:           hs.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server started on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(httpServer *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-hs.ctx.Done():
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// hijacked websocket connections are not closed by Shutdown
	hs.socketFeedHandler.CloseAll()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
