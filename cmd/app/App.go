package app

import (
	"context"
	"grammable/configs"
	"grammable/internal/handlers"
	"grammable/internal/interfaces"
	"grammable/internal/logger"
	"grammable/internal/repositories"
	"grammable/internal/servers/database"
	"grammable/internal/servers/http"
	"grammable/internal/services"
	"sync"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	var cancel context.CancelFunc
	app.ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	app.initializeConfigs()
	logger.Configure(app.configs)
	app.initializeRedis()

	db := database.GetDB(app.configs)
	authRepo := repositories.NewAuthenticationRepository(db)
	authService := services.NewAuthenticationService(authRepo, app.tokenStore(), app.configs)

	fileManagerService := services.NewFileManagerService(
		app.fileManager(),
		app.configs.Viper.GetString("minio.bucket"),
	)
	feedService := services.NewFeedService(app.redis)

	gramRepo := repositories.NewGramRepository(db)
	gramService := services.NewGramService(gramRepo, fileManagerService, feedService)
	commentRepo := repositories.NewCommentRepository(db)
	commentService := services.NewCommentService(commentRepo, gramService, feedService)

	authHandler := handlers.NewAuthHandler(authService, app.configs.Viper.GetString("app.env") == "production")
	gramHandler := handlers.NewGramHandler(gramService)
	commentHandler := handlers.NewCommentHandler(gramService, commentService)
	htmlHandler := handlers.NewHtmlHandler()
	socketFeedHandler := handlers.NewSocketFeedHandler(app.ctx, feedService)
	if err := socketFeedHandler.StartSocket(); err != nil {
		log.Fatalf("Could not subscribe to feed: %v", err)
	}

	http.NewHttpServer(
		app.ctx,
		app.configs,
		authHandler,
		gramHandler,
		commentHandler,
		htmlHandler,
		socketFeedHandler,
	).Run()
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
	if err := app.configs.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
}

// initializeRedis leaves app.redis nil when redis is disabled.
func (app *App) initializeRedis() {
	if !app.configs.Viper.GetBool("redis.enabled") {
		log.Println("Redis disabled, using in-process token store and feed")
		return
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.configs.Viper.GetString("redis.addr"),
		Password: app.configs.Viper.GetString("redis.password"),
		DB:       app.configs.Viper.GetInt("redis.db"),
	})
	if err := app.redis.Ping(app.ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
}

func (app *App) tokenStore() interfaces.TokenStore {
	if app.redis == nil {
		return repositories.NewMemoryTokenRepository()
	}
	return repositories.NewTokenRepository(app.redis)
}

func (app *App) fileManager() interfaces.FileManager {
	if app.configs.Viper.GetBool("minio.enabled") {
		minioService, err := services.NewMinioService(app.ctx, app.configs)
		if err != nil {
			log.Fatalf("Failed to initialize minio: %v", err)
		}
		return minioService
	}

	localStorage, err := services.NewLocalStorageService(app.configs.Viper.GetString("server.uploads_dir"), "/uploads")
	if err != nil {
		log.Fatalf("Failed to initialize uploads directory: %v", err)
	}
	return localStorage
}
