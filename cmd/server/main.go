package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qs3c/xbb_server/config"
	"github.com/qs3c/xbb_server/internal/api"
	"github.com/qs3c/xbb_server/internal/api/handler"
	"github.com/qs3c/xbb_server/internal/database"
	"github.com/qs3c/xbb_server/internal/pkg/logger"
	"github.com/qs3c/xbb_server/internal/pkg/pubsub"
	"github.com/qs3c/xbb_server/internal/pkg/ws"
	"github.com/qs3c/xbb_server/internal/repository"
	"github.com/qs3c/xbb_server/internal/service"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.Log)

	// 初始化数据库
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect database")
	}
	log.WithField("driver", cfg.Database.Driver).Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化 WebSocket Hub 与事件发布
	wsHub := ws.NewHub()
	var events service.EventPublisher = wsHub

	if cfg.Redis.Enabled {
		rdb, err := database.NewRedis(&cfg.Redis)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect redis")
		}
		defer rdb.Close()
		log.Info("Redis connected")

		events = pubsub.NewPublisher(rdb)
		subscriber := pubsub.NewSubscriber(rdb)
		go func() {
			if err := subscriber.Subscribe(ctx, wsHub.ForwardRepoEvent); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("Repo event subscriber stopped")
			}
		}()
	}

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	repoRepo := repository.NewRepoRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	// 初始化 Service
	accessService := service.NewAccessService(repoRepo, subRepo)
	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo)
	repoService := service.NewRepoService(repoRepo, postRepo, accessService, cfg, events)
	postService := service.NewPostService(postRepo, accessService, events)
	commentService := service.NewCommentService(commentRepo, postRepo, accessService, events)
	subService := service.NewSubscriptionService(subRepo, repoRepo, cfg)

	// 初始化 Router
	router := api.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewRepoHandler(repoService),
		handler.NewPostHandler(postService),
		handler.NewCommentHandler(commentService),
		handler.NewSubscriptionHandler(subService),
		handler.NewVersionHandler(cfg),
		handler.NewWebSocketHandler(wsHub, authService, accessService),
		authService,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Setup(),
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}
