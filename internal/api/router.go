package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qs3c/xbb_server/config"
	"github.com/qs3c/xbb_server/internal/api/handler"
	"github.com/qs3c/xbb_server/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	repoHandler         *handler.RepoHandler
	postHandler         *handler.PostHandler
	commentHandler      *handler.CommentHandler
	subscriptionHandler *handler.SubscriptionHandler
	versionHandler      *handler.VersionHandler
	websocketHandler    *handler.WebSocketHandler
	authenticator       middleware.Authenticator
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	repoHandler *handler.RepoHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	versionHandler *handler.VersionHandler,
	websocketHandler *handler.WebSocketHandler,
	authenticator middleware.Authenticator,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		repoHandler:         repoHandler,
		postHandler:         postHandler,
		commentHandler:      commentHandler,
		subscriptionHandler: subscriptionHandler,
		versionHandler:      versionHandler,
		websocketHandler:    websocketHandler,
		authenticator:       authenticator,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(r.cfg.CORS))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	{
		// WebSocket（token 通过 query 传递）
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口
		api.GET("/version", r.versionHandler.Latest)
		api.GET("/users/validate-name/:name", r.authHandler.ValidateName)
		api.POST("/users/validate-login", r.authHandler.ValidateLogin)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.authenticator))
		{
			authenticated.GET("/users/:name", r.userHandler.GetByName)
			authenticated.PUT("/users/:id", r.userHandler.Update)

			// 仓库
			repos := authenticated.Group("/repos")
			{
				repos.GET("", r.repoHandler.List)
				repos.POST("", r.repoHandler.Create)
				repos.GET("/:repo_id", r.repoHandler.Get)
				repos.PUT("/:repo_id", r.repoHandler.Push)
				repos.DELETE("/:repo_id", r.repoHandler.Delete)
				repos.GET("/:repo_id/sync", r.repoHandler.SyncInfo)
				repos.GET("/:repo_id/share", r.repoHandler.Share)

				// 文章
				repos.GET("/:repo_id/posts", r.postHandler.List)
				repos.POST("/:repo_id/posts", r.postHandler.Create)
				repos.GET("/:repo_id/posts/:post_id", r.postHandler.Get)
				repos.PUT("/:repo_id/posts/:post_id", r.postHandler.Push)
				repos.DELETE("/:repo_id/posts/:post_id", r.postHandler.Delete)

				// 评论
				repos.GET("/:repo_id/posts/:post_id/comments", r.commentHandler.List)
				repos.POST("/:repo_id/posts/:post_id/comments", r.commentHandler.Push)
				repos.GET("/:repo_id/posts/:post_id/comments/:comment_id", r.commentHandler.Get)
				repos.DELETE("/:repo_id/posts/:post_id/comments/:comment_id", r.commentHandler.Delete)
			}

			// 订阅
			subs := authenticated.Group("/subscriptions")
			{
				subs.POST("", r.subscriptionHandler.Subscribe)
				subs.GET("", r.subscriptionHandler.List)
				subs.DELETE("/:repo_id", r.subscriptionHandler.Unsubscribe)
			}
		}
	}

	return engine
}
