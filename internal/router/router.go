package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/nsbdesign/proofroom/docs"
	"github.com/nsbdesign/proofroom/internal/config"
	"github.com/nsbdesign/proofroom/internal/middleware"
	"github.com/nsbdesign/proofroom/internal/modules/handler"
	"github.com/nsbdesign/proofroom/internal/modules/serializer"
	"github.com/nsbdesign/proofroom/internal/modules/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config          *config.Config
	Log             *zap.Logger
	Reviews         service.ReviewService
	ProjectHandler  *handler.ProjectHandler
	ReviewHandler   *handler.ReviewHandler
	ClientHandler   *handler.ClientHandler
	ActivityHandler *handler.ActivityHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		admin := v1.Group("/admin")
		{
			admin.Use(middleware.AdminAuth(d.Config))

			projects := admin.Group("/projects")
			{
				projects.GET("", d.ProjectHandler.ListProjects)
				projects.POST("", d.ProjectHandler.CreateProject)
				projects.GET("/search", d.ProjectHandler.SearchProjects)
				projects.GET("/:project_id", d.ProjectHandler.GetProject)
				projects.PATCH("/:project_id", d.ProjectHandler.UpdateProject)

				projects.GET("/:project_id/reviews", d.ReviewHandler.ListReviews)
				projects.POST("/:project_id/reviews", d.ReviewHandler.CreateReview)
			}

			reviews := admin.Group("/reviews")
			{
				reviews.PUT("/:review_id/status", d.ReviewHandler.SetStatus)
				reviews.GET("/:review_id/approvals", d.ReviewHandler.ListApprovals)
				reviews.GET("/:review_id/items", d.ReviewHandler.ListDesignItems)
				reviews.POST("/:review_id/items", d.ReviewHandler.CreateDesignItem)
			}

			admin.GET("/activity", d.ActivityHandler.ListActivity)
			admin.POST("/activity", d.ActivityHandler.AppendActivity)
		}

		// The client surface is keyed by the share-link capability; no
		// other authentication applies.
		review := v1.Group("/review/:share_link")
		{
			review.Use(middleware.ShareLink(d.Reviews))

			review.GET("", d.ClientHandler.GetReview)
			review.GET("/items", d.ClientHandler.ListItems)
			review.GET("/comments", d.ClientHandler.ListGroupedComments)
			review.GET("/items/:item_id/comments", d.ClientHandler.ListFileComments)
			review.POST("/items/:item_id/comments", d.ClientHandler.AddComment)
			review.POST("/approval", d.ClientHandler.CreateApproval)
			review.GET("/items/:item_id/download", d.ClientHandler.DownloadItem)
		}
	}
	return r
}
