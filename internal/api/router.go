package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/osuda/docs"
	"github.com/d60-Lab/osuda/internal/api/handler"
	"github.com/d60-Lab/osuda/internal/middleware"
)

// Options toggle the optional middleware; tests run with the zero value.
type Options struct {
	Tracing bool
}

// NewRouter assembles the gin engine: middleware, API routes, swagger UI and
// the static UI files.
func NewRouter(h *handler.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	// recovery sits inside gzip: a panic must not unwind through the gzip
	// writer's deferred close, or the 500 would be lost behind an
	// already-flushed 200 header
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))
	if opts.Tracing {
		r.Use(otelgin.Middleware("osuda"))
	}

	posts := r.Group("/api/posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.GetPost)
		posts.POST("", h.CreatePost)
		posts.PUT("/:id", h.UpdatePost)
		posts.DELETE("/:id", h.DeletePost)
	}
	r.GET("/api/keywords", h.ListKeywords)
	r.GET("/api/stats", h.Stats)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Bundled web UI; the files ship with deployments, not with this module.
	r.StaticFile("/", "./public/index.html")
	r.StaticFile("/styles.css", "./public/styles.css")
	r.StaticFile("/script.js", "./public/script.js")

	return r
}
