package settlement

import (
	"go-settlement/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth middleware.Authenticator,
	rbacService middleware.RBACService,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	settlements := r.Group("/settlements")
	settlements.Use(middleware.AuthMiddleware(auth))
	settlements.Use(middleware.ExtractUserID())
	settlements.Use(middleware.ContextLogger(logger))
	{
		settlements.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "settlement", "read"),
			handler.GetAll,
		)
		settlements.GET("/pending",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "settlement", "read"),
			handler.Pending,
		)
		settlements.GET("/export",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "settlement", "read"),
			handler.Export,
		)
		settlements.GET("/:id",
			middleware.RBACAuthorize(rbacService, "settlement", "read"),
			handler.GetByID,
		)

		generate := []gin.HandlerFunc{
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "settlement", "generate"),
		}
		if redisClient != nil {
			generate = append(generate, middleware.Idempotency(redisClient))
		}
		settlements.POST("/generate", append(generate, handler.Generate)...)

		settlements.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "settlement", "create"),
			handler.Create,
		)
		settlements.POST("/daily/bulk",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "settlement", "create"),
			handler.BulkCreateDaily,
		)
		settlements.POST("/:id/mark-paid",
			middleware.RBACAuthorize(rbacService, "settlement", "pay"),
			handler.MarkPaid,
		)
		settlements.PATCH("/:id",
			middleware.RBACAuthorize(rbacService, "settlement", "update"),
			handler.Override,
		)
		settlements.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "settlement", "delete"),
			handler.Delete,
		)
	}
}
