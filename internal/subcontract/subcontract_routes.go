package subcontract

import (
	"go-settlement/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth middleware.Authenticator,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	subcontracts := r.Group("/subcontracts")
	subcontracts.Use(middleware.AuthMiddleware(auth))
	subcontracts.Use(middleware.ContextLogger(logger))
	{
		subcontracts.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "subcontract", "read"),
			handler.GetAll,
		)
		subcontracts.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "subcontract", "read"),
			handler.GetByID,
		)
		subcontracts.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "subcontract", "create"),
			handler.Create,
		)
		subcontracts.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "subcontract", "update"),
			handler.Update,
		)
		subcontracts.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "subcontract", "delete"),
			handler.Delete,
		)
	}
}
