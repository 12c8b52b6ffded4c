package employeesalary

import (
	"go-settlement/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth middleware.Authenticator,
	rbacService middleware.RBACService,
) {
	salaries := r.Group("/employee-salaries")
	salaries.Use(middleware.AuthMiddleware(auth))
	{
		salaries.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetAll,
		)
		salaries.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetByID,
		)
		salaries.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Create,
		)
		salaries.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Delete,
		)
	}
}
