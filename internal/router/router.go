package router

import (
	"task-manager/internal/cache"
	"task-manager/internal/database"
	"task-manager/internal/handler"
	"task-manager/internal/handler/admin"
	"task-manager/internal/handler/auth"
	"task-manager/internal/handler/tasks"
	"task-manager/internal/metrics"
	"task-manager/internal/middleware"
	"task-manager/internal/model"
	"task-manager/internal/ratelimit"
	"task-manager/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 路由需要的服務；Limiter 與 Metrics 可為 nil
type Deps struct {
	Hasher  auth.PasswordHasher
	Tokens  *service.TokenService
	Limiter *ratelimit.Limiter
	Metrics *metrics.Metrics
	Logger  logrus.FieldLogger
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, deps Deps) {
	e.GET("/", handler.WelcomeHandler())
	e.GET("/health", handler.HealthHandler(db, cch))
	if deps.Metrics != nil {
		e.GET("/metrics", deps.Metrics.Handler())
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authDeps := auth.Deps{Hasher: deps.Hasher, Tokens: deps.Tokens, Metrics: deps.Metrics}
	requireAuth := middleware.Authenticate(deps.Tokens, db)

	api := e.Group("/api")

	// 註冊與登入不需 token，但有嘗試次數限制
	apiAuth := api.Group("/auth")
	var throttle []echo.MiddlewareFunc
	if deps.Limiter.Enabled() {
		throttle = append(throttle, ratelimit.Middleware(deps.Limiter, deps.Logger))
	}
	apiAuth.POST("/register", auth.RegisterHandler(db, authDeps), throttle...)
	apiAuth.POST("/login", auth.LoginHandler(db, authDeps), throttle...)

	// 當前使用者
	apiAuth.GET("/me", auth.MeHandler(), requireAuth)
	apiAuth.PUT("/profile", auth.UpdateProfileHandler(db), requireAuth)
	apiAuth.PUT("/change-password", auth.ChangePasswordHandler(db, authDeps), requireAuth)

	// 任務只看得到自己的；/stats 要在 /:id 之前
	apiTasks := api.Group("/tasks", requireAuth)
	apiTasks.GET("", tasks.ListTasksHandler(db))
	apiTasks.POST("", tasks.CreateTaskHandler(db))
	apiTasks.GET("/stats", tasks.TaskStatsHandler(db))
	apiTasks.GET("/:id", tasks.GetTaskHandler(db))
	apiTasks.PUT("/:id", tasks.UpdateTaskHandler(db))
	apiTasks.DELETE("/:id", tasks.DeleteTaskHandler(db))
	apiTasks.PUT("/:id/image", tasks.UpdateTaskImageHandler(db))
	apiTasks.PUT("/:id/image/reset", tasks.ResetTaskImageHandler(db))

	// 管理員專屬
	apiAdmin := api.Group("/admin", requireAuth, middleware.Authorize(model.RoleAdmin))
	apiAdmin.GET("/users", admin.ListUsersHandler(db))
	apiAdmin.GET("/tasks", admin.ListAllTasksHandler(db))
	apiAdmin.DELETE("/users/:id", admin.DeleteUserHandler(db))
	apiAdmin.PUT("/users/:id/role", admin.ChangeUserRoleHandler(db))
}
