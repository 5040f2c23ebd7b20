package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request budgets per client IP.
const (
	defaultGlobalLimit = 100
	defaultAuthLimit   = 5
	defaultLimitWindow = 15 * time.Minute
)

type Router struct {
	authHandler   *AuthHandler
	userHandler   *UserHandler
	courseHandler *CourseHandler
	healthHandler *HealthHandler
	userUsecase   usecasecontract.IUserUseCase
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
	randomGen     contract.IRandomGenerator

	globalLimit int
	authLimit   int
	limitWindow time.Duration
}

func NewRouter(userUsecase usecasecontract.IUserUseCase, courseUsecase usecasecontract.ICourseUseCase, validator usecasecontract.IValidator, logger usecasecontract.IAppLogger, config usecasecontract.IConfigProvider, randomGen contract.IRandomGenerator, readiness map[string]ReadinessCheck) *Router {
	return &Router{
		authHandler:   NewAuthHandler(userUsecase, validator, logger),
		userHandler:   NewUserHandler(userUsecase, validator),
		courseHandler: NewCourseHandler(courseUsecase, validator),
		healthHandler: NewHealthHandler(readiness),
		userUsecase:   userUsecase,
		logger:        logger,
		config:        config,
		randomGen:     randomGen,
		globalLimit:   defaultGlobalLimit,
		authLimit:     defaultAuthLimit,
		limitWindow:   defaultLimitWindow,
	}
}

// SetRateLimits overrides the per-IP request budgets. It must be called before SetupRoutes.
func (r *Router) SetRateLimits(global, auth int, window time.Duration) {
	r.globalLimit = global
	r.authLimit = auth
	r.limitWindow = window
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(
		middleware.RequestID(r.randomGen),
		middleware.Metrics(),
		middleware.AccessLog(r.logger),
		middleware.ErrorNormalizer(r.logger, !r.config.IsProduction()),
		middleware.Recovery(r.logger),
	)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{r.config.GetFrontendURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	router.Use(middleware.GlobalRateLimiter(middleware.NewLimiter(r.globalLimit, r.limitWindow)))
	authLimiter := middleware.RateLimiter(middleware.NewLimiter(r.authLimit, r.limitWindow), "auth")

	router.GET("/health", r.healthHandler.Health)
	router.GET("/health/ready", r.healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.AuthMiddleware(r.userUsecase, r.logger)
	optionalAuth := middleware.OptionalAuth(r.userUsecase, r.logger)
	adminOnly := middleware.RequireRoles(entity.UserRoleAdmin)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authLimiter, r.authHandler.Register)
		auth.POST("/login", authLimiter, r.authHandler.Login)
		auth.GET("/me", requireAuth, r.authHandler.Me)
		auth.POST("/logout", requireAuth, r.authHandler.Logout)
		auth.PUT("/password", authLimiter, requireAuth, r.authHandler.ChangePassword)
	}

	users := api.Group("/users", requireAuth)
	{
		users.GET("/profile", r.userHandler.GetProfile)
		users.PUT("/profile", r.userHandler.UpdateProfile)

		users.GET("", adminOnly, r.userHandler.ListUsers)
		users.GET("/:id", adminOnly, r.userHandler.GetUser)
		users.PUT("/:id/role", adminOnly, r.userHandler.ChangeRole)
		users.DELETE("/:id", adminOnly, r.userHandler.DeleteUser)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", optionalAuth, r.courseHandler.ListCourses)
		courses.GET("/:id", optionalAuth, r.courseHandler.GetCourse)
		courses.POST("", requireAuth, middleware.RequireRoles(entity.UserRoleInstructor, entity.UserRoleAdmin), r.courseHandler.CreateCourse)
	}

	api.GET("/categories", r.courseHandler.ListCategories)

	router.NoRoute(func(c *gin.Context) {
		RespondError(c, apperror.NotFound("Route not found"))
	})
}
