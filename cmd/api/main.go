package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/handler"
	"github.com/skilltrack/tms-api/internal/middleware"
	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/service"
	"github.com/skilltrack/tms-api/internal/store"
	memorystore "github.com/skilltrack/tms-api/internal/store/memory"
	postgresstore "github.com/skilltrack/tms-api/internal/store/postgres"
	"github.com/skilltrack/tms-api/pkg/cache"
	"github.com/skilltrack/tms-api/pkg/config"
	"github.com/skilltrack/tms-api/pkg/database"
	"github.com/skilltrack/tms-api/pkg/logger"
	corsmiddleware "github.com/skilltrack/tms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/skilltrack/tms-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	st, cleanup, err := buildStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("store init failed", "driver", cfg.Store.Driver, "error", err)
	}
	defer cleanup()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheSvc := buildCache(cfg, metricsSvc, logr)

	authSvc := service.NewAuthService(st, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(st, validate, logr)
	trainerSvc := service.NewTrainerService(st, validate, logr)
	traineeSvc := service.NewTraineeService(st, validate, logr)
	paymentSvc := service.NewPaymentService(st, validate, logr)
	assessmentSvc := service.NewAssessmentService(st, validate, logr)
	resultSvc := service.NewTrainingResultService(st, validate, logr)
	dashboardSvc := service.NewDashboardService(st, cacheSvc, logr, service.DashboardServiceConfig{
		CacheTTL: cfg.Dashboard.CacheTTL,
	})
	reportSvc := service.NewReportService(st, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	registerRoutes(r, cfg, routeDeps{
		auth:        handler.NewAuthHandler(authSvc),
		courses:     handler.NewCourseHandler(courseSvc),
		trainers:    handler.NewTrainerHandler(trainerSvc),
		trainees:    handler.NewTraineeHandler(traineeSvc),
		payments:    handler.NewPaymentHandler(paymentSvc),
		assessments: handler.NewAssessmentHandler(assessmentSvc),
		results:     handler.NewTrainingResultHandler(resultSvc),
		dashboard:   handler.NewDashboardHandler(dashboardSvc),
		reports:     handler.NewReportHandler(reportSvc),
		authSvc:     authSvc,
		dashSvc:     dashboardSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

type routeDeps struct {
	auth        *handler.AuthHandler
	courses     *handler.CourseHandler
	trainers    *handler.TrainerHandler
	trainees    *handler.TraineeHandler
	payments    *handler.PaymentHandler
	assessments *handler.AssessmentHandler
	results     *handler.TrainingResultHandler
	dashboard   *handler.DashboardHandler
	reports     *handler.ReportHandler
	authSvc     *service.AuthService
	dashSvc     *service.DashboardService
}

func registerRoutes(r *gin.Engine, cfg *config.Config, deps routeDeps) {
	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", deps.auth.Login)
	api.POST("/auth/register", deps.auth.Register)
	api.POST("/auth/refresh", deps.auth.Refresh)

	authed := api.Group("")
	authed.Use(middleware.JWT(deps.authSvc))

	authed.POST("/auth/logout", deps.auth.Logout)
	authed.GET("/auth/me", deps.auth.Me)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminOrOfficer := middleware.RequireRoles(models.RoleAdmin, models.RoleEnrollmentOfficer)
	adminOrCashier := middleware.RequireRoles(models.RoleAdmin, models.RoleCashier)

	// Writes to entities the dashboard counts drop the cached summary.
	busting := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			h(c)
			if c.Writer.Status() < http.StatusBadRequest {
				deps.dashSvc.Invalidate(c.Request.Context())
			}
		}
	}

	authed.GET("/courses", deps.courses.List)
	authed.GET("/courses/:id", deps.courses.Get)
	authed.POST("/courses", adminOrOfficer, busting(deps.courses.Create))
	authed.PUT("/courses/:id", adminOrOfficer, busting(deps.courses.Update))

	authed.GET("/trainees", deps.trainees.List)
	authed.GET("/trainees/:id", deps.trainees.Get)
	authed.POST("/trainees", adminOrOfficer, busting(deps.trainees.Create))
	authed.PUT("/trainees/:id", adminOrOfficer, busting(deps.trainees.Update))

	authed.GET("/trainers", deps.trainers.List)
	authed.GET("/trainers/:id", deps.trainers.Get)
	authed.POST("/trainers", adminOnly, deps.trainers.Create)
	authed.PUT("/trainers/:id", adminOnly, deps.trainers.Update)

	authed.GET("/payments", adminOrCashier, deps.payments.List)
	authed.GET("/payments/:id", adminOrCashier, deps.payments.Get)
	authed.POST("/payments", adminOrCashier, busting(deps.payments.Create))
	authed.PUT("/payments/:id", adminOrCashier, busting(deps.payments.Update))

	authed.GET("/dashboard/stats", deps.dashboard.Summary)

	authed.GET("/assessments", adminOnly, deps.assessments.List)
	authed.GET("/assessments/trainee/:traineeId", adminOnly, byTrainee(deps.assessments.List))
	authed.GET("/assessments/:id", adminOnly, deps.assessments.Get)
	authed.POST("/assessments", adminOnly, deps.assessments.Create)
	authed.PUT("/assessments/:id", adminOnly, deps.assessments.Update)

	authed.GET("/training-results", adminOnly, deps.results.List)
	authed.GET("/training-results/trainee/:traineeId", adminOnly, byTrainee(deps.results.List))
	authed.GET("/training-results/:id", adminOnly, deps.results.Get)
	authed.POST("/training-results", adminOnly, deps.results.Create)
	authed.PUT("/training-results/:id", adminOnly, deps.results.Update)

	authed.GET("/reports/:type", adminOnly, deps.reports.Generate)
	authed.GET("/reports/:type/export", adminOnly, deps.reports.Export)
}

// byTrainee rewrites the path parameter into the query filter the list
// handlers already understand.
func byTrainee(list gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Request.URL.Query()
		q.Set("trainee_id", c.Param("traineeId"))
		c.Request.URL.RawQuery = q.Encode()
		list(c)
	}
}

func buildStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		st := postgresstore.New(db)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := st.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := st.SeedUsers(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return st, func() { db.Close() }, nil
	case config.StoreMemory:
		st, err := memorystore.New()
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func buildCache(cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) *service.CacheService {
	if !cfg.Redis.Enabled {
		return nil
	}
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		return nil
	}
	repo := cache.NewRepository(client, logr)
	return service.NewCacheService(repo, metrics, cfg.Dashboard.CacheTTL, logr, true)
}
