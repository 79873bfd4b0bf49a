package app

import (
	"database/sql"

	"go-vacation/internal/auth"
	"go-vacation/internal/authz"
	"go-vacation/internal/bootstrap"
	"go-vacation/internal/config"
	"go-vacation/internal/messaging/kafka"
	"go-vacation/internal/middleware"
	"go-vacation/internal/notification"
	"go-vacation/internal/rbac"
	"go-vacation/internal/rbac/infra"
	"go-vacation/internal/team"
	"go-vacation/internal/user"
	"go-vacation/internal/vacation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	audit bootstrap.AuditLogger,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	vacationRepo := vacation.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)
	if err := rbacService.LoadDefaultPolicy(); err != nil {
		return err
	}

	authorizer := authz.NewAuthorizer()
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	// --- Services ---
	userService := user.NewService(db, userRepo, authorizer, user.Options{
		AutoRegister: cfg.Auth.AutoRegister,
		CacheTTL:     cfg.Cache.UserTTL,
	})
	teamService := team.NewService(db, teamRepo, authorizer, userService, rdb)
	vacationService := vacation.NewService(db, vacationRepo, outboxRepo, authorizer, rdb, vacation.Options{
		CalendarCacheTTL: cfg.Cache.CalendarTTL,
		Audit:            audit,
	})
	notificationService := notification.NewService(notificationRepo, authorizer)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	teamHandler := team.NewHandler(teamService)
	vacationHandler := vacation.NewHandler(vacationService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService)

	authMiddlewares := []gin.HandlerFunc{
		middleware.AuthMiddleware(verifier),
		middleware.ResolveUser(userService),
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler, rbacService, authMiddlewares...)
		team.RegisterRoutes(api, teamHandler, rbacService, authMiddlewares...)
		vacation.RegisterRoutes(api, vacationHandler, rbacService, rdb, authMiddlewares...)
		notification.RegisterRoutes(api, notificationHandler, rbacService, authMiddlewares...)
		rbac.RegisterRoutes(api, rbacHandler, authMiddlewares...)
	}

	return nil
}
