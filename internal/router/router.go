package router

import (
	"io"
	"time"

	"brainshift/internal/config"
	"brainshift/internal/handler"
	"brainshift/internal/middleware"
	"brainshift/internal/repository"
	"brainshift/internal/service"
	"brainshift/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

// Deps are the long-lived components the HTTP layer is wired to.
type Deps struct {
	DB        *gorm.DB
	Sessions  *service.SessionService
	Streaks   *service.StreakService
	Audit     *repository.AuditRepository
	Cipher    *util.Cipher
	Loc       *time.Location
	Log       hclog.Logger
	AccessLog io.Writer // nil disables the access log
}

// SetupRouter configures the Gin engine and the /api routes.
func SetupRouter(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	if d.AccessLog != nil {
		r.Use(gin.LoggerWithWriter(d.AccessLog, "/healthz"))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", handler.Health(d.DB))

	// ====== API ======
	api := r.Group("/api")
	api.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer),
		middleware.AuditMiddleware(d.Audit, d.Cipher, d.Log),
	)

	sessionHandler := handler.NewSessionHandler(d.Sessions, cfg.App.PageSize, d.Log)
	exportHandler := handler.NewExportHandler(d.Sessions, d.Loc, d.Log)
	api.GET("/sessions", sessionHandler.List)
	api.GET("/sessions/active", sessionHandler.Active)
	api.GET("/sessions/export", exportHandler.Export)
	api.GET("/sessions/:id", sessionHandler.Get)
	api.POST("/sessions", sessionHandler.Start)
	api.PATCH("/sessions/:id/cancel", sessionHandler.Cancel)
	api.PATCH("/sessions/:id/completed", sessionHandler.Complete)
	api.DELETE("/sessions/:id", sessionHandler.Delete)

	streakHandler := handler.NewStreakHandler(d.Streaks, d.Log)
	api.GET("/streaks", streakHandler.Get)

	activityHandler := handler.NewActivityHandler(d.Audit, d.Cipher, d.Loc, cfg.App.PageSize, d.Log)
	api.GET("/activity", activityHandler.List)

	return r
}
