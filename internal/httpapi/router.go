package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edenzconsultants/portal-api/internal/common"
	"github.com/edenzconsultants/portal-api/internal/config"
	"github.com/edenzconsultants/portal-api/internal/httpapi/handlers"
	"github.com/edenzconsultants/portal-api/internal/httpapi/middleware"
	"github.com/edenzconsultants/portal-api/internal/models"
	"github.com/edenzconsultants/portal-api/internal/store/redisstore"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, rabbit handlers.JobPublisher) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(db, cfg, rds, rabbit)

	r.GET("/ping", h.Ping)

	// public chat widget
	r.POST("/chat", h.SendChatMessage)
	r.POST("/chat/async", h.SendChatMessageAsync)
	r.GET("/chat/jobs/:job_id", h.GetChatJob)
	r.GET("/chat/sessions/:session_id/messages", h.ListChatMessages)

	// public booking form
	r.POST("/consultations", h.CreateConsultation)

	// auth
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.GET("/me", h.Me)
	authGroup.PATCH("/me", h.UpdateMe)

	// student file
	authGroup.POST("/documents", h.UploadDocument)
	authGroup.GET("/documents", h.ListMyDocuments)
	authGroup.GET("/applications", h.ListMyApplications)
	authGroup.GET("/applications/:id/history", h.GetApplicationHistory)

	adminGroup := authGroup.Group("/")
	adminGroup.Use(middleware.RequireRole(models.RoleAdmin, models.RoleProcessing))
	adminGroup.GET("/consultations", h.ListConsultations)
	adminGroup.PATCH("/consultations/:id/status", h.UpdateConsultationStatus)
	adminGroup.GET("/students/:id/documents", h.ListStudentDocuments)
	adminGroup.PUT("/documents/:id/feedback", h.ReviewDocument)
	adminGroup.POST("/applications", h.CreateApplication)
	adminGroup.PUT("/applications/:id", h.UpdateApplication)

	return r
}
