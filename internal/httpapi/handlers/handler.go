package handlers

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/edenzconsultants/portal-api/internal/ai"
	"github.com/edenzconsultants/portal-api/internal/application"
	"github.com/edenzconsultants/portal-api/internal/chat"
	"github.com/edenzconsultants/portal-api/internal/config"
	"github.com/edenzconsultants/portal-api/internal/consult"
	"github.com/edenzconsultants/portal-api/internal/document"
	"github.com/edenzconsultants/portal-api/internal/email"
	"github.com/edenzconsultants/portal-api/internal/store/redisstore"
)

// JobPublisher enqueues async chat jobs. Nil-able: when the broker is not
// wired the async endpoint reports unavailable.
type JobPublisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

type Handler struct {
	DB          *gorm.DB
	Cfg         config.Config
	Redis       *redisstore.Store
	Rabbit      JobPublisher
	SMTPSetting email.SMTPConfig
	ChatSvc     *chat.Service
	Consults    *consult.Repo
	Docs        *document.Repo
	Apps        *application.Repo
}

func NewHandler(db *gorm.DB, cfg config.Config, rds *redisstore.Store, rabbit JobPublisher) *Handler {
	reg := ai.NewRegistry()
	reg.Register("openrouter", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OpenRouterModel
		}
		return ai.NewOpenRouterProvider(
			cfg.OpenRouterBaseURL,
			cfg.OpenRouterAPIKey,
			m,
			cfg.OpenRouterSiteURL,
			cfg.OpenRouterAppName,
		), nil
	})

	// No credential means the factory-produced provider refuses before any
	// network call and every turn takes the deterministic fallback.
	assistant := chat.NewAssistant(reg, cfg.AIProvider, cfg.OpenRouterModel, cfg.ChatHistoryWindow)
	chatSvc := chat.NewService(chat.NewRepo(db), assistant, cfg.ChatHistoryWindow)

	return &Handler{
		DB:     db,
		Cfg:    cfg,
		Redis:  rds,
		Rabbit: rabbit,
		SMTPSetting: email.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		},
		ChatSvc:  chatSvc,
		Consults: consult.NewRepo(db),
		Docs:     document.NewRepo(db),
		Apps:     application.NewRepo(db),
	}
}
