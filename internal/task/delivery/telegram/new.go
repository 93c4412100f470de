package telegram

import (
	"github.com/gin-gonic/gin"

	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task"
	pkgLog "personal-ops-assistant/pkg/log"
	pkgTelegram "personal-ops-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler. The scope is the immutable
// owner context built at startup.
func New(
	l pkgLog.Logger,
	uc task.UseCase,
	bot *pkgTelegram.Bot,
	sc model.Scope,
	security *SecurityValidator,
) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		bot:      bot,
		scope:    sc,
		security: security,
	}
}
