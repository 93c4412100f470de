package usecase

import (
	"personal-ops-assistant/internal/task/repository"
	"personal-ops-assistant/pkg/gcalendar"
	pkgLog "personal-ops-assistant/pkg/log"
	"personal-ops-assistant/pkg/timeparse"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.Repository
	calendar   *gcalendar.Client // nil when calendar is not configured
	resolver   *timeparse.Resolver
	calendarID string
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	calendar *gcalendar.Client,
	resolver *timeparse.Resolver,
	calendarID string,
) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		calendar:   calendar,
		resolver:   resolver,
		calendarID: calendarID,
	}
}
