// Package briefing sends the scheduled daily briefing.
package briefing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task"
	pkgLog "personal-ops-assistant/pkg/log"
	pkgTelegram "personal-ops-assistant/pkg/telegram"
)

// Scheduler fires the daily briefing at a fixed local wall-clock time in
// the owner's reference timezone.
type Scheduler struct {
	l        pkgLog.Logger
	uc       task.UseCase
	bot      *pkgTelegram.Bot
	scope    model.Scope
	location *time.Location
	hour     int
	minute   int
}

// New creates a Scheduler. at is "HH:MM" local wall-clock time.
func New(l pkgLog.Logger, uc task.UseCase, bot *pkgTelegram.Bot, sc model.Scope, location *time.Location, at string) (*Scheduler, error) {
	hour, minute, err := parseAt(at)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		l:        l,
		uc:       uc,
		bot:      bot,
		scope:    sc,
		location: location,
		hour:     hour,
		minute:   minute,
	}, nil
}

// Run delivers briefings until ctx is cancelled. Delivery failures are
// logged and never propagate; the next day's briefing still fires.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := s.NextRun(time.Now().In(s.location))
		timer := time.NewTimer(time.Until(next))

		s.l.Infof(ctx, "briefing: next run at %s", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.deliver(ctx)
		}
	}
}

// NextRun returns the next briefing instant strictly after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	now = now.In(s.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, s.location)
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, s.hour, s.minute, 0, 0, s.location)
	}
	return next
}

func (s *Scheduler) deliver(ctx context.Context) {
	text, err := s.uc.ComposeBriefing(ctx, s.scope)
	if err != nil {
		s.l.Errorf(ctx, "briefing: compose failed: %v", err)
		return
	}
	if err := s.bot.SendMessageWithMode(s.scope.ChatID, text, "Markdown"); err != nil {
		s.l.Errorf(ctx, "briefing: delivery failed: %v", err)
		return
	}
	s.l.Infof(ctx, "briefing: delivered to chat %d", s.scope.ChatID)
}

// parseAt parses "HH:MM".
func parseAt(at string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(at), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid briefing time %q: want HH:MM", at)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid briefing hour in %q", at)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid briefing minute in %q", at)
	}
	return hour, minute, nil
}
