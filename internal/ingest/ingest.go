// Package ingest polls recent email and turns it into tasks.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"personal-ops-assistant/internal/command"
	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task/repository"
	pkgLog "personal-ops-assistant/pkg/log"
)

// Config controls the mailbox poller.
type Config struct {
	Query       string // gmail search query, e.g. "is:unread label:tasks"
	Interval    time.Duration
	MaxMessages int64
}

// Ingestor converts recent email into tasks. Each ingested message is
// deduped by its Gmail message ID and marked read afterwards.
type Ingestor struct {
	l       pkgLog.Logger
	service *gmail.Service
	repo    repository.Repository
	scope   model.Scope
	config  Config
}

// New creates an Ingestor from an authorized HTTP client.
func New(ctx context.Context, l pkgLog.Logger, httpClient *http.Client, repo repository.Repository, sc model.Scope, cfg Config) (*Ingestor, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 10
	}
	return &Ingestor{l: l, service: svc, repo: repo, scope: sc, config: cfg}, nil
}

// Run polls the mailbox until ctx is cancelled. The first poll happens
// immediately.
func (in *Ingestor) Run(ctx context.Context) {
	ticker := time.NewTicker(in.config.Interval)
	defer ticker.Stop()

	in.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			in.poll(ctx)
		}
	}
}

// poll ingests one batch of matching messages. Failures are logged, never
// fatal: the next tick retries naturally.
func (in *Ingestor) poll(ctx context.Context) {
	list, err := in.service.Users.Messages.List("me").
		Q(in.config.Query).
		MaxResults(in.config.MaxMessages).
		Context(ctx).Do()
	if err != nil {
		in.l.Warnf(ctx, "ingest: mailbox listing failed: %v", err)
		return
	}

	created := 0
	for _, ref := range list.Messages {
		ok, err := in.ingestMessage(ctx, ref.Id)
		if err != nil {
			in.l.Errorf(ctx, "ingest: message %s failed: %v", ref.Id, err)
			continue
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		in.l.Infof(ctx, "ingest: created %d task(s) from email", created)
	}
}

// ingestMessage turns one message into a task. Returns false when the
// message was already ingested.
func (in *Ingestor) ingestMessage(ctx context.Context, id string) (bool, error) {
	sourceRef := "gmail:" + id

	seen, err := in.repo.HasSourceRef(ctx, in.scope.OwnerID, sourceRef)
	if err != nil {
		return false, err
	}
	if seen {
		return false, nil
	}

	msg, err := in.service.Users.Messages.Get("me", id).
		Format("metadata").
		MetadataHeaders("Subject", "From").
		Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to fetch message: %w", err)
	}

	title := TaskTitle(header(msg, "Subject"), header(msg, "From"))
	if title == "" {
		return false, nil
	}

	_, err = in.repo.CreateTask(ctx, repository.CreateTaskOptions{
		OwnerID:   in.scope.OwnerID,
		Title:     title,
		Priority:  command.NormalizePriority(title),
		Source:    model.TaskSourceEmail,
		SourceRef: sourceRef,
	})
	if err != nil {
		return false, err
	}

	// Mark read so the query stops matching it.
	_, err = in.service.Users.Messages.Modify("me", id, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		in.l.Warnf(ctx, "ingest: failed to mark message %s read: %v", id, err)
	}

	return true, nil
}

// TaskTitle builds the task title from the message subject and sender.
// The sender's display name (or bare address) is appended for context.
func TaskTitle(subject, from string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ""
	}
	if sender := senderName(from); sender != "" {
		return fmt.Sprintf("%s (from %s)", subject, sender)
	}
	return subject
}

// senderName extracts the display name from a "Name <addr>" header, or the
// bare address when there is no display name.
func senderName(from string) string {
	from = strings.TrimSpace(from)
	if i := strings.IndexByte(from, '<'); i > 0 {
		return strings.Trim(strings.TrimSpace(from[:i]), `"`)
	}
	return strings.Trim(from, "<>")
}

func header(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}
