package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task"
	"personal-ops-assistant/internal/task/repository"
	"personal-ops-assistant/internal/task/usecase"
	"personal-ops-assistant/pkg/gcalendar"
	"personal-ops-assistant/pkg/timeparse"
)

// mock dependencies

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any) {}

type mockRepo struct {
	failCreate bool
	nextSeq    int64

	created    []repository.CreateTaskOptions
	listCalls  []repository.ListTasksOptions
	listResult []model.Task
	tasks      map[int64]model.Task
}

func newMockRepo() *mockRepo {
	return &mockRepo{nextSeq: 1, tasks: map[int64]model.Task{}}
}

func (m *mockRepo) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	if m.failCreate {
		return model.Task{}, errors.New("db error")
	}
	m.created = append(m.created, opt)
	t := model.Task{
		Seq:           m.nextSeq,
		UID:           "uid-1",
		OwnerID:       opt.OwnerID,
		Title:         opt.Title,
		Priority:      opt.Priority,
		Status:        model.TaskStatusOpen,
		Source:        opt.Source,
		SourceRef:     opt.SourceRef,
		LinkedEventID: opt.LinkedEventID,
	}
	m.tasks[m.nextSeq] = t
	m.nextSeq++
	return t, nil
}

func (m *mockRepo) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	m.listCalls = append(m.listCalls, opt)
	return m.listResult, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, ownerID string, seq int64, status model.TaskStatus) (model.Task, error) {
	t, ok := m.tasks[seq]
	if !ok || t.OwnerID != ownerID {
		return model.Task{}, repository.ErrNotFound
	}
	t.Status = status
	m.tasks[seq] = t
	return t, nil
}

func (m *mockRepo) HasSourceRef(ctx context.Context, ownerID, sourceRef string) (bool, error) {
	for _, t := range m.tasks {
		if t.OwnerID == ownerID && t.SourceRef == sourceRef {
			return true, nil
		}
	}
	return false, nil
}

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newCalendarClient(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating calendar client: %v", err)
	}
	return client
}

func testScope() model.Scope {
	return model.Scope{OwnerID: "owner-1", Timezone: "UTC", ChatID: 42}
}

func testResolver(t *testing.T) *timeparse.Resolver {
	t.Helper()
	r, err := timeparse.NewResolver("UTC")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}

func TestUseCaseCreateTask(t *testing.T) {
	ctx := context.Background()
	sc := testScope()

	t.Run("Normalizes priority from text", func(t *testing.T) {
		repo := newMockRepo()
		uc := usecase.New(&mockLogger{}, repo, nil, testResolver(t), "primary")

		created, err := uc.CreateTask(ctx, sc, task.CreateTaskInput{Text: "  pay invoice high  "})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
		if created.Title != "pay invoice high" {
			t.Errorf("Title = %q, want trimmed text", created.Title)
		}
		if created.Priority != model.PriorityHigh {
			t.Errorf("Priority = %d, want %d", created.Priority, model.PriorityHigh)
		}
		if created.Source != model.TaskSourceChat {
			t.Errorf("Source = %q, want chat default", created.Source)
		}
	})

	t.Run("Keeps explicit source", func(t *testing.T) {
		repo := newMockRepo()
		uc := usecase.New(&mockLogger{}, repo, nil, testResolver(t), "primary")

		created, err := uc.CreateTask(ctx, sc, task.CreateTaskInput{
			Text:   "reply to contract email",
			Source: model.TaskSourceEmail,
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
		if created.Source != model.TaskSourceEmail {
			t.Errorf("Source = %q, want email", created.Source)
		}
	})

	t.Run("Empty text", func(t *testing.T) {
		uc := usecase.New(&mockLogger{}, newMockRepo(), nil, testResolver(t), "primary")
		_, err := uc.CreateTask(ctx, sc, task.CreateTaskInput{Text: "   "})
		if !errors.Is(err, task.ErrEmptyInput) {
			t.Errorf("error = %v, want ErrEmptyInput", err)
		}
	})
}

func TestUseCaseMarkDone(t *testing.T) {
	ctx := context.Background()
	sc := testScope()

	repo := newMockRepo()
	uc := usecase.New(&mockLogger{}, repo, nil, testResolver(t), "primary")

	created, err := uc.CreateTask(ctx, sc, task.CreateTaskInput{Text: "pay invoice"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		done, err := uc.MarkDone(ctx, sc, " 1 ")
		if err != nil {
			t.Fatalf("MarkDone() error = %v", err)
		}
		if done.Seq != created.Seq {
			t.Errorf("Seq = %d, want %d", done.Seq, created.Seq)
		}
		if done.Status != model.TaskStatusDone {
			t.Errorf("Status = %q, want done", done.Status)
		}
	})

	t.Run("Non-numeric reference", func(t *testing.T) {
		_, err := uc.MarkDone(ctx, sc, "abc")
		if !errors.Is(err, task.ErrBadReference) {
			t.Errorf("error = %v, want ErrBadReference", err)
		}
	})

	t.Run("Unknown reference", func(t *testing.T) {
		_, err := uc.MarkDone(ctx, sc, "9999")
		if !errors.Is(err, task.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestUseCaseListTop(t *testing.T) {
	repo := newMockRepo()
	uc := usecase.New(&mockLogger{}, repo, nil, testResolver(t), "primary")

	if _, err := uc.ListTop(context.Background(), testScope()); err != nil {
		t.Fatalf("ListTop() error = %v", err)
	}
	if len(repo.listCalls) != 1 {
		t.Fatalf("expected one repository listing, got %d", len(repo.listCalls))
	}
	opt := repo.listCalls[0]
	if !opt.ByPriority || opt.Limit != 5 || opt.Status != model.TaskStatusOpen {
		t.Errorf("unexpected listing options: %+v", opt)
	}
	if opt.OwnerID != "owner-1" {
		t.Errorf("OwnerID = %q, want owner-1", opt.OwnerID)
	}
}

func TestUseCaseListToday(t *testing.T) {
	repo := newMockRepo()
	uc := usecase.New(&mockLogger{}, repo, nil, testResolver(t), "primary")

	out, err := uc.ListToday(context.Background(), testScope())
	if err != nil {
		t.Fatalf("ListToday() error = %v", err)
	}
	if len(out.Events) != 0 {
		t.Errorf("events without a calendar = %v, want none", out.Events)
	}

	opt := repo.listCalls[0]
	if opt.CreatedFrom.IsZero() || opt.CreatedTo.IsZero() {
		t.Fatal("today listing should bound created_at")
	}
	if got := opt.CreatedTo.Sub(opt.CreatedFrom); got != 24*time.Hour {
		t.Errorf("window = %v, want 24h", got)
	}
	if opt.CreatedFrom.Hour() != 0 || opt.CreatedFrom.Minute() != 0 {
		t.Errorf("window should start at midnight, got %v", opt.CreatedFrom)
	}
}

func TestUseCaseCreateEvent(t *testing.T) {
	ctx := context.Background()
	sc := testScope()

	t.Run("No calendar configured", func(t *testing.T) {
		uc := usecase.New(&mockLogger{}, newMockRepo(), nil, testResolver(t), "primary")
		_, err := uc.CreateEvent(ctx, sc, task.CreateEventInput{RawText: "Visit / 2025-07-01 14:00 / 30"})
		if !errors.Is(err, task.ErrNoCalendar) {
			t.Errorf("error = %v, want ErrNoCalendar", err)
		}
	})

	t.Run("Parse error before calendar call", func(t *testing.T) {
		uc := usecase.New(&mockLogger{}, newMockRepo(), nil, testResolver(t), "primary")
		_, err := uc.CreateEvent(ctx, sc, task.CreateEventInput{RawText: "Visit"})
		if err == nil {
			t.Fatal("expected parse error")
		}
		if errors.Is(err, task.ErrNoCalendar) {
			t.Error("parse failures should surface before the calendar check")
		}
	})

	t.Run("Success with linked task", func(t *testing.T) {
		cal := newCalendarClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "event-123", "htmlLink": "https://calendar.google.com/event-uri"}`))
		})
		repo := newMockRepo()
		uc := usecase.New(&mockLogger{}, repo, cal, testResolver(t), "primary")

		out, err := uc.CreateEvent(ctx, sc, task.CreateEventInput{
			RawText: "Client visit / 2025-07-01 14:00 / 30 / loc: Miami / task: send estimate",
		})
		if err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
		if out.EventID != "event-123" {
			t.Errorf("EventID = %q, want event-123", out.EventID)
		}
		if out.AttendeesDropped {
			t.Error("AttendeesDropped should be false")
		}
		if out.LinkedTask == nil {
			t.Fatal("expected a linked task")
		}
		if out.LinkedTask.Title != "send estimate" {
			t.Errorf("LinkedTask.Title = %q, want %q", out.LinkedTask.Title, "send estimate")
		}
		if out.LinkedTask.LinkedEventID != "event-123" {
			t.Errorf("LinkedEventID = %q, want event-123", out.LinkedTask.LinkedEventID)
		}
	})

	t.Run("Attendee rejection retried without attendees", func(t *testing.T) {
		var calls int
		cal := newCalendarClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			body := struct {
				Attendees []struct {
					Email string `json:"email"`
				} `json:"attendees"`
			}{}
			decodeJSONBody(t, r, &body)
			if len(body.Attendees) > 0 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error": {"code": 400, "message": "Invalid attendee email"}}`))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "event-456", "htmlLink": "https://calendar.google.com/retry-uri"}`))
		})
		uc := usecase.New(&mockLogger{}, newMockRepo(), cal, testResolver(t), "primary")

		out, err := uc.CreateEvent(ctx, sc, task.CreateEventInput{
			RawText: "Kickoff / 2025-07-01 14:00 / 30 / invite: nope@invalid",
		})
		if err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
		if !out.AttendeesDropped {
			t.Error("AttendeesDropped should be true after the retry")
		}
		if out.EventID != "event-456" {
			t.Errorf("EventID = %q, want event-456", out.EventID)
		}
		if calls != 2 {
			t.Errorf("calendar calls = %d, want 2", calls)
		}
	})

	t.Run("Non-attendee rejection not retried", func(t *testing.T) {
		var calls int
		cal := newCalendarClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"code": 400, "message": "Invalid time range"}}`))
		})
		uc := usecase.New(&mockLogger{}, newMockRepo(), cal, testResolver(t), "primary")

		_, err := uc.CreateEvent(ctx, sc, task.CreateEventInput{
			RawText: "Kickoff / 2025-07-01 14:00 / 30 / invite: ana@x.com",
		})
		if err == nil {
			t.Fatal("expected calendar failure")
		}
		if calls != 1 {
			t.Errorf("calendar calls = %d, want 1", calls)
		}
	})

	t.Run("Linked task failure is non-fatal", func(t *testing.T) {
		cal := newCalendarClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "event-789", "htmlLink": "https://calendar.google.com/event-uri"}`))
		})
		repo := newMockRepo()
		repo.failCreate = true
		uc := usecase.New(&mockLogger{}, repo, cal, testResolver(t), "primary")

		out, err := uc.CreateEvent(ctx, sc, task.CreateEventInput{
			RawText: "Visit / 2025-07-01 14:00 / 30 / task: follow up",
		})
		if err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
		if out.LinkedTask != nil {
			t.Error("LinkedTask should be nil when task creation failed")
		}
	})
}

func TestComposeBriefing(t *testing.T) {
	repo := newMockRepo()
	repo.listResult = []model.Task{
		{Seq: 3, Title: "urgent call", Priority: model.PriorityHigh},
		{Seq: 7, Title: "buy milk", Priority: model.PriorityDefault},
	}
	uc := usecase.New(&mockLogger{}, repo, nil, testResolver(t), "primary")

	text, err := uc.ComposeBriefing(context.Background(), testScope())
	if err != nil {
		t.Fatalf("ComposeBriefing() error = %v", err)
	}

	for _, want := range []string{"Daily briefing", "*Top tasks*", "3. urgent call (P1)", "7. buy milk (P2)", "*Today*", "No events scheduled."} {
		if !strings.Contains(text, want) {
			t.Errorf("briefing missing %q:\n%s", want, text)
		}
	}
}

func decodeJSONBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
}
