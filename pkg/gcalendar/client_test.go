package gcalendar_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/googleapi"

	"personal-ops-assistant/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
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
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestCreateEvent(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"id": "event-123",
				"htmlLink": "https://calendar.google.com/event-uri",
				"summary": "Client visit",
				"status": "confirmed"
			}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	start := time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)
	event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		Summary:   "Client visit",
		Location:  "Miami",
		Attendees: []string{"ana@x.com"},
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Timezone:  "America/New_York",
	})
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if event.ID != "event-123" {
		t.Errorf("unexpected id: %s", event.ID)
	}
	if event.HtmlLink != "https://calendar.google.com/event-uri" {
		t.Errorf("unexpected link: %s", event.HtmlLink)
	}

	if gotBody["location"] != "Miami" {
		t.Errorf("unexpected location in request: %v", gotBody["location"])
	}
	attendees, _ := gotBody["attendees"].([]any)
	if len(attendees) != 1 {
		t.Errorf("unexpected attendees in request: %v", gotBody["attendees"])
	}
}

func TestListEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/test-fail/events" && r.Method == http.MethodGet {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"items": [
					{
						"id": "event-1",
						"summary": "Dentist",
						"location": "Main St",
						"start": { "dateTime": "2025-06-11T09:00:00-04:00" },
						"end": { "dateTime": "2025-06-11T09:30:00-04:00" }
					},
					{
						"id": "event-2",
						"summary": "All day",
						"start": { "date": "2025-06-11" },
						"end": { "date": "2025-06-12" }
					}
				]
			}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	dayStart := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		events, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			TimeMin: dayStart,
			TimeMax: dayStart.AddDate(0, 0, 1),
		})
		if err != nil {
			t.Fatalf("failed to list events: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("len(events) = %d, want 2", len(events))
		}
		if events[0].Summary != "Dentist" {
			t.Errorf("unexpected summary: %s", events[0].Summary)
		}
		if events[0].StartTime.IsZero() {
			t.Error("timed event should carry a start time")
		}
		if !events[1].StartTime.IsZero() {
			t.Error("all-day event start should stay zero")
		}
	})

	t.Run("Server error", func(t *testing.T) {
		_, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			CalendarID: "test-fail",
			TimeMin:    dayStart,
			TimeMax:    dayStart.AddDate(0, 0, 1),
		})
		if err == nil {
			t.Error("expected listing failure")
		}
	})
}

func TestIsAttendeeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "Bad request mentioning attendee",
			err:  &googleapi.Error{Code: http.StatusBadRequest, Message: "Invalid attendee email"},
			want: true,
		},
		{
			name: "Forbidden invite reason",
			err: &googleapi.Error{Code: http.StatusForbidden, Errors: []googleapi.ErrorItem{
				{Reason: "forbiddenForNonOrganizer"},
			}},
			want: true,
		},
		{
			name: "Cannot invite self",
			err: &googleapi.Error{Code: http.StatusForbidden, Errors: []googleapi.ErrorItem{
				{Reason: "cannotInviteSelf"},
			}},
			want: true,
		},
		{
			name: "Unrelated bad request",
			err:  &googleapi.Error{Code: http.StatusBadRequest, Message: "Invalid time range"},
			want: false,
		},
		{
			name: "Server error mentioning attendee",
			err:  &googleapi.Error{Code: http.StatusInternalServerError, Message: "attendee backend down"},
			want: false,
		},
		{
			name: "Plain error",
			err:  errors.New("attendee problem"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gcalendar.IsAttendeeError(tt.err); got != tt.want {
				t.Errorf("IsAttendeeError() = %v, want %v", got, tt.want)
			}
		})
	}
}
