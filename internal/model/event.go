package model

import "time"

// EventRequest is the structured calendar request produced by the command
// parser. StartLocal and EndLocal carry the owner's reference timezone in
// their location; the calendar collaborator formats them against it.
// Invariant: EndLocal is strictly after StartLocal.
type EventRequest struct {
	Title           string
	StartLocal      time.Time
	EndLocal        time.Time
	Location        string
	Address         string
	Description     string
	Invitees        []string // attendee email addresses, in the order given
	LinkedTaskTitle string   // when set, a task is created and linked to the event
}
