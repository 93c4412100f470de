package command

// IntentKind is the classified purpose of an incoming chat message.
type IntentKind string

const (
	IntentCreateTask  IntentKind = "CREATE_TASK"
	IntentListTop     IntentKind = "LIST_TOP"
	IntentListToday   IntentKind = "LIST_TODAY"
	IntentMarkDone    IntentKind = "MARK_DONE"
	IntentCreateEvent IntentKind = "CREATE_EVENT"
	IntentHelp        IntentKind = "HELP"
)

// Intent is the classification result. Payload is the raw remainder of the
// message in its original casing; empty for intents that carry no payload.
type Intent struct {
	Kind    IntentKind
	Payload string
}
