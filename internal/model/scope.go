package model

// Scope is the immutable owner context threaded through every handler and
// usecase call. It is built once at startup from config — never resolved
// lazily from a mutable global.
type Scope struct {
	OwnerID  string
	Timezone string // IANA reference timezone for all relative date phrases
	ChatID   int64  // Telegram chat that receives replies and briefings
}
