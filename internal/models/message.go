package models

import "time"

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind classifies an assistant message. The kinds are mutually exclusive.
type Kind string

const (
	// KindNormal is a regular answer.
	KindNormal Kind = "normal"
	// KindError is a failed submission (application or transport failure).
	KindError Kind = "error"
	// KindQueryHelp is a soft failure carrying rephrasing suggestions.
	KindQueryHelp Kind = "query_help"
	// KindStopped records a user-cancelled submission.
	KindStopped Kind = "stopped"
)

// Message is a single conversation entry. Messages are immutable once
// appended to a store; annotations are attached at creation and never
// mutated afterwards.
type Message struct {
	ID        string
	Role      Role
	Kind      Kind
	Text      string
	Timestamp time.Time

	// Optional annotations on assistant messages.
	Results      *ResultSet
	Summary      string
	Suggestions  []string
	Capabilities *Capabilities
	ChartRequest *ChartRequest

	// OriginalQuestion is set on query-help messages so the UI can offer
	// a one-click retry that re-populates the input.
	OriginalQuestion string
}

// Capabilities describes what the assistant can do, returned with some
// answers (typically for "what can you do" questions).
type Capabilities struct {
	Description string
	Features    []string
}

// ChartRequest is the backend's hint that the answer should open the
// analytics panel immediately.
type ChartRequest struct {
	Requested bool
	Type      string
}
