package domain

// Product represents a catalog item eligible for matching.
// The matching engine only reads Name and Brand; price and stock are
// carried through for the chat layer's convenience.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Brand string  `json:"brand"`
	Price float64 `json:"price,omitempty"`
	Stock int     `json:"stock,omitempty"`
}

// MatchResult is the outcome of resolving a free-text model reference
// against the catalog. Product is nil when nothing matched at all.
type MatchResult struct {
	Product           *Product `json:"product"`
	Confidence        int      `json:"confidence"` // 0-100
	MatchedTerm       string   `json:"matchedTerm,omitempty"`
	OriginalQuery     string   `json:"originalQuery"`
	NeedsConfirmation bool     `json:"needsConfirmation"`
}

// DialogueAction tells the chat layer how to continue the conversation
// after a match attempt.
type DialogueAction string

const (
	// ActionAccept means the match is confident enough to use silently.
	ActionAccept DialogueAction = "accept"
	// ActionConfirm means the assistant should ask the user to confirm
	// the guessed model before proceeding.
	ActionConfirm DialogueAction = "confirm"
	// ActionClarify means the assistant should ask for more detail,
	// optionally surfacing candidate suggestions.
	ActionClarify DialogueAction = "clarify"
)

// Resolution is the assistant-facing view of a match attempt: the raw
// result plus the dialogue policy decision and candidate suggestions.
type Resolution struct {
	Action      DialogueAction `json:"action"`
	Match       MatchResult    `json:"match"`
	Suggestions []MatchResult  `json:"suggestions,omitempty"`
}
