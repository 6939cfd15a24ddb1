package dto

// MatchOutcome is the terminal state of one /verify invocation.
type MatchOutcome string

const (
	// OutcomeRegistered: first-time request, recorded but not yet matched.
	OutcomeRegistered MatchOutcome = "REGISTERED"
	// OutcomeMatched: repeat request and the code is operator-confirmed.
	OutcomeMatched MatchOutcome = "MATCHED"
	// OutcomeUnmatched: repeat request but no operator confirmation yet.
	OutcomeUnmatched MatchOutcome = "UNMATCHED"
)

// MatchResult is what a verification request resolves to.
type MatchResult struct {
	Outcome MatchOutcome `json:"outcome"`
	Code    string       `json:"code"`
	// Link carries the configured link1 value for matched outcomes, for
	// downstream artifact generation (the QR payload is the code itself).
	Link string `json:"link,omitempty"`
}

// BulkOutcome is the result of one operator bulk-entry submission.
type BulkOutcome string

const (
	BulkStored        BulkOutcome = "STORED"
	BulkAlreadyStored BulkOutcome = "ALREADY_STORED"
)

// BulkResult reports what bulk entry extracted and stored.
type BulkResult struct {
	Outcome BulkOutcome `json:"outcome"`
	Code    string      `json:"code"`
	Amount  string      `json:"amount"`
}
