package domain

// TransactionStatus classifies a parsed confirmation text.
type TransactionStatus string

const (
	StatusSuccessful TransactionStatus = "Successful"
	StatusOther      TransactionStatus = "Other"
)

// TransactionRecord is the structured form of one payment-confirmation
// text. It is ephemeral: only the Code field ever reaches the ledger.
type TransactionRecord struct {
	Status   TransactionStatus `json:"status"`
	Amount   string            `json:"amount"`   // decimal string, sign markers stripped
	Currency string            `json:"currency"` // ISO-4217-like code, defaults to ETB
	Date     string            `json:"date"`     // YYYY/MM/DD as found in the text
	Time     string            `json:"time"`     // HH:MM:SS as found in the text
	Code     string            `json:"code"`     // 10-char uppercase alphanumeric
}

// Usable reports whether the record carries enough data to act on: a
// successful status and a transaction code.
func (r TransactionRecord) Usable() bool {
	return r.Status == StatusSuccessful && r.Code != ""
}
