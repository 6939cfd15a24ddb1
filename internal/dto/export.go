package dto

// ExportResult carries the ledger export: the raw document for a file
// attachment plus a human-readable summary of every collection.
type ExportResult struct {
	FileName string `json:"fileName"`
	Document []byte `json:"-"`
	Summary  string `json:"summary"`
}
