// Package parser turns unstructured payment-confirmation text into typed
// transaction records. It never fails on malformed input: absent fields
// come back as empty or default values and the caller decides whether the
// record is usable.
package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/habeshapay/telebirr_verify_bot/internal/apperrors"
	"github.com/habeshapay/telebirr_verify_bot/internal/core/domain"
)

const successToken = "Successful"

var (
	currencyPattern = regexp.MustCompile(`\((ETB|USD|EUR|RUB|GBP|CAD|INR|KRW|BRL|ZAR)\)`)
	amountPattern   = regexp.MustCompile(`\d+\.\d{2}$`)
	datePattern     = regexp.MustCompile(`\d{4}/\d{2}/\d{2}`)
	timePattern     = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)
	// codePattern is intentionally a substring match and can false-positive
	// against other 10+ character alphanumeric tokens. Kept as-is pending
	// product sign-off on tightening it.
	codePattern = regexp.MustCompile(`[A-Z0-9]{10}`)

	signReplacer = strings.NewReplacer("-", "", "—", "")
)

// Parse extracts a TransactionRecord from confirmation text. The second
// return value is false when the text does not contain the literal word
// "Successful" as a whitespace-delimited token; that is the "not a
// transaction" outcome, not an error.
func Parse(text string) (domain.TransactionRecord, bool) {
	tokens := strings.Fields(text)
	if !containsWord(tokens, successToken) {
		return domain.TransactionRecord{Status: domain.StatusOther}, false
	}

	rec := domain.TransactionRecord{
		Status:   domain.StatusSuccessful,
		Currency: "ETB",
	}
	// First match wins per field, independent per field.
	for _, tok := range tokens {
		if m := currencyPattern.FindStringSubmatch(tok); m != nil {
			rec.Currency = m[1]
			break
		}
	}
	for _, tok := range tokens {
		if amountPattern.MatchString(tok) {
			rec.Amount = signReplacer.Replace(tok)
			break
		}
	}
	for _, tok := range tokens {
		if datePattern.MatchString(tok) {
			rec.Date = tok
			break
		}
	}
	for _, tok := range tokens {
		if timePattern.MatchString(tok) {
			rec.Time = tok
			break
		}
	}
	for _, tok := range tokens {
		if codePattern.MatchString(tok) {
			rec.Code = tok
			break
		}
	}
	return rec, true
}

func containsWord(tokens []string, word string) bool {
	for _, tok := range tokens {
		if tok == word {
			return true
		}
	}
	return false
}

// BulkEntry is the result of scanning operator-pasted multi-line
// confirmation text.
type BulkEntry struct {
	Amount decimal.Decimal
	Code   string
}

// ExtractBulkEntry scans free-form operator text for the transfer amount
// ("ETB <amount> ...") and the transaction code ("trans[action] number is
// <code>."). Both must be present for bulk entry to proceed; otherwise it
// returns apperrors.ErrNoTransaction.
func ExtractBulkEntry(text string) (BulkEntry, error) {
	tokens := strings.Fields(text)

	var (
		amount    decimal.Decimal
		hasAmount bool
		code      string
	)
	for i, tok := range tokens {
		if tok == "ETB" && i+1 < len(tokens) && !hasAmount {
			if amt, err := decimal.NewFromString(strings.ReplaceAll(tokens[i+1], ",", "")); err == nil {
				amount = amt
				hasAmount = true
			}
			continue
		}
		lower := strings.ToLower(tok)
		if (lower == "transaction" || lower == "trans") && i+1 < len(tokens) && tokens[i+1] == "number" {
			// The code is the third token after the keyword: skip the
			// "number is" filler, strip a trailing period.
			if i+3 < len(tokens) {
				code = strings.TrimSuffix(tokens[i+3], ".")
			}
			break
		}
	}

	if !hasAmount || code == "" {
		return BulkEntry{}, apperrors.ErrNoTransaction
	}
	return BulkEntry{Amount: amount, Code: code}, nil
}
