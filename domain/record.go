package domain

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
)

type RecordKind string

const (
	RecordLeaseQuote    RecordKind = "lease_quote"
	RecordBYOQuote      RecordKind = "byo_quote"
	RecordComparison    RecordKind = "byo_comparison"
	RecordQuoteAnalysis RecordKind = "quote_analysis"
	RecordLead          RecordKind = "lead"
)

// QuoteRecord is the opaque unit handed to persistence. Payload holds the
// JSON encoded input/result pair.
type QuoteRecord struct {
	ID        string          `json:"id"`
	Kind      RecordKind      `json:"kind"`
	QuotedOn  civil.Date      `json:"quotedOn"`
	CreatedAt time.Time       `json:"createdAt"`
	Payload   json.RawMessage `json:"payload"`
}

type LeadInput struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	State      State       `json:"state"`
	Message    string      `json:"message"`
	LeaseInput *LeaseInput `json:"leaseInput,omitempty"`
}

type LeadResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
