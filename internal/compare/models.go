// Package compare extracts flat budget line records from two budget
// snapshots and reconciles them: every enacted item should reappear as a
// reappropriation in the executive budget, and the ones that do not are
// reported as discrepancies.
package compare

import "time"

// RecordType says which pattern family produced a line record.
type RecordType string

const (
	TypeAppropriation   RecordType = "appropriation"
	TypeReappropriation RecordType = "reappropriation"
)

// Source identifies which budget snapshot a record came from.
type Source string

const (
	SourceEnacted   Source = "enacted"
	SourceExecutive Source = "executive"
)

// LineRecord is one regex match on one physical line. Overlapping pattern
// variants may emit more than one record per line; that over-counting is
// preserved deliberately because downstream totals depend on it.
type LineRecord struct {
	Type            RecordType
	Agency          string
	BudgetType      string
	AppropriationID string
	Amount          float64
	Text            string
	Page            int
	Source          Source
	Year            string
}

// Discrepancy is an enacted item with no matching (agency, appropriation id)
// reappropriation in the executive snapshot.
type Discrepancy struct {
	Agency          string
	BudgetType      string
	AppropriationID string
	EnactedAmount   float64
	EnactedType     RecordType
	Text            string
	Page            int
	Description     string
	Year            string
}

// Summary aggregates a reconciliation run for the JSON report.
type Summary struct {
	RunID                       string    `json:"run_id"`
	GeneratedAt                 time.Time `json:"generated_at"`
	TotalDiscrepancies          int       `json:"total_discrepancies"`
	FromEnactedAppropriations   int       `json:"from_enacted_appropriations"`
	FromEnactedReappropriations int       `json:"from_enacted_reappropriations"`
	AgenciesAffected            int       `json:"agencies_affected"`
	TotalAmountMissing          float64   `json:"total_amount_missing"`
}
