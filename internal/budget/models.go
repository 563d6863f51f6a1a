// Package budget implements regex-driven extraction of appropriation and
// reappropriation line items from New York State budget document text.
package budget

// BudgetType is one of the three budget categories printed in section headers.
// Values are stored exactly as captured from the page text.
type BudgetType = string

const (
	AidToLocalities BudgetType = "AID TO LOCALITIES"
	StateOperations BudgetType = "STATE OPERATIONS"
	CapitalProjects BudgetType = "CAPITAL PROJECTS"
)

// ConfidenceFlag marks whether a record came from a clean pattern match or a
// leftover text block that needs a human look.
type ConfidenceFlag string

const (
	HighConfidence ConfidenceFlag = "High Confidence"
	NeedsReview    ConfidenceFlag = "Needs Review"
)

// Section is a contiguous run of pages sharing the same agency and budget type.
type Section struct {
	Agency     string
	BudgetType BudgetType
	FiscalYear string
	Content    string
	PageStart  int
	PageEnd    int
}

// AppropriationRecord is one appropriation text block. Code and DollarAmount
// hold "N/A" when the block was never closed by a pattern match.
type AppropriationRecord struct {
	FundType     string
	Code         string
	Description  string
	DollarAmount string
	Confidence   ConfidenceFlag
}

// ReappropriationRecord is one multi-line reappropriation chunk ending at a
// "(re. $amount)" marker.
type ReappropriationRecord struct {
	Text string
}
