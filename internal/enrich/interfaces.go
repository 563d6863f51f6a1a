// Package enrich extracts normalized fields from free-text reappropriation
// chunks by calling a text-generation model once per record.
package enrich

import "context"

// Details holds the four fields the model is asked to extract. Missing or
// unparseable values are the "N/A" sentinel, never empty strings.
type Details struct {
	ReappropriationAmount string
	AppropriationAmount   string
	Year                  string
	AppropriationID       string
}

// DefaultDetails is the all-sentinel value substituted when extraction fails.
func DefaultDetails() Details {
	return Details{
		ReappropriationAmount: "N/A",
		AppropriationAmount:   "N/A",
		Year:                  "N/A",
		AppropriationID:       "N/A",
	}
}

// DetailExtractor is the model boundary. Implementations may fail per call;
// the enricher substitutes defaults and keeps going.
type DetailExtractor interface {
	ExtractDetails(ctx context.Context, text string) (Details, error)
}
