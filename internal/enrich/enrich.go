package enrich

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shepard5/Reapprop-Automation/internal/budget"
)

// EnrichedRecord pairs a reappropriation chunk with the fields the model
// extracted from it.
type EnrichedRecord struct {
	Text    string
	Details Details
}

// Enricher runs records through a DetailExtractor sequentially, sleeping
// between calls as a crude rate limit.
type Enricher struct {
	extractor DetailExtractor
	delay     time.Duration
	log       zerolog.Logger
}

// NewEnricher wires an extractor with a per-request delay.
func NewEnricher(extractor DetailExtractor, delay time.Duration, log zerolog.Logger) *Enricher {
	return &Enricher{extractor: extractor, delay: delay, log: log}
}

// EnrichAll processes every record in order. A failed extraction is logged
// and substituted with all-"N/A" details; it never aborts the batch.
func (e *Enricher) EnrichAll(ctx context.Context, records []budget.ReappropriationRecord) []EnrichedRecord {
	enriched := make([]EnrichedRecord, 0, len(records))

	for i, record := range records {
		details, err := e.extractor.ExtractDetails(ctx, record.Text)
		if err != nil {
			e.log.Warn().Err(err).Int("record", i).Msg("detail extraction failed, using defaults")
			details = DefaultDetails()
		}
		enriched = append(enriched, EnrichedRecord{Text: record.Text, Details: details})

		e.log.Info().Int("processed", i+1).Int("total", len(records)).Msg("enrichment progress")

		if e.delay > 0 && i < len(records)-1 {
			time.Sleep(e.delay)
		}
	}

	return enriched
}
