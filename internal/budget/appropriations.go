package budget

import (
	"regexp"
	"strings"
)

var (
	appropriationPattern = regexp.MustCompile(`\((\d{5})\)\s+\.{3,}\s+\$\d{1,3}(?:,\d{3})*(?:\.\d{2})?`)
	fundTypePattern      = regexp.MustCompile(`(?i)(General Fund|Special Revenue Funds - Federal|Special Revenue Funds - Other|Fiduciary Funds)`)
)

// ParseAppropriations scans section text for appropriation blocks. An
// appropriation line looks like "(#####) .... $1,234,567.00"; each match
// closes the block accumulated so far as a high-confidence record carrying
// the matched code and amount, then starts a new block with the matching
// line. Whatever is left at end of input becomes a needs-review record with
// "N/A" sentinels.
//
// Fund type is a section-wide sticky value: any line matching a fund label
// updates it, independent of block boundaries.
func ParseAppropriations(content string) []AppropriationRecord {
	var (
		records      []AppropriationRecord
		currentChunk []string
	)
	fundType := "Unknown"

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if m := fundTypePattern.FindStringSubmatch(line); m != nil {
			fundType = m[1]
		}

		m := appropriationPattern.FindStringSubmatch(line)
		if m == nil {
			currentChunk = append(currentChunk, line)
			continue
		}

		if len(currentChunk) > 0 {
			records = append(records, AppropriationRecord{
				FundType:     fundType,
				Code:         m[1],
				Description:  strings.Join(currentChunk, "\n"),
				DollarAmount: m[0],
				Confidence:   HighConfidence,
			})
			currentChunk = nil
		}
		currentChunk = append(currentChunk, line)
	}

	if len(currentChunk) > 0 {
		records = append(records, AppropriationRecord{
			FundType:     fundType,
			Code:         "N/A",
			Description:  strings.Join(currentChunk, "\n"),
			DollarAmount: "N/A",
			Confidence:   NeedsReview,
		})
	}

	return records
}
