package budget

import (
	"strconv"
	"strings"
)

// ParseDollarAmount normalizes a dollar string like "$1,000,000.00" to a
// float. Malformed values report ok=false instead of failing, matching the
// best-effort posture of the extraction pipeline.
func ParseDollarAmount(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
