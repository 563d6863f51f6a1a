package budget

import (
	"regexp"
	"strings"
)

var (
	reappropriationMarker = regexp.MustCompile(`\(re\.\s?\$\d{1,3}(?:,\d{3})*(?:\.\d{2})?\)`)
	reAmountPattern       = regexp.MustCompile(`re\.\s?\$\d{1,3}(?:,\d{3})*(?:\.\d{2})?`)
	chapterPattern        = regexp.MustCompile(`(?i)(By\s+chapter\s+\d+,\s+section\s+\d+,?\s+of\s+the\s+laws\s+of\s+\d{4})`)
)

// ParseReappropriations splits section text into reappropriation chunks using
// "(re. $amount)" lines as delimiters. A marker line closes the chunk built so
// far and starts the next one; text with no markers comes back as a single
// record.
func ParseReappropriations(content string) []ReappropriationRecord {
	var (
		records      []ReappropriationRecord
		currentChunk []string
	)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if reappropriationMarker.MatchString(line) {
			if len(currentChunk) > 0 {
				records = append(records, ReappropriationRecord{Text: strings.Join(currentChunk, "\n")})
				currentChunk = nil
			}
			currentChunk = append(currentChunk, line)
			continue
		}
		currentChunk = append(currentChunk, line)
	}

	if len(currentChunk) > 0 {
		records = append(records, ReappropriationRecord{Text: strings.Join(currentChunk, "\n")})
	}

	return records
}

// ParseReappropriationChunks is the citation-aware variant. Capture begins at
// a "By chapter N, section M, of the laws of YYYY" line, which is remembered
// as the active chapter header. A "re. $amount" match closes the chunk,
// prefixing the stored header when the chunk does not already start with one,
// and capture restarts with just the header re-seeded. Lines seen before any
// chapter citation are dropped.
func ParseReappropriationChunks(lines []string) []ReappropriationRecord {
	var (
		records       []ReappropriationRecord
		currentChunk  []string
		chapterHeader string
	)
	capturing := false

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if m := chapterPattern.FindStringSubmatch(line); m != nil {
			chapterHeader = m[1]
			currentChunk = []string{line}
			capturing = true
			continue
		}

		if !capturing {
			continue
		}

		currentChunk = append(currentChunk, line)

		if reAmountPattern.MatchString(line) {
			if len(currentChunk) == 0 || !strings.HasPrefix(currentChunk[0], "By chapter") {
				currentChunk = append([]string{chapterHeader}, currentChunk...)
			}
			records = append(records, ReappropriationRecord{Text: strings.Join(currentChunk, "\n")})
			currentChunk = []string{chapterHeader}
		}
	}

	return records
}
