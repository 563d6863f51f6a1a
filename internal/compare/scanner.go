package compare

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shepard5/Reapprop-Automation/internal/budget"
	"github.com/shepard5/Reapprop-Automation/internal/pdftext"
)

// Pattern variants applied per line. Several variants can hit the same
// physical match and each hit emits its own record; dedup is intentionally
// NOT done here.
var appropriationVariants = []*regexp.Regexp{
	regexp.MustCompile(`\((\d{5})\)\s*[.\s]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`\((\d{5})\)[^(]*?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d{5})\)\s*[.\s]*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
}

var reappropriationVariants = []*regexp.Regexp{
	regexp.MustCompile(`(?i)re\.\s?\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)\(re\.\s?\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\)`),
	regexp.MustCompile(`(?i)reappropriation[:\s]+\$?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
}

var appropriationIDVariants = []*regexp.Regexp{
	regexp.MustCompile(`\((\d{5})\)`),
	regexp.MustCompile(`(\d{5})\)`),
	regexp.MustCompile(`\[(\d{5})\]`),
	regexp.MustCompile(`(\d{5})[^\d]`),
}

var pageBudgetTypePattern = regexp.MustCompile(`(STATE OPERATIONS|AID TO LOCALITIES|CAPITAL PROJECTS)`)

// agencyVariants look for an all-caps agency heading in the page text.
var agencyVariants = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^([A-Z][A-Z ]{15,}[A-Z])$`),
	regexp.MustCompile(`([A-Z][A-Z ]{10,}[A-Z])\n\s*(STATE OPERATIONS|AID TO LOCALITIES|CAPITAL PROJECTS)`),
	regexp.MustCompile(`(?m)^([A-Z][A-Z ]{8,}[A-Z])\s*$`),
}

var agencyExcludeWords = []string{
	"APPROPRIATIONS", "REAPPROPRIATIONS", "BUDGET", "SCHEDULE", "GENERAL FUND", "SPECIAL REVENUE",
}

var yearVariants = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})-\d{2}`),
	regexp.MustCompile(`year (\d{4})`),
	regexp.MustCompile(`(\d{4}) school year`),
	regexp.MustCompile(`April 1, (\d{4})`),
	regexp.MustCompile(`March 31, (\d{4})`),
}

// Scanner walks page text and emits one LineRecord per pattern hit, carrying
// sticky agency/budget-type/year context from page headings.
type Scanner struct {
	log zerolog.Logger
}

// NewScanner creates a scanner that logs page progress to log.
func NewScanner(log zerolog.Logger) *Scanner {
	return &Scanner{log: log}
}

// ExtractRecords scans every page of a budget snapshot.
func (s *Scanner) ExtractRecords(pages []pdftext.Page, source Source) []LineRecord {
	var records []LineRecord

	currentAgency := "N/A"
	currentBudgetType := "N/A"
	currentYear := "Unknown"
	total := len(pages)

	for _, page := range pages {
		if page.Text == "" {
			continue
		}

		if agency := findAgency(page.Text); agency != "" {
			currentAgency = agency
		}
		if m := pageBudgetTypePattern.FindString(page.Text); m != "" {
			currentBudgetType = strings.TrimSpace(m)
		}
		if year := extractYear(page.Text); year != "Unknown" {
			currentYear = year
		}

		for _, rawLine := range strings.Split(page.Text, "\n") {
			line := strings.TrimSpace(rawLine)

			year := currentYear
			if lineYear := extractYear(line); lineYear != "Unknown" {
				year = lineYear
			}

			for _, pattern := range appropriationVariants {
				for _, m := range pattern.FindAllStringSubmatch(line, -1) {
					amount, ok := budget.ParseDollarAmount(m[2])
					if !ok {
						continue
					}
					records = append(records, LineRecord{
						Type:            TypeAppropriation,
						Agency:          currentAgency,
						BudgetType:      currentBudgetType,
						AppropriationID: m[1],
						Amount:          amount,
						Text:            line,
						Page:            page.Number,
						Source:          source,
						Year:            year,
					})
				}
			}

			for _, pattern := range reappropriationVariants {
				for _, m := range pattern.FindAllStringSubmatch(line, -1) {
					amount, ok := budget.ParseDollarAmount(m[1])
					if !ok {
						continue
					}
					records = append(records, LineRecord{
						Type:            TypeReappropriation,
						Agency:          currentAgency,
						BudgetType:      currentBudgetType,
						AppropriationID: findAppropriationID(line),
						Amount:          amount,
						Text:            line,
						Page:            page.Number,
						Source:          source,
						Year:            year,
					})
				}
			}
		}

		if page.Number%100 == 0 {
			s.log.Info().
				Int("page", page.Number).
				Int("total", total).
				Str("source", string(source)).
				Msg("scan progress")
		}
	}

	s.log.Info().
		Int("records", len(records)).
		Str("source", string(source)).
		Msg("extraction complete")

	return records
}

// findAgency looks for an all-caps heading that is not one of the standard
// structural headings.
func findAgency(text string) string {
	for _, pattern := range agencyVariants {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		agency := strings.TrimSpace(m[1])
		excluded := false
		for _, word := range agencyExcludeWords {
			if strings.Contains(agency, word) {
				excluded = true
				break
			}
		}
		if !excluded {
			return agency
		}
	}
	return ""
}

// extractYear pulls a plausible budget year (2020-2030) out of text.
func extractYear(text string) string {
	for _, pattern := range yearVariants {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if year >= 2020 && year <= 2030 {
			return m[1]
		}
	}
	return "Unknown"
}

// findAppropriationID locates a 5-digit appropriation id in a line, "N/A"
// when none is present.
func findAppropriationID(line string) string {
	for _, pattern := range appropriationIDVariants {
		if m := pattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return "N/A"
}
