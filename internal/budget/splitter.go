package budget

import (
	"regexp"
	"strings"

	"github.com/shepard5/Reapprop-Automation/internal/pdftext"
)

var (
	budgetTypePattern = regexp.MustCompile(`(?i)^(AID TO LOCALITIES|STATE OPERATIONS|CAPITAL PROJECTS)`)
	fiscalYearPattern = regexp.MustCompile(`(\d{4}-\d{2})`)
)

// sectionTracker carries the sticky agency/budget-type/fiscal-year state and
// the pages accumulated for the section currently being built.
type sectionTracker struct {
	started    bool
	agency     string
	budgetType BudgetType
	fiscalYear string
	pages      []string
}

func (t *sectionTracker) flush(lastPage int) (Section, bool) {
	if len(t.pages) == 0 {
		return Section{}, false
	}
	s := Section{
		Agency:     t.agency,
		BudgetType: t.budgetType,
		FiscalYear: t.fiscalYear,
		Content:    strings.Join(t.pages, "\n"),
		PageStart:  lastPage - len(t.pages) + 1,
		PageEnd:    lastPage,
	}
	t.pages = nil
	return s, true
}

// SplitSections groups contiguous pages into sections. Line 2 of a page is
// read as the agency name and line 3 as the budget-type/fiscal-year header;
// a section boundary is any page whose agency or budget type differs from the
// running values. Pages with fewer than three lines are skipped entirely, and
// header lines that match nothing carry the previous values forward.
func SplitSections(pages []pdftext.Page) []Section {
	var sections []Section
	tracker := &sectionTracker{}

	for _, page := range pages {
		if page.Text == "" {
			continue
		}

		lines := strings.Split(page.Text, "\n")
		if len(lines) < 3 {
			continue
		}

		agency := strings.TrimSpace(lines[1])
		budgetInfo := strings.TrimSpace(lines[2])

		budgetType := tracker.budgetType
		if m := budgetTypePattern.FindStringSubmatch(budgetInfo); m != nil {
			budgetType = m[1]
		}
		fiscalYear := tracker.fiscalYear
		if m := fiscalYearPattern.FindStringSubmatch(budgetInfo); m != nil {
			fiscalYear = m[1]
		}

		// Tracking values update only at section boundaries; a fiscal-year
		// change alone never opens a new section.
		if !tracker.started || agency != tracker.agency || budgetType != tracker.budgetType {
			if s, ok := tracker.flush(page.Number - 1); ok {
				sections = append(sections, s)
			}
			tracker.started = true
			tracker.agency = agency
			tracker.budgetType = budgetType
			tracker.fiscalYear = fiscalYear
		}

		tracker.pages = append(tracker.pages, page.Text)
	}

	// The final section closes against the total page count, so trailing
	// blank or short pages still count toward its page range.
	totalPages := 0
	if len(pages) > 0 {
		totalPages = pages[len(pages)-1].Number
	}
	if s, ok := tracker.flush(totalPages); ok {
		sections = append(sections, s)
	}

	return sections
}
