package budget

import (
	"testing"

	"github.com/shepard5/Reapprop-Automation/internal/pdftext"
)

func page(lines ...string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func TestSplitSections_ShortPagesYieldNothing(t *testing.T) {
	pages := []pdftext.Page{
		{Number: 1, Text: "one line"},
		{Number: 2, Text: "two\nlines"},
		{Number: 3, Text: ""},
	}

	sections := SplitSections(pages)
	if len(sections) != 0 {
		t.Fatalf("expected 0 sections for sub-3-line pages, got %d", len(sections))
	}
}

func TestSplitSections_BoundaryOnAgencyChange(t *testing.T) {
	pages := []pdftext.Page{
		{Number: 1, Text: page("2025", "DEPARTMENT OF HEALTH", "STATE OPERATIONS 2025-26", "body")},
		{Number: 2, Text: page("2025", "DEPARTMENT OF EDUCATION", "STATE OPERATIONS 2025-26", "body")},
	}

	sections := SplitSections(pages)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	first, second := sections[0], sections[1]
	if first.Agency != "DEPARTMENT OF HEALTH" {
		t.Errorf("first agency = %q", first.Agency)
	}
	if second.Agency != "DEPARTMENT OF EDUCATION" {
		t.Errorf("second agency = %q", second.Agency)
	}
	if first.PageStart != 1 || first.PageEnd != 1 {
		t.Errorf("first section pages = [%d, %d], want [1, 1]", first.PageStart, first.PageEnd)
	}
	if second.PageStart != 2 || second.PageEnd != 2 {
		t.Errorf("second section pages = [%d, %d], want [2, 2]", second.PageStart, second.PageEnd)
	}
	if first.PageEnd+1 != second.PageStart {
		t.Errorf("sections not contiguous: %d then %d", first.PageEnd, second.PageStart)
	}
}

func TestSplitSections_BoundaryOnBudgetTypeChange(t *testing.T) {
	pages := []pdftext.Page{
		{Number: 1, Text: page("hdr", "DEPARTMENT OF HEALTH", "STATE OPERATIONS 2025-26", "body")},
		{Number: 2, Text: page("hdr", "DEPARTMENT OF HEALTH", "AID TO LOCALITIES 2025-26", "body")},
	}

	sections := SplitSections(pages)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].BudgetType != StateOperations {
		t.Errorf("first budget type = %q", sections[0].BudgetType)
	}
	if sections[1].BudgetType != AidToLocalities {
		t.Errorf("second budget type = %q", sections[1].BudgetType)
	}
}

func TestSplitSections_StickyCarryForward(t *testing.T) {
	// Page 2 has no recognizable budget type or fiscal year; the running
	// values carry forward and no new section starts.
	pages := []pdftext.Page{
		{Number: 1, Text: page("hdr", "DEPARTMENT OF HEALTH", "CAPITAL PROJECTS 2025-26", "body")},
		{Number: 2, Text: page("hdr", "DEPARTMENT OF HEALTH", "continuation text", "body")},
	}

	sections := SplitSections(pages)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}

	s := sections[0]
	if s.BudgetType != CapitalProjects {
		t.Errorf("budget type = %q, want carried-forward %q", s.BudgetType, CapitalProjects)
	}
	if s.FiscalYear != "2025-26" {
		t.Errorf("fiscal year = %q, want %q", s.FiscalYear, "2025-26")
	}
	if s.PageStart != 1 || s.PageEnd != 2 {
		t.Errorf("pages = [%d, %d], want [1, 2]", s.PageStart, s.PageEnd)
	}
}

func TestSplitSections_TrailingShortPageCountsTowardFinalRange(t *testing.T) {
	// A trailing page with fewer than three lines contributes no content, but
	// the final section's page range still closes against the full document
	// length.
	pages := []pdftext.Page{
		{Number: 1, Text: page("hdr", "DEPARTMENT OF HEALTH", "STATE OPERATIONS 2025-26", "body")},
		{Number: 2, Text: "stub"},
	}

	sections := SplitSections(pages)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	s := sections[0]
	if s.PageEnd != 2 {
		t.Errorf("page end = %d, want 2", s.PageEnd)
	}
	if s.PageStart != 2 {
		t.Errorf("page start = %d, want 2 (document length minus accumulated pages plus one)", s.PageStart)
	}
	if s.Content != pages[0].Text {
		t.Errorf("content = %q, want only the full page's text", s.Content)
	}
}

func TestSplitSections_CaseInsensitiveHeader(t *testing.T) {
	pages := []pdftext.Page{
		{Number: 1, Text: page("hdr", "DEPARTMENT OF HEALTH", "State Operations 2025-26", "body")},
	}

	sections := SplitSections(pages)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].BudgetType != "State Operations" {
		t.Errorf("budget type = %q, want text as captured", sections[0].BudgetType)
	}
}

func TestSplitSections_ContentJoinsPages(t *testing.T) {
	pages := []pdftext.Page{
		{Number: 1, Text: page("hdr", "AGENCY X", "STATE OPERATIONS 2025-26", "first")},
		{Number: 2, Text: page("hdr", "AGENCY X", "STATE OPERATIONS 2025-26", "second")},
	}

	sections := SplitSections(pages)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	want := pages[0].Text + "\n" + pages[1].Text
	if sections[0].Content != want {
		t.Errorf("content = %q, want concatenated page texts", sections[0].Content)
	}
}
