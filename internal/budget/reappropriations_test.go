package budget

import (
	"strings"
	"testing"
)

func TestParseReappropriations_NoMarkersSingleRecord(t *testing.T) {
	content := "line one\nline two\nline three"

	records := ParseReappropriations(content)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Text != content {
		t.Errorf("text = %q, want whole input", records[0].Text)
	}
}

func TestParseReappropriations_MarkerStartsNewChunk(t *testing.T) {
	content := strings.Join([]string{
		"intro text",
		"(re. $796,000)",
		"second chunk body",
		"(re. $1,500,000.00)",
		"tail",
	}, "\n")

	records := ParseReappropriations(content)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Text != "intro text" {
		t.Errorf("first chunk = %q", records[0].Text)
	}
	if !strings.HasPrefix(records[1].Text, "(re. $796,000)") {
		t.Errorf("second chunk = %q, want to start at marker", records[1].Text)
	}
	if !strings.HasPrefix(records[2].Text, "(re. $1,500,000.00)") {
		t.Errorf("third chunk = %q", records[2].Text)
	}
}

func TestParseReappropriationChunks_DropsLinesBeforeCitation(t *testing.T) {
	lines := []string{
		"preamble that should vanish",
		"By chapter 53, section 1, of the laws of 1998",
		"26 (302198C1) (15503) ... 1,000,000",
		".................... (re. $796,000)",
	}

	records := ParseReappropriationChunks(lines)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if strings.Contains(records[0].Text, "preamble") {
		t.Errorf("pre-citation text leaked into record: %q", records[0].Text)
	}
	if !strings.HasPrefix(records[0].Text, "By chapter 53") {
		t.Errorf("record does not start with citation: %q", records[0].Text)
	}
	if !strings.Contains(records[0].Text, "(re. $796,000)") {
		t.Errorf("record missing marker line: %q", records[0].Text)
	}
}

func TestParseReappropriationChunks_ReseedsChapterHeader(t *testing.T) {
	lines := []string{
		"By chapter 53, section 1, of the laws of 1998",
		"first item ... (re. $100,000)",
		"second item body",
		"continues ... (re. $200,000)",
	}

	records := ParseReappropriationChunks(lines)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for i, r := range records {
		if !strings.HasPrefix(r.Text, "By chapter 53") {
			t.Errorf("record %d not seeded with chapter header: %q", i, r.Text)
		}
	}
	if !strings.Contains(records[1].Text, "second item body") {
		t.Errorf("second record = %q", records[1].Text)
	}
}

func TestParseReappropriationChunks_NoMarkerNoRecords(t *testing.T) {
	lines := []string{
		"By chapter 54, section 2, of the laws of 2001",
		"text that never closes",
	}

	records := ParseReappropriationChunks(lines)
	if len(records) != 0 {
		t.Fatalf("expected 0 records without a re. marker, got %d", len(records))
	}
}
