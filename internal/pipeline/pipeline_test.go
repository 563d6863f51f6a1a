package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shepard5/Reapprop-Automation/internal/budget"
	"github.com/shepard5/Reapprop-Automation/internal/logger"
	"github.com/shepard5/Reapprop-Automation/internal/pdftext"
)

func TestExtractionPipeline_EndToEnd(t *testing.T) {
	source := pdftext.SliceSource{
		strings.Join([]string{
			"STATE OF NEW YORK",
			"DEPARTMENT OF HEALTH",
			"STATE OPERATIONS 2025-26",
			"General Fund",
			"For services and expenses",
			"(12345) ...... $1,000,000",
		}, "\n"),
		strings.Join([]string{
			"STATE OF NEW YORK",
			"DEPARTMENT OF EDUCATION",
			"AID TO LOCALITIES 2025-26",
			"For aid payments",
			"(54321) ...... $2,500,000",
			"trailing lines",
		}, "\n"),
	}

	state := &State{Source: source}
	if err := NewExtractionPipeline().Execute(context.Background(), state); err != nil {
		t.Fatalf("pipeline: %v", err)
	}

	if len(state.Pages) != 2 {
		t.Fatalf("pages = %d", len(state.Pages))
	}
	if len(state.Sections) != 2 {
		t.Fatalf("sections = %d", len(state.Sections))
	}
	if state.Sections[0].Agency != "DEPARTMENT OF HEALTH" {
		t.Errorf("first agency = %q", state.Sections[0].Agency)
	}

	var high []budget.AppropriationRecord
	for _, r := range state.Appropriations {
		if r.Confidence == budget.HighConfidence {
			high = append(high, r)
		}
	}
	if len(high) != 2 {
		t.Fatalf("high-confidence records = %d, want 2", len(high))
	}
	if high[0].Code != "12345" || high[1].Code != "54321" {
		t.Errorf("codes = %q, %q", high[0].Code, high[1].Code)
	}
	if high[0].FundType != "General Fund" {
		t.Errorf("fund type = %q", high[0].FundType)
	}
}

func TestSplitSectionsStep_LogsSectionCount(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(buf))

	state := &State{
		Pages: []pdftext.Page{
			{Number: 1, Text: "hdr\nDEPARTMENT OF HEALTH\nSTATE OPERATIONS 2025-26\nbody"},
		},
	}
	if err := (&SplitSectionsStep{}).Execute(ctx, state); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(state.Sections) != 1 {
		t.Fatalf("sections = %d", len(state.Sections))
	}
	if !strings.Contains(buf.String(), "identified sections") {
		t.Errorf("log output = %q, want section count event", buf.String())
	}
}

type failingSource struct{}

func (failingSource) Pages(ctx context.Context) ([]pdftext.Page, error) {
	return nil, errors.New("boom")
}

func TestPipeline_StepFailureStopsRun(t *testing.T) {
	state := &State{Source: failingSource{}}
	err := NewExtractionPipeline().Execute(context.Background(), state)
	if err == nil {
		t.Fatal("expected error from failing source")
	}
	if !strings.Contains(err.Error(), "step 1") {
		t.Errorf("error = %v, want step index in wrap", err)
	}
	if state.Sections != nil {
		t.Error("later steps ran after failure")
	}
}
