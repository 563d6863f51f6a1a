// Package pipeline orchestrates the budget extraction flow: page text
// extraction, section splitting, and record parsing, run strictly in
// sequence.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/shepard5/Reapprop-Automation/internal/budget"
	"github.com/shepard5/Reapprop-Automation/internal/logger"
	"github.com/shepard5/Reapprop-Automation/internal/pdftext"
)

// Step is a single stage in the extraction pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State holds the shared state threaded through all pipeline steps.
type State struct {
	Source pdftext.PageSource

	Pages            []pdftext.Page
	Sections         []budget.Section
	Appropriations   []budget.AppropriationRecord
	Reappropriations []budget.ReappropriationRecord
}

// ExtractPagesStep pulls per-page text from the configured source.
type ExtractPagesStep struct{}

func (s *ExtractPagesStep) Execute(ctx context.Context, state *State) error {
	pages, err := state.Source.Pages(ctx)
	if err != nil {
		return fmt.Errorf("extract pages: %w", err)
	}
	state.Pages = pages
	return nil
}

// SplitSectionsStep groups pages into agency/budget-type sections.
type SplitSectionsStep struct{}

func (s *SplitSectionsStep) Execute(ctx context.Context, state *State) error {
	state.Sections = budget.SplitSections(state.Pages)
	log := logger.FromContext(ctx)
	log.Info().Int("sections", len(state.Sections)).Msg("identified sections")
	return nil
}

// ParseSectionsStep runs the record parsers over every section.
// Reappropriation sections are routed by budget-type label, everything else
// goes through the appropriation parser.
type ParseSectionsStep struct{}

func (s *ParseSectionsStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)

	for _, section := range state.Sections {
		log.Info().
			Str("agency", section.Agency).
			Str("budget_type", section.BudgetType).
			Int("page_start", section.PageStart).
			Int("page_end", section.PageEnd).
			Msg("processing section")

		if strings.Contains(section.BudgetType, "REAPPROPRIATIONS") {
			state.Reappropriations = append(state.Reappropriations, budget.ParseReappropriations(section.Content)...)
		} else {
			state.Appropriations = append(state.Appropriations, budget.ParseAppropriations(section.Content)...)
		}
	}
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewExtractionPipeline creates the standard three-step extraction pipeline
// for one budget PDF.
func NewExtractionPipeline() *Pipeline {
	return NewPipeline(
		&ExtractPagesStep{},
		&SplitSectionsStep{},
		&ParseSectionsStep{},
	)
}
