// Package reportio serializes extraction and reconciliation results to the
// flat CSV and JSON outputs this tool produces.
package reportio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shepard5/Reapprop-Automation/internal/budget"
	"github.com/shepard5/Reapprop-Automation/internal/compare"
	"github.com/shepard5/Reapprop-Automation/internal/enrich"
)

// WriteAppropriationsCSV writes one row per appropriation record.
func WriteAppropriationsCSV(w io.Writer, records []budget.AppropriationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Fund Type", "Appropriation Code", "Appropriation", "Dollar Amount", "Confidence Flag"}); err != nil {
		return fmt.Errorf("write appropriations header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write([]string{r.FundType, r.Code, r.Description, r.DollarAmount, string(r.Confidence)}); err != nil {
			return fmt.Errorf("write appropriation row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReappropriationsCSV writes one row per reappropriation chunk.
func WriteReappropriationsCSV(w io.Writer, records []budget.ReappropriationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Reappropriation"}); err != nil {
		return fmt.Errorf("write reappropriations header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Text}); err != nil {
			return fmt.Errorf("write reappropriation row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEnrichedCSV writes reappropriation chunks with their model-extracted
// fields.
func WriteEnrichedCSV(w io.Writer, records []enrich.EnrichedRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"Reappropriation", "Reappropriation Amount", "Appropriation Amount", "Year of Appropriation", "Appropriation ID"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write enriched header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Text, r.Details.ReappropriationAmount, r.Details.AppropriationAmount, r.Details.Year, r.Details.AppropriationID}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write enriched row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLineRecordsCSV writes the flat per-match records extracted for
// reconciliation.
func WriteLineRecordsCSV(w io.Writer, records []compare.LineRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"type", "agency", "budget_type", "appropriation_id", "amount", "text", "page", "source", "year"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write records header: %w", err)
	}
	for _, r := range records {
		row := []string{
			string(r.Type),
			r.Agency,
			r.BudgetType,
			r.AppropriationID,
			formatAmount(r.Amount),
			r.Text,
			strconv.Itoa(r.Page),
			string(r.Source),
			r.Year,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDiscrepanciesCSV writes the missing-reappropriation report rows.
func WriteDiscrepanciesCSV(w io.Writer, discrepancies []compare.Discrepancy) error {
	cw := csv.NewWriter(w)
	header := []string{"agency", "budget_type", "appropriation_id", "enacted_amount", "enacted_type", "text", "page", "description", "year"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write discrepancies header: %w", err)
	}
	for _, d := range discrepancies {
		row := []string{
			d.Agency,
			d.BudgetType,
			d.AppropriationID,
			formatAmount(d.EnactedAmount),
			string(d.EnactedType),
			d.Text,
			strconv.Itoa(d.Page),
			d.Description,
			d.Year,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write discrepancy row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadReappropriationsCSV reads chunk texts previously written by
// WriteReappropriationsCSV. The column is located by header name so files with
// extra columns still load.
func ReadReappropriationsCSV(r io.Reader) ([]budget.ReappropriationRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read reappropriations header: %w", err)
	}
	col := -1
	for i, name := range header {
		if name == "Reappropriation" {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("read reappropriations: missing %q column", "Reappropriation")
	}

	var records []budget.ReappropriationRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reappropriation row: %w", err)
		}
		if col >= len(row) {
			continue
		}
		records = append(records, budget.ReappropriationRecord{Text: row[col]})
	}
	return records, nil
}

// WriteSummaryJSON writes the aggregate statistics for a reconciliation run.
func WriteSummaryJSON(w io.Writer, summary compare.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
