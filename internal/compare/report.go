package compare

import (
	"fmt"
	"io"
	"strings"
)

// RenderReport writes the human-readable reconciliation summary: overall
// counts, the ten largest missing reappropriations, and a per-agency
// breakdown in stable (sorted) order.
func RenderReport(w io.Writer, discrepancies []Discrepancy, summary Summary) {
	if len(discrepancies) == 0 {
		fmt.Fprintln(w, "No discrepancies found.")
		return
	}

	rule := strings.Repeat("=", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "NYS BUDGET REAPPROPRIATION ANALYSIS RESULTS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Missing Reappropriations: %d\n", summary.TotalDiscrepancies)
	fmt.Fprintf(w, "From Enacted Appropriations: %d\n", summary.FromEnactedAppropriations)
	fmt.Fprintf(w, "From Enacted Reappropriations: %d\n", summary.FromEnactedReappropriations)
	fmt.Fprintf(w, "Agencies Affected: %d\n", summary.AgenciesAffected)
	fmt.Fprintf(w, "Total Amount Missing: $%.2f\n", summary.TotalAmountMissing)

	fmt.Fprintf(w, "\nTOP 10 LARGEST MISSING REAPPROPRIATIONS:\n")
	for i, d := range TopByAmount(discrepancies, 10) {
		fmt.Fprintf(w, "%2d. %s\n", i+1, d.Agency)
		fmt.Fprintf(w, "    ID: %s | Amount: $%.2f\n", d.AppropriationID, d.EnactedAmount)
		fmt.Fprintf(w, "    Type: %s | Budget: %s | Year: %s\n\n", d.EnactedType, d.BudgetType, d.Year)
	}

	fmt.Fprintln(w, "SUMMARY BY AGENCY:")
	groups, agencies := GroupByAgency(discrepancies)
	for _, agency := range agencies {
		items := groups[agency]
		var total float64
		var appropCount, reappropCount int
		for _, d := range items {
			total += d.EnactedAmount
			switch d.EnactedType {
			case TypeAppropriation:
				appropCount++
			case TypeReappropriation:
				reappropCount++
			}
		}
		fmt.Fprintf(w, "\n%s\n", agency)
		fmt.Fprintf(w, "  Items: %d | Amount: $%.2f\n", len(items), total)
		fmt.Fprintf(w, "  From Appropriations: %d | From Reappropriations: %d\n", appropCount, reappropCount)
	}
}
