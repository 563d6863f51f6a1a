package compare

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

type reconcileKey struct {
	agency string
	id     string
}

// FindDiscrepancies reports every enacted record whose (agency, appropriation
// id) pair does not appear among the executive snapshot's reappropriations.
// Records with id "N/A" are unmatchable and skipped. The function is pure:
// running it twice on the same inputs yields identical output.
func FindDiscrepancies(enacted, executive []LineRecord) []Discrepancy {
	executiveReapprops := make(map[reconcileKey]struct{})
	for _, r := range executive {
		if r.Type == TypeReappropriation {
			executiveReapprops[reconcileKey{agency: r.Agency, id: r.AppropriationID}] = struct{}{}
		}
	}

	var discrepancies []Discrepancy
	for _, r := range enacted {
		if r.AppropriationID == "N/A" {
			continue
		}
		if _, ok := executiveReapprops[reconcileKey{agency: r.Agency, id: r.AppropriationID}]; ok {
			continue
		}
		discrepancies = append(discrepancies, Discrepancy{
			Agency:          r.Agency,
			BudgetType:      r.BudgetType,
			AppropriationID: r.AppropriationID,
			EnactedAmount:   r.Amount,
			EnactedType:     r.Type,
			Text:            r.Text,
			Page:            r.Page,
			Description:     fmt.Sprintf("Enacted %s should appear as reappropriation in executive budget", r.Type),
			Year:            r.Year,
		})
	}

	return discrepancies
}

// Summarize computes the aggregate statistics for a discrepancy list and
// stamps the run with a fresh ID.
func Summarize(discrepancies []Discrepancy) Summary {
	agencies := make(map[string]struct{})
	summary := Summary{
		RunID:              uuid.NewString(),
		GeneratedAt:        time.Now().UTC(),
		TotalDiscrepancies: len(discrepancies),
	}

	for _, d := range discrepancies {
		agencies[d.Agency] = struct{}{}
		summary.TotalAmountMissing += d.EnactedAmount
		switch d.EnactedType {
		case TypeAppropriation:
			summary.FromEnactedAppropriations++
		case TypeReappropriation:
			summary.FromEnactedReappropriations++
		}
	}
	summary.AgenciesAffected = len(agencies)

	return summary
}

// TopByAmount returns the n largest discrepancies by enacted amount,
// descending. Ties keep their input order.
func TopByAmount(discrepancies []Discrepancy, n int) []Discrepancy {
	sorted := make([]Discrepancy, len(discrepancies))
	copy(sorted, discrepancies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EnactedAmount > sorted[j].EnactedAmount
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// GroupByAgency buckets discrepancies per agency and returns the agency names
// in sorted order for stable iteration.
func GroupByAgency(discrepancies []Discrepancy) (map[string][]Discrepancy, []string) {
	groups := make(map[string][]Discrepancy)
	for _, d := range discrepancies {
		groups[d.Agency] = append(groups[d.Agency], d)
	}

	agencies := make([]string, 0, len(groups))
	for agency := range groups {
		agencies = append(agencies, agency)
	}
	sort.Strings(agencies)

	return groups, agencies
}
