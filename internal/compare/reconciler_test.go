package compare

import (
	"reflect"
	"testing"
)

func TestFindDiscrepancies_MissingReappropriation(t *testing.T) {
	enacted := []LineRecord{
		{Type: TypeAppropriation, Agency: "DEPT A", AppropriationID: "12345", Amount: 500000.0, Source: SourceEnacted},
	}

	discrepancies := FindDiscrepancies(enacted, nil)
	if len(discrepancies) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(discrepancies))
	}

	d := discrepancies[0]
	if d.AppropriationID != "12345" || d.Agency != "DEPT A" {
		t.Errorf("discrepancy key = (%q, %q)", d.Agency, d.AppropriationID)
	}
	if d.EnactedAmount != 500000.0 {
		t.Errorf("enacted amount = %v", d.EnactedAmount)
	}
	if d.Description == "" {
		t.Error("expected synthesized description")
	}
}

func TestFindDiscrepancies_MatchingReappropriationClears(t *testing.T) {
	enacted := []LineRecord{
		{Type: TypeAppropriation, Agency: "DEPT A", AppropriationID: "12345", Amount: 500000.0, Source: SourceEnacted},
	}
	executive := []LineRecord{
		{Type: TypeReappropriation, Agency: "DEPT A", AppropriationID: "12345", Amount: 400000.0, Source: SourceExecutive},
	}

	discrepancies := FindDiscrepancies(enacted, executive)
	if len(discrepancies) != 0 {
		t.Fatalf("expected 0 discrepancies, got %d", len(discrepancies))
	}
}

func TestFindDiscrepancies_ExecutiveAppropriationDoesNotClear(t *testing.T) {
	// Only executive reappropriations count; an appropriation with the same
	// key in the executive budget still leaves a discrepancy.
	enacted := []LineRecord{
		{Type: TypeAppropriation, Agency: "DEPT A", AppropriationID: "12345", Amount: 100.0},
	}
	executive := []LineRecord{
		{Type: TypeAppropriation, Agency: "DEPT A", AppropriationID: "12345", Amount: 100.0},
	}

	if got := FindDiscrepancies(enacted, executive); len(got) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(got))
	}
}

func TestFindDiscrepancies_SkipsUnmatchableID(t *testing.T) {
	enacted := []LineRecord{
		{Type: TypeReappropriation, Agency: "DEPT A", AppropriationID: "N/A", Amount: 100.0},
	}

	if got := FindDiscrepancies(enacted, nil); len(got) != 0 {
		t.Fatalf("expected N/A ids to be skipped, got %d discrepancies", len(got))
	}
}

func TestFindDiscrepancies_Idempotent(t *testing.T) {
	enacted := []LineRecord{
		{Type: TypeAppropriation, Agency: "DEPT A", AppropriationID: "12345", Amount: 1.0},
		{Type: TypeReappropriation, Agency: "DEPT B", AppropriationID: "54321", Amount: 2.0},
	}
	executive := []LineRecord{
		{Type: TypeReappropriation, Agency: "DEPT B", AppropriationID: "54321", Amount: 2.0},
	}

	first := FindDiscrepancies(enacted, executive)
	second := FindDiscrepancies(enacted, executive)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reconciler is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSummarize(t *testing.T) {
	discrepancies := []Discrepancy{
		{Agency: "DEPT A", EnactedType: TypeAppropriation, EnactedAmount: 100.0},
		{Agency: "DEPT A", EnactedType: TypeReappropriation, EnactedAmount: 200.0},
		{Agency: "DEPT B", EnactedType: TypeAppropriation, EnactedAmount: 300.0},
	}

	s := Summarize(discrepancies)
	if s.TotalDiscrepancies != 3 {
		t.Errorf("total = %d", s.TotalDiscrepancies)
	}
	if s.FromEnactedAppropriations != 2 || s.FromEnactedReappropriations != 1 {
		t.Errorf("type counts = %d/%d", s.FromEnactedAppropriations, s.FromEnactedReappropriations)
	}
	if s.AgenciesAffected != 2 {
		t.Errorf("agencies = %d", s.AgenciesAffected)
	}
	if s.TotalAmountMissing != 600.0 {
		t.Errorf("total amount = %v", s.TotalAmountMissing)
	}
	if s.RunID == "" {
		t.Error("expected run id")
	}
}

func TestTopByAmount(t *testing.T) {
	discrepancies := []Discrepancy{
		{AppropriationID: "1", EnactedAmount: 10},
		{AppropriationID: "2", EnactedAmount: 30},
		{AppropriationID: "3", EnactedAmount: 20},
	}

	top := TopByAmount(discrepancies, 2)
	if len(top) != 2 {
		t.Fatalf("len = %d", len(top))
	}
	if top[0].AppropriationID != "2" || top[1].AppropriationID != "3" {
		t.Errorf("order = %q, %q", top[0].AppropriationID, top[1].AppropriationID)
	}
	// Input order untouched.
	if discrepancies[0].AppropriationID != "1" {
		t.Error("TopByAmount mutated its input")
	}
}

func TestGroupByAgency_StableOrder(t *testing.T) {
	discrepancies := []Discrepancy{
		{Agency: "ZEBRA DEPT"},
		{Agency: "ALPHA DEPT"},
		{Agency: "ZEBRA DEPT"},
	}

	groups, agencies := GroupByAgency(discrepancies)
	if !reflect.DeepEqual(agencies, []string{"ALPHA DEPT", "ZEBRA DEPT"}) {
		t.Errorf("agency order = %v", agencies)
	}
	if len(groups["ZEBRA DEPT"]) != 2 {
		t.Errorf("zebra group size = %d", len(groups["ZEBRA DEPT"]))
	}
}
