package patient

import "testing"

func rosterFixture() []*Patient {
	return []*Patient{
		{ID: "patient-1", Name: "John Smith", Age: 45, LastVisit: "2025-01-10",
			Allergies:   []string{"Penicillin"},
			Medications: []Medication{{Name: "Lisinopril"}}},
		{ID: "patient-2", Name: "Sarah Johnson", Age: 32, LastVisit: "2025-02-01",
			Allergies:   []string{"Shellfish"},
			Medications: []Medication{{Name: "Albuterol"}}},
		{ID: "patient-3", Name: "Mike Davis", Age: 58, LastVisit: "2024-12-20",
			Allergies:   []string{},
			Medications: []Medication{{Name: "Metformin"}}},
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
		ok   bool
	}{
		{"", SortByName, true},
		{"name", SortByName, true},
		{"age", SortByAge, true},
		{"last_visit", SortByLastVisit, true},
		{"height", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSortKey(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseSortKey(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSearch_ByName(t *testing.T) {
	got := Search(rosterFixture(), "john")
	// Matches John Smith by name and Sarah Johnson via "Johnson".
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}

func TestSearch_ByAllergy(t *testing.T) {
	got := Search(rosterFixture(), "shellfish")
	if len(got) != 1 || got[0].ID != "patient-2" {
		t.Fatalf("expected patient-2 only, got %v", ids(got))
	}
}

func TestSearch_ByMedication(t *testing.T) {
	got := Search(rosterFixture(), "metformin")
	if len(got) != 1 || got[0].ID != "patient-3" {
		t.Fatalf("expected patient-3 only, got %v", ids(got))
	}
}

func TestSearch_FuzzyVowelStripped(t *testing.T) {
	// "jhn" matches "John" once vowels are stripped from both sides.
	got := Search(rosterFixture(), "jhn")
	if len(got) == 0 {
		t.Fatal("expected vowel-stripped match for jhn")
	}
	if got[0].ID != "patient-1" {
		t.Errorf("expected patient-1 first, got %v", ids(got))
	}
}

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	roster := rosterFixture()
	got := Search(roster, "   ")
	if len(got) != len(roster) {
		t.Errorf("expected all %d records, got %d", len(roster), len(got))
	}
}

func TestSearch_NoMatch(t *testing.T) {
	if got := Search(rosterFixture(), "xyzzy"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", ids(got))
	}
}

func TestSort_Name(t *testing.T) {
	got := Sort(rosterFixture(), SortByName)
	want := []string{"patient-1", "patient-3", "patient-2"}
	checkOrder(t, got, want)
}

func TestSort_Age(t *testing.T) {
	got := Sort(rosterFixture(), SortByAge)
	want := []string{"patient-2", "patient-1", "patient-3"}
	checkOrder(t, got, want)
}

func TestSort_LastVisitNewestFirst(t *testing.T) {
	got := Sort(rosterFixture(), SortByLastVisit)
	want := []string{"patient-2", "patient-1", "patient-3"}
	checkOrder(t, got, want)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	roster := rosterFixture()
	first := roster[0].ID
	Sort(roster, SortByAge)
	if roster[0].ID != first {
		t.Error("Sort mutated its input slice")
	}
}

func ids(patients []*Patient) []string {
	out := make([]string, len(patients))
	for i, p := range patients {
		out[i] = p.ID
	}
	return out
}

func checkOrder(t *testing.T, got []*Patient, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order = %v, want %v", ids(got), want)
		}
	}
}
