package patient

import (
	"sort"
	"strings"
)

// SortKey selects the comparator for roster ordering.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByAge       SortKey = "age"
	SortByLastVisit SortKey = "last_visit"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByName, SortByAge, SortByLastVisit:
		return SortKey(s), true
	case "":
		return SortByName, true
	}
	return "", false
}

// Search filters the roster by a case-insensitive query. A record matches
// when the query is a substring of its name, an allergy, or a medication
// name, or when the vowel-stripped name contains the vowel-stripped query
// (catches common typos).
func Search(patients []*Patient, query string) []*Patient {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return patients
	}

	var out []*Patient
	for _, p := range patients {
		if matches(p, query) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *Patient, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, a := range p.Allergies {
		if strings.Contains(strings.ToLower(a), query) {
			return true
		}
	}
	for _, m := range p.Medications {
		if strings.Contains(strings.ToLower(m.Name), query) {
			return true
		}
	}
	return strings.Contains(stripVowels(strings.ToLower(p.Name)), stripVowels(query))
}

func stripVowels(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			return -1
		}
		return r
	}, s)
}

// Sort returns a newly ordered slice; the input is left as-is. Last-visit
// ordering is newest first, matching how clinicians scan the roster.
func Sort(patients []*Patient, key SortKey) []*Patient {
	sorted := make([]*Patient, len(patients))
	copy(sorted, patients)

	switch key {
	case SortByAge:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Age < sorted[j].Age })
	case SortByLastVisit:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LastVisit > sorted[j].LastVisit })
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	}
	return sorted
}
