// Package dedup collapses candidate transactions extracted from
// overlapping document windows into one canonical, date-ordered list.
// It is pure: no I/O, deterministic for identical input.
package dedup

import (
	"sort"
	"strings"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// descriptionKeyLen bounds how much of the normalized description joins
// the dedup key. Overlapping windows often re-extract the same entry with
// slightly different trailing text; the leading characters are stable.
const descriptionKeyLen = 40

// Key identifies a transaction for deduplication: day-truncated date,
// absolute amount, and the upper-cased head of its whitespace-normalized
// description.
func Key(c domain.Candidate) string {
	return c.Date.Format("2006-01-02") + "|" + c.Amount.Abs().String() + "|" + normalizeDescription(c.Description)
}

func normalizeDescription(desc string) string {
	norm := strings.ToUpper(strings.Join(strings.Fields(desc), " "))
	runes := []rune(norm)
	if len(runes) > descriptionKeyLen {
		runes = runes[:descriptionKeyLen]
	}
	return string(runes)
}

// Merge collapses candidates sharing a key and returns the survivors
// sorted ascending by date. Ties keep their first-seen order, so
// identical input always yields identical output.
//
// Collisions resolve most-complete-wins rather than first-wins: a copy
// carrying a running balance beats one without, then a copy carrying a
// reference number. On equal completeness the earliest-seen copy stays.
func Merge(candidates []domain.Candidate) []domain.Candidate {
	byKey := make(map[string]int, len(candidates))
	var order []domain.Candidate

	for _, c := range candidates {
		k := Key(c)
		at, seen := byKey[k]
		if !seen {
			byKey[k] = len(order)
			order = append(order, c)
			continue
		}
		if completeness(c) > completeness(order[at]) {
			order[at] = c
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Date.Before(order[j].Date)
	})
	return order
}

func completeness(c domain.Candidate) int {
	score := 0
	if c.Balance != nil {
		score += 2
	}
	if c.ReferenceNumber != nil {
		score++
	}
	return score
}
