// Package export collects parsed entries, enforces code uniqueness, and
// persists the final sorted file.
package export

import (
	"sort"

	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/metrics"
	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/mkb"
)

// Assembler accumulates entries keyed by code. The same code frequently shows
// up on both an index summary and a detail page, sometimes with one of the
// descriptions blank; the latest occurrence's non-empty fields win, so
// detail-page text overrides an index summary, and an earlier value survives
// only where the newer entry is blank. Pages are visited in sorted order, so
// the outcome is deterministic.
type Assembler struct {
	byCode map[string]mkb.Entry
}

// NewAssembler returns an empty Assembler. Each pipeline run gets its own.
func NewAssembler() *Assembler {
	return &Assembler{byCode: make(map[string]mkb.Entry)}
}

// Add folds a batch of entries into the accumulator.
func (a *Assembler) Add(entries ...mkb.Entry) {
	for _, entry := range entries {
		existing, ok := a.byCode[entry.Code]
		if !ok {
			a.byCode[entry.Code] = entry
			continue
		}
		metrics.DuplicateCodes.Inc()
		if entry.Serbian == "" {
			entry.Serbian = existing.Serbian
		}
		if entry.Latin == "" {
			entry.Latin = existing.Latin
		}
		a.byCode[entry.Code] = entry
	}
}

// Len reports how many unique codes have been collected.
func (a *Assembler) Len() int {
	return len(a.byCode)
}

// Entries returns the deduplicated set sorted by natural code order.
func (a *Assembler) Entries() []mkb.Entry {
	entries := make([]mkb.Entry, 0, len(a.byCode))
	for _, entry := range a.byCode {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return mkb.CompareCodes(entries[i].Code, entries[j].Code) < 0
	})
	return entries
}
