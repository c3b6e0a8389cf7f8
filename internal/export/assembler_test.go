package export

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/mkb"
)

func TestAssemblerSortsByCode(t *testing.T) {
	t.Parallel()

	a := NewAssembler()
	a.Add(
		mkb.Entry{Code: "A01", Serbian: "Trbušni tifus"},
		mkb.Entry{Code: "A00.1", Serbian: "Kolera el tor"},
		mkb.Entry{Code: "A00", Serbian: "Kolera"},
		mkb.Entry{Code: "A00.0", Serbian: "Kolera klasična"},
	)

	entries := a.Entries()
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		codes = append(codes, e.Code)
	}
	require.Equal(t, []string{"A00", "A00.0", "A00.1", "A01"}, codes)
}

func TestAssemblerLaterDuplicateOverrides(t *testing.T) {
	t.Parallel()

	a := NewAssembler()
	a.Add(mkb.Entry{Code: "A00", Serbian: "Kolera", Latin: "Cholera"})
	a.Add(mkb.Entry{Code: "A00", Serbian: "Kolera (detaljno)", Latin: "Cholera vera"})

	entries := a.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, mkb.Entry{Code: "A00", Serbian: "Kolera (detaljno)", Latin: "Cholera vera"}, entries[0])
}

func TestAssemblerKeepsEarlierFieldWhenLaterBlank(t *testing.T) {
	t.Parallel()

	a := NewAssembler()
	a.Add(mkb.Entry{Code: "A00", Serbian: "Kolera", Latin: "Cholera"})
	a.Add(mkb.Entry{Code: "A00", Serbian: "Kolera (detaljno)"})

	entries := a.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "Kolera (detaljno)", entries[0].Serbian)
	require.Equal(t, "Cholera", entries[0].Latin, "blank fields in the newer entry fall back to the kept value")
}

func TestAssemblerLen(t *testing.T) {
	t.Parallel()

	a := NewAssembler()
	require.Zero(t, a.Len())
	a.Add(mkb.Entry{Code: "A00"}, mkb.Entry{Code: "A01"}, mkb.Entry{Code: "A00"})
	require.Equal(t, 2, a.Len())
}
