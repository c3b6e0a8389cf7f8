package mkb

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCode(t *testing.T) {
	t.Parallel()

	valid := []string{"A00", "A00.0", "Z99.9", "U07.1", "DA00", "C34.11"}
	for _, c := range valid {
		require.Truef(t, IsCode(c), "expected %q to be a valid code", c)
	}

	invalid := []string{"", "???", "a00", "A0", "A000", "A00.", "A00.12345", "Šifra", "A00 .1"}
	for _, c := range invalid {
		require.Falsef(t, IsCode(c), "expected %q to be rejected", c)
	}
}

func TestCompareCodes(t *testing.T) {
	t.Parallel()

	ordered := []string{"A00", "A00.0", "A00.1", "A00.9", "A01", "A01.0", "A99", "B00", "Z99.9"}
	for i := 0; i < len(ordered)-1; i++ {
		require.Negativef(t, CompareCodes(ordered[i], ordered[i+1]),
			"expected %q < %q", ordered[i], ordered[i+1])
		require.Positivef(t, CompareCodes(ordered[i+1], ordered[i]),
			"expected %q > %q", ordered[i+1], ordered[i])
	}
	require.Zero(t, CompareCodes("A00.0", "A00.0"))
}

func TestCompareCodesSortsShuffledInput(t *testing.T) {
	t.Parallel()

	codes := []string{"A01", "A00.1", "B00", "A00", "A00.0"}
	sort.Slice(codes, func(i, j int) bool { return CompareCodes(codes[i], codes[j]) < 0 })
	require.Equal(t, []string{"A00", "A00.0", "A00.1", "A01", "B00"}, codes)
}
