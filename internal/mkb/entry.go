// Package mkb defines the domain types for the Serbian MKB-10 (ICD-10)
// classification and the ordering rules for its codes.
package mkb

import (
	"regexp"
	"strconv"
	"strings"
)

// Entry is a single MKB-10 record as published on the source site.
type Entry struct {
	Code    string `json:"code"`
	Serbian string `json:"description_serbian"`
	Latin   string `json:"description_latin"`
}

// codePattern matches codes the way the site publishes them: one or two
// capital letters, two digits, and an optional dotted suffix of up to four
// alphanumerics (A00, A00.0, U07.1, ...).
var codePattern = regexp.MustCompile(`^[A-Z]{1,2}\d{2}(?:\.[0-9A-Z]{1,4})?$`)

var codeSegments = regexp.MustCompile(`^([A-Z]+)(\d+)(?:\.([0-9A-Z]+))?$`)

// IsCode reports whether s is a well-formed MKB-10 code.
func IsCode(s string) bool {
	return codePattern.MatchString(s)
}

// CompareCodes orders two codes by their natural segments: alphabetic prefix,
// then the numeric block as an integer, then the optional suffix as a string.
// The empty suffix sorts first, so A00 < A00.0 < A00.1 < A01.
func CompareCodes(a, b string) int {
	ap, an, as := splitCode(a)
	bp, bn, bs := splitCode(b)
	if c := strings.Compare(ap, bp); c != 0 {
		return c
	}
	if an != bn {
		if an < bn {
			return -1
		}
		return 1
	}
	return strings.Compare(as, bs)
}

func splitCode(code string) (prefix string, number int, suffix string) {
	m := codeSegments.FindStringSubmatch(code)
	if m == nil {
		// Malformed codes never reach the writer, but keep the order total.
		return code, 0, ""
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		n = 0
	}
	return m[1], n, m[3]
}
