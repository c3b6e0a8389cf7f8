// Package parser extracts MKB-10 entries out of a single HTML document.
//
// The source site has shifted its markup over the years, so three strategies
// are tried in order and the first one that yields entries wins: plain tables,
// structured blocks with mkb-flavored class names, and finally a line-oriented
// sweep over the visible text. Parsing is pure: the same document always
// produces the same entries, and no I/O happens here.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/metrics"
	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/mkb"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Field labels the site sometimes prepends to cell values, in Latin and
	// Cyrillic script, followed by ":" or "-".
	fieldLabel = regexp.MustCompile(`(?i)^(šifra|sifra|шифра|naziv|назив|opis|опис|latinski(\s+naziv)?|латински)\s*[:\-–]\s*`)
	textLine   = regexp.MustCompile(`^([A-Z]{1,2}\d{2}(?:\.[0-9A-Z]{1,4})?)\s+(.+)$`)
	fieldSplit = regexp.MustCompile(`\s{2,}\|\s{2,}|\s{2,}`)

	codeClasses    = []string{"sifra", "code", "oznaka"}
	serbianClasses = []string{"sr", "opis", "naziv"}
	latinClasses   = []string{"lat", "latin"}
)

// Parse extracts every MKB entry from one HTML document. Nodes whose code
// field is missing or malformed are dropped, never fatal.
func Parse(body []byte) ([]mkb.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	entries := parseTables(doc)
	if len(entries) == 0 {
		entries = parseStructuredBlocks(doc)
	}
	if len(entries) == 0 {
		entries = parseTextLines(doc)
	}

	metrics.EntriesParsed.Add(float64(len(entries)))
	return entries, nil
}

// parseTables reads classic three-column rows: code, Serbian name, Latin name.
func parseTables(doc *goquery.Document) []mkb.Entry {
	var entries []mkb.Entry
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, stripLabel(normalizeText(cell.Text())))
		})
		if len(cells) < 2 {
			return
		}
		if isHeaderRow(cells) {
			return
		}
		code := cells[0]
		if !mkb.IsCode(code) {
			metrics.EntriesDropped.Inc()
			return
		}
		entry := mkb.Entry{Code: code, Serbian: cells[1]}
		if len(cells) >= 3 {
			entry.Latin = cells[2]
		}
		entries = append(entries, entry)
	})
	return entries
}

// parseStructuredBlocks reads div/li containers whose class mentions "mkb" and
// whose children carry class names identifying the code and the two names.
func parseStructuredBlocks(doc *goquery.Document) []mkb.Entry {
	var entries []mkb.Entry
	doc.Find("div, li").Each(func(_ int, container *goquery.Selection) {
		if !classContains(container, "mkb") {
			return
		}
		codeSel := findFirstByClass(container, codeClasses, nil)
		code := ""
		if codeSel != nil {
			code = stripLabel(normalizeText(codeSel.Text()))
		}
		if !mkb.IsCode(code) {
			metrics.EntriesDropped.Inc()
			return
		}
		var exclude *html.Node
		if len(codeSel.Nodes) > 0 {
			exclude = codeSel.Nodes[0]
		}
		entry := mkb.Entry{Code: code}
		if sel := findFirstByClass(container, serbianClasses, exclude); sel != nil {
			entry.Serbian = stripLabel(normalizeText(sel.Text()))
		}
		if sel := findFirstByClass(container, latinClasses, exclude); sel != nil {
			entry.Latin = stripLabel(normalizeText(sel.Text()))
		}
		entries = append(entries, entry)
	})
	return entries
}

// parseTextLines is the last resort: scan visible text line by line for a
// leading code, then split the remainder on wide whitespace gaps.
func parseTextLines(doc *goquery.Document) []mkb.Entry {
	var entries []mkb.Entry
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		m := textLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entry := mkb.Entry{Code: m[1]}
		var parts []string
		for _, part := range fieldSplit.Split(m[2], -1) {
			part = stripLabel(normalizeText(part))
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			entry.Serbian = parts[0]
		}
		if len(parts) > 1 {
			entry.Latin = parts[1]
		}
		entries = append(entries, entry)
	}
	return entries
}

// isHeaderRow reports whether a table row is a column-heading row rather than
// a data row. Checked after label stripping, so a labeled data cell like
// "Šifra: A00" has already been reduced to its code.
func isHeaderRow(cells []string) bool {
	for _, cell := range cells {
		lower := strings.ToLower(cell)
		if strings.Contains(lower, "šifra") || strings.Contains(lower, "шифра") {
			return true
		}
	}
	return false
}

// normalizeText collapses whitespace runs to single spaces and trims the ends.
// Punctuation and diacritics pass through untouched.
func normalizeText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

func stripLabel(s string) string {
	return strings.TrimSpace(fieldLabel.ReplaceAllString(s, ""))
}

func classContains(s *goquery.Selection, substr string) bool {
	return strings.Contains(strings.ToLower(s.AttrOr("class", "")), substr)
}

// findFirstByClass returns the first descendant whose class attribute contains
// any of the given substrings, skipping the excluded node.
func findFirstByClass(container *goquery.Selection, substrings []string, exclude *html.Node) *goquery.Selection {
	var found *goquery.Selection
	container.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(s.Nodes) > 0 && s.Nodes[0] == exclude {
			return true
		}
		class := strings.ToLower(s.AttrOr("class", ""))
		for _, sub := range substrings {
			if strings.Contains(class, sub) {
				found = s
				return false
			}
		}
		return true
	})
	return found
}
