package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/mkb"
)

// Delimiter separates the three fields on every output line.
const Delimiter = "|"

// WriteFile serializes entries as pipe-delimited lines and moves the result
// into place atomically: the destination either holds the complete file or is
// left untouched. There is no header row, so line count equals entry count. A
// literal "|" inside a field is escaped as "\|" and a backslash as "\\".
func WriteFile(path string, entries []mkb.Entry) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()           //nolint:errcheck // already failing
			os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(escapeField(entry.Code))
		sb.WriteString(Delimiter)
		sb.WriteString(escapeField(entry.Serbian))
		sb.WriteString(Delimiter)
		sb.WriteString(escapeField(entry.Latin))
		sb.WriteByte('\n')
	}

	if _, err = tmp.WriteString(sb.String()); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

func escapeField(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, Delimiter, `\`+Delimiter)
}
