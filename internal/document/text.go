package document

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractPlainText reads a .txt file as UTF-8, falling back to Latin-1 for
// legacy exports. Latin-1 assigns a rune to every byte value, so the
// fallback cannot fail on any input; the only error path left is file I/O.
func extractPlainText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(b) {
		return string(b), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
