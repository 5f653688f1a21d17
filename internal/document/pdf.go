package document

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates the plain text of every page, one page per line.
// A page that yields no extractable text contributes only the separator;
// only a file that cannot be opened or parsed at all is an error.
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if !page.V.IsNull() {
			if text, err := page.GetPlainText(nil); err == nil {
				b.WriteString(text)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
