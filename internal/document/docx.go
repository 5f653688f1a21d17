package document

import (
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// docxDecoder reads doc/docx files through go-docx, concatenating paragraph
// text with newline separators.
type docxDecoder struct{}

func (docxDecoder) DecodeText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", err
	}
	doc, err := docx.Parse(f, st.Size())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, it := range doc.Document.Body.Items {
		if p, ok := it.(*docx.Paragraph); ok {
			b.WriteString(p.String())
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String()), nil
}
