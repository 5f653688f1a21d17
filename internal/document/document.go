// Package document turns uploaded CV files into plain text. Decoders are
// selected by file extension and report typed errors internally; the public
// boundary converts every failure into explanatory text so the web layer
// never sees an error from extraction.
package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// UnsupportedMessage is returned verbatim for extensions outside the
// supported set.
const UnsupportedMessage = "Unsupported file type"

// RichDecoder reads doc/docx content. It is an optional capability: when no
// decoder is configured the extractor degrades to an instructive message
// instead of failing.
type RichDecoder interface {
	DecodeText(path string) (string, error)
}

const richUnavailableMessage = "DOCX support requires the go-docx decoder, which is not configured in this build"

// Extractor dispatches a file to the decoder matching its extension.
type Extractor struct {
	// Rich handles doc/docx. Nil means the capability is absent.
	Rich RichDecoder
}

// NewExtractor returns an extractor with all decoders wired, including the
// docx reader.
func NewExtractor() *Extractor {
	return &Extractor{Rich: docxDecoder{}}
}

// ExtractText extracts the plain text of the file at path. It always
// returns a string: unsupported extensions yield UnsupportedMessage and
// decoder failures yield a "<Format> extraction failed: …" sentence. No
// error ever crosses this boundary.
func (e *Extractor) ExtractText(path string) (out string) {
	// Some binary decoders panic on hostile input; that must not cross the
	// boundary either.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("path", path).Msg("text extraction panicked")
			out = failureMessage(path, fmt.Errorf("%v", r))
		}
	}()
	text, err := e.extract(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("text extraction failed")
		return failureMessage(path, err)
	}
	return text
}

func (e *Extractor) extract(path string) (string, error) {
	switch extensionOf(path) {
	case "pdf":
		return extractPDF(path)
	case "txt":
		return extractPlainText(path)
	case "doc", "docx":
		if e.Rich == nil {
			return richUnavailableMessage, nil
		}
		return e.Rich.DecodeText(path)
	default:
		return UnsupportedMessage, nil
	}
}

func failureMessage(path string, err error) string {
	var format string
	switch extensionOf(path) {
	case "pdf":
		format = "PDF"
	case "txt":
		format = "Text file"
	case "doc", "docx":
		format = "DOCX"
	default:
		format = "Text"
	}
	return fmt.Sprintf("%s extraction failed: %s", format, err.Error())
}

// extensionOf returns the lowercased extension without the leading dot.
func extensionOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
