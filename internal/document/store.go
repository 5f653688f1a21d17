package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyFilename rejects uploads that carry no filename at all.
	ErrEmptyFilename = errors.New("empty filename")
	// ErrFileType rejects uploads whose extension is not in the allowed set.
	ErrFileType = errors.New("file type not allowed")
	// ErrOutsideUploadDir guards deletion against paths that escape the
	// upload directory.
	ErrOutsideUploadDir = errors.New("path outside upload directory")
)

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"txt":  true,
	"doc":  true,
	"docx": true,
}

// Processor owns the upload directory: it validates and stores incoming CV
// files, extracts their text, and writes generated artifacts (customized
// CVs, cover letters) next to them.
type Processor struct {
	Dir string

	// ExtractText converts a stored file into text. Defaults to the
	// extractor passed to NewProcessor; a field so tests can observe calls.
	ExtractText func(path string) string
}

// NewProcessor creates the upload directory if needed and wires the
// extractor in.
func NewProcessor(dir string, ex *Extractor) (*Processor, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Processor{Dir: dir, ExtractText: ex.ExtractText}, nil
}

// Allowed reports whether the filename has an accepted extension.
func Allowed(filename string) bool {
	return allowedExtensions[extensionOf(filename)]
}

// SaveUpload validates the upload, stores it under a collision-resistant
// name of the form cv_<userID>_<rand8hex>.<ext>, and extracts its text.
// Validation failures are reported before any file is written or any
// extraction runs.
func (p *Processor) SaveUpload(data []byte, filename string, userID int) (string, string, error) {
	if filename == "" {
		return "", "", ErrEmptyFilename
	}
	ext := extensionOf(filename)
	if !allowedExtensions[ext] {
		return "", "", fmt.Errorf("%w: %q", ErrFileType, ext)
	}

	name := fmt.Sprintf("cv_%d_%s.%s", userID, randomSuffix(), ext)
	path := filepath.Join(p.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("save upload: %w", err)
	}
	log.Info().Str("path", path).Msg("cv file saved")

	return path, p.ExtractText(path), nil
}

// SaveCustomizedCV writes a customized CV artifact and returns its path.
// The write is UTF-8 byte-faithful: reading the file back yields exactly
// the text that was passed in.
func (p *Processor) SaveCustomizedCV(text string, jobID, userID int) (string, error) {
	return p.saveArtifact("custom_cv", text, jobID, userID)
}

// SaveCoverLetter writes a generated cover letter and returns its path.
func (p *Processor) SaveCoverLetter(text string, jobID, userID int) (string, error) {
	return p.saveArtifact("cover_letter", text, jobID, userID)
}

func (p *Processor) saveArtifact(kind, text string, jobID, userID int) (string, error) {
	name := fmt.Sprintf("%s_%d_%d_%s.txt", kind, userID, jobID, randomSuffix())
	path := filepath.Join(p.Dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", kind, err)
	}
	log.Info().Str("path", path).Msg("artifact saved")
	return path, nil
}

// Delete removes a stored file. Paths outside the upload directory are
// refused.
func (p *Processor) Delete(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir, err := filepath.Abs(p.Dir)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(abs, dir+string(filepath.Separator)) {
		return ErrOutsideUploadDir
	}
	return os.Remove(abs)
}

// CVFile describes one uploaded CV for listing in the UI.
type CVFile struct {
	Filename    string    `json:"filename"`
	Path        string    `json:"filepath"`
	DisplayName string    `json:"display_name"`
	Modified    time.Time `json:"modified_time"`
	Extension   string    `json:"extension"`
}

// ListCVs returns the user's uploaded CVs, newest first. Generated
// artifacts (custom_cv_*, cover_letter_*) are excluded by the cv_ prefix.
func (p *Processor) ListCVs(userID int) []CVFile {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		log.Error().Err(err).Str("dir", p.Dir).Msg("list cv files failed")
		return nil
	}

	prefix := fmt.Sprintf("cv_%d_", userID)
	var out []CVFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		ext := extensionOf(e.Name())
		out = append(out, CVFile{
			Filename:    e.Name(),
			Path:        filepath.Join(p.Dir, e.Name()),
			DisplayName: fmt.Sprintf("CV (%s) - %s", strings.ToUpper(ext), info.ModTime().Format("01/02/2006 15:04")),
			Modified:    info.ModTime(),
			Extension:   ext,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Modified.After(out[j].Modified) })
	return out
}

// TextByFilename extracts the text of a stored CV addressed by bare
// filename. Names containing path separators are refused.
func (p *Processor) TextByFilename(filename string) (string, error) {
	if filename == "" || strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	path := filepath.Join(p.Dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("cv file not found: %w", err)
	}
	return p.ExtractText(path), nil
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
