// Package notes turns media records into markdown notes with yaml frontmatter.
//
// The emitted frontmatter is the flattened record after user remap rules have
// been applied, so the files slot directly into personal knowledge bases.
// Reading a note back reverses the remapping, yielding the record shape again.
package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/mediadex-cli/mediadex/filesystem"
	"github.com/mediadex-cli/mediadex/key"
	"github.com/mediadex-cli/mediadex/log"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/mediadex-cli/mediadex/remap"
	"github.com/mediadex-cli/mediadex/util"
	"github.com/mediadex-cli/mediadex/where"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const frontmatterFence = "---"

// Sink consumes finished records. The default implementation writes markdown
// notes, but anything that wants records at the end of a search can stand in.
type Sink interface {
	Write(record media.Record) (path string, err error)
}

// Writer is the markdown note sink.
type Writer struct {
	rules remap.Rules
}

// NewWriter loads the persisted remap rules and returns a note writer.
func NewWriter() (*Writer, error) {
	rules, err := remap.Load()
	if err != nil {
		return nil, err
	}
	return &Writer{rules: rules}, nil
}

// Folder resolves the directory notes are written to.
func Folder() string {
	if folder := viper.GetString(key.NotesFolder); folder != "" {
		return folder
	}
	return where.Notes()
}

// filenameContext is what the user's filename template renders against.
type filenameContext struct {
	Type   string
	Title  string
	Year   string
	Source string
}

// Filename renders the configured filename template for a record.
func Filename(record media.Record) (string, error) {
	tmpl, err := template.New("filename").Parse(viper.GetString(key.NotesFilenameTemplate))
	if err != nil {
		return "", fmt.Errorf("malformed filename template: %w", err)
	}

	base := record.Base()
	var rendered bytes.Buffer
	err = tmpl.Execute(&rendered, filenameContext{
		Type:   string(record.Type()),
		Title:  base.Title,
		Year:   base.Year,
		Source: base.DataSource,
	})
	if err != nil {
		return "", fmt.Errorf("malformed filename template: %w", err)
	}

	return util.SanitizeFilename(rendered.String()) + ".md", nil
}

// Render produces the full markdown note body for a record.
func (w *Writer) Render(record media.Record) ([]byte, error) {
	flat, err := record.Flatten()
	if err != nil {
		return nil, err
	}

	mapped := w.rules.Convert(record.Type(), flat)

	frontmatter, err := yaml.Marshal(mapped)
	if err != nil {
		return nil, err
	}

	var note bytes.Buffer
	note.WriteString(frontmatterFence + "\n")
	note.Write(frontmatter)
	note.WriteString(frontmatterFence + "\n")
	return note.Bytes(), nil
}

// Write renders the record and stores it under the configured notes folder,
// returning the path of the written file. Existing notes are preserved with a
// numbered filename unless overwriting is enabled.
func (w *Writer) Write(record media.Record) (string, error) {
	contents, err := w.Render(record)
	if err != nil {
		return "", err
	}

	filename, err := Filename(record)
	if err != nil {
		return "", err
	}

	fs := filesystem.API()
	folder := Folder()
	if err := fs.MkdirAll(folder, os.ModePerm); err != nil {
		return "", err
	}

	path := filepath.Join(folder, filename)
	if !viper.GetBool(key.NotesOverwrite) {
		path = uniquePath(fs, path)
	}

	if err := afero.WriteFile(fs, path, contents, 0644); err != nil {
		return "", err
	}

	log.Infof("wrote note %s", path)
	return path, nil
}

// uniquePath appends a counter until the filename no longer collides.
func uniquePath(fs afero.Fs, path string) string {
	exists, _ := afero.Exists(fs, path)
	if !exists {
		return path
	}

	stem := util.FileStem(path)
	dir := filepath.Dir(path)
	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d.md", stem, counter))
		if exists, _ := afero.Exists(fs, candidate); !exists {
			return candidate
		}
	}
}

// ReadBack parses a previously written note and reverses the remapping,
// returning the record's type tag and its flattened fields.
func (w *Writer) ReadBack(path string) (media.Type, map[string]any, error) {
	contents, err := afero.ReadFile(filesystem.API(), path)
	if err != nil {
		return "", nil, err
	}

	frontmatter, err := extractFrontmatter(string(contents))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}

	var mapped map[string]any
	if err := yaml.Unmarshal([]byte(frontmatter), &mapped); err != nil {
		return "", nil, fmt.Errorf("%s: malformed frontmatter: %w", path, err)
	}

	rawType, _ := mapped[remap.TypeKey].(string)
	mediaType, ok := media.ParseType(rawType)
	if !ok {
		return "", nil, fmt.Errorf("%s: unknown or missing media type %q", path, rawType)
	}

	return mediaType, w.rules.ConvertBack(mediaType, mapped), nil
}

func extractFrontmatter(contents string) (string, error) {
	trimmed := strings.TrimPrefix(contents, "\uFEFF")
	if !strings.HasPrefix(trimmed, frontmatterFence+"\n") {
		return "", fmt.Errorf("note has no frontmatter")
	}

	rest := strings.TrimPrefix(trimmed, frontmatterFence+"\n")
	end := strings.Index(rest, "\n"+frontmatterFence)
	if end < 0 {
		if strings.HasPrefix(rest, frontmatterFence) {
			return "", nil
		}
		return "", fmt.Errorf("unterminated frontmatter")
	}

	return rest[:end+1], nil
}
