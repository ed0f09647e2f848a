// Package markup renders the note as a portable markdown document with
// YAML frontmatter, used by the export/import commands for backup and
// restore of the single entry.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/inkwell/pkg/core"
)

type frontmatter struct {
	ID        string `yaml:"id"`
	UpdatedAt int64  `yaml:"updated_at"`
}

// Marshal renders the entry: a YAML frontmatter block carrying the record
// fields, followed by the raw content as the document body.
func Marshal(e core.Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(frontmatter{ID: e.ID, UpdatedAt: e.UpdatedAt}); err != nil {
		return nil, err
	}
	encoder.Close()
	buf.WriteString("---\n")
	buf.WriteString(e.Content)

	return buf.Bytes(), nil
}

// Parse reads a document produced by Marshal. A document without a
// frontmatter block is accepted as bare content under the fixed entry ID.
func Parse(data []byte) (core.Entry, error) {
	entry := core.Entry{ID: core.EntryID}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		entry.Content = string(data)
		return entry, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return core.Entry{}, errors.New("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(parts[0], &fm); err != nil {
		return core.Entry{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if fm.ID != "" {
		entry.ID = fm.ID
	}
	entry.UpdatedAt = fm.UpdatedAt

	content := strings.TrimPrefix(string(parts[1]), "\n")
	content = strings.TrimPrefix(content, "\r\n")
	entry.Content = content

	return entry, nil
}
