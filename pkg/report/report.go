// Package report renders audit results as JSON, Markdown, HTML or YAML and
// writes them to the output directory.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/styleguide-audit/models"
	"github.com/dtnitsch/styleguide-audit/pkg/storage"
	"gopkg.in/yaml.v3"
)

// Format is a report output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatYAML     Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatMarkdown, FormatHTML, FormatYAML}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	if strings.EqualFold(s, "md") {
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (want json, markdown, html or yaml)", s)
}

// Extension is the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatYAML:
		return "yaml"
	}
	return string(f)
}

// Render produces the report bytes for result in the given format.
func Render(format Format, result models.AuditResult, fixes []models.FixResult) ([]byte, error) {
	rep := Report{
		Summary: BuildSummary(result, fixes),
		Pages:   result.Pages,
		Fixes:   fixes,
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error marshalling report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return nil, fmt.Errorf("error encoding yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("error encoding yaml report: %w", err)
		}
		return buf.Bytes(), nil
	case FormatMarkdown:
		return renderMarkdown(rep), nil
	case FormatHTML:
		return renderHTML(rep)
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

// Write renders the report and saves it under dir as
// styleguide-audit-<date>.<ext>. It returns the written path.
func Write(dir string, format Format, result models.AuditResult, fixes []models.FixResult, s *storage.Storage) (string, error) {
	data, err := Render(format, result, fixes)
	if err != nil {
		return "", err
	}
	date := result.GeneratedAt.Format("2006-01-02")
	path := filepath.Join(dir, fmt.Sprintf("styleguide-audit-%s.%s", date, format.Extension()))
	if err := s.SaveFile(path, data); err != nil {
		return "", fmt.Errorf("error saving report: %w", err)
	}
	return path, nil
}
