// Package reference reads author and affiliation reference lists into
// catalog records.
package reference

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"sigs.k8s.io/yaml"

	"tableflip.dev/celexta/pkg/catalog"
)

// Format is the encoding of a reference list.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

//go:embed authors.csv
var defaultAuthors []byte

var (
	primaryHeaders   = []string{"name", "author", "primary"}
	secondaryHeaders = []string{"affiliation", "institute", "institution", "secondary"}
)

// FormatFor picks a Format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".txt":
		return FormatTSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("reference: %s: unsupported extension", path)
	}
}

// Load reads the reference list at path.
func Load(path string) ([]catalog.Record, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	defer f.Close()

	records, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("reference: %s: %w", path, err)
	}
	return records, nil
}

// Default returns the built-in author list.
func Default() []catalog.Record {
	records, err := Parse(bytes.NewReader(defaultAuthors), FormatCSV)
	if err != nil {
		// The embedded file is part of the build.
		panic(err)
	}
	return records
}

// Parse decodes records from r.
func Parse(r io.Reader, format Format) ([]catalog.Record, error) {
	switch format {
	case FormatCSV:
		return parseDelimited(r, ',')
	case FormatTSV:
		return parseDelimited(r, '\t')
	case FormatJSON, FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return parseDocument(data)
	case FormatTOML:
		return parseTOML(r)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func parseDelimited(r io.Reader, comma rune) ([]catalog.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	primary, secondary := 0, 1
	if len(rows) > 0 {
		if p, s, ok := headerColumns(rows[0]); ok {
			primary, secondary = p, s
			rows = rows[1:]
		}
	}

	records := make([]catalog.Record, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		records = append(records, catalog.NewRecord(cell(row, primary), cell(row, secondary)))
	}
	return records, nil
}

// headerColumns reports the primary and secondary column positions when row
// is a header. A header needs at least a recognisable primary column.
func headerColumns(row []string) (int, int, bool) {
	primary, secondary := -1, -1
	for i, c := range row {
		name := strings.ToLower(strings.TrimSpace(c))
		switch {
		case primary < 0 && contains(primaryHeaders, name):
			primary = i
		case secondary < 0 && contains(secondaryHeaders, name):
			secondary = i
		}
	}
	if primary < 0 {
		return 0, 0, false
	}
	return primary, secondary, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// document accepts both the catalog field names and the reference-list
// aliases.
type document struct {
	Primary     string `json:"primary" toml:"primary"`
	Secondary   string `json:"secondary" toml:"secondary"`
	Name        string `json:"name" toml:"name"`
	Affiliation string `json:"affiliation" toml:"affiliation"`
}

// tomlDocument holds a TOML reference list written as [[author]] tables.
type tomlDocument struct {
	Authors []document `toml:"author"`
}

func parseDocument(data []byte) ([]catalog.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []catalog.Record{}, nil
	}
	var docs []document
	// yaml.Unmarshal converts to JSON first, so it reads both encodings.
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	return fromDocuments(docs), nil
}

func parseTOML(r io.Reader) ([]catalog.Record, error) {
	var doc tomlDocument
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return fromDocuments(doc.Authors), nil
}

func fromDocuments(docs []document) []catalog.Record {
	records := make([]catalog.Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, catalog.NewRecord(
			firstNonEmpty(d.Primary, d.Name),
			firstNonEmpty(d.Secondary, d.Affiliation),
		))
	}
	return records
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
