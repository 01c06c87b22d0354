package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a subject file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from the file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type rawFile struct {
	Content []rawSubject `json:"content" yaml:"content"`
}

type rawSubject struct {
	ID       string        `json:"id" yaml:"id"`
	Status   string        `json:"status" yaml:"status"`
	Evidence []rawEvidence `json:"evidence" yaml:"evidence"`
}

type rawEvidence struct {
	Kind       string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Authority  string   `json:"authority" yaml:"authority"`
	License    string   `json:"license" yaml:"license"`
	Score      int      `json:"score" yaml:"score"`
	URL        string   `json:"url,omitempty" yaml:"url,omitempty"`
	Discovered []string `json:"discovered,omitempty" yaml:"discovered,omitempty"`
}

// LoadFile reads subjects from a JSON or YAML file. A path of "-" reads JSON
// from stdin.
func LoadFile(path string) ([]Subject, error) {
	if path == "-" {
		return Load(os.Stdin, FormatJSON)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening subject file: %w", err)
	}
	defer f.Close()
	return Load(f, FormatForPath(path))
}

// Load decodes subjects from r.
func Load(r io.Reader, format Format) ([]Subject, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading subjects: %w", err)
	}

	var raw rawFile
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported subject format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing subjects: %w", err)
	}

	subjects := make([]Subject, 0, len(raw.Content))
	for i, rs := range raw.Content {
		id, err := ParseID(rs.ID)
		if err != nil {
			return nil, fmt.Errorf("content[%d]: %w", i, err)
		}
		status, err := ParseStatus(rs.Status)
		if err != nil {
			return nil, fmt.Errorf("content[%d]: %w", i, err)
		}
		s := Subject{ID: id, Status: status}
		for _, re := range rs.Evidence {
			s.Evidence = append(s.Evidence, re.evidence())
		}
		subjects = append(subjects, s)
	}
	return subjects, nil
}

func (re rawEvidence) evidence() Evidence {
	rec := Record{
		Authority: re.Authority,
		License:   re.License,
		Score:     re.Score,
		URL:       re.URL,
	}
	if re.Kind == "aggregated" || re.Authority == AuthorityClearlyDefined {
		return Aggregated{Record: rec, Discovered: re.Discovered}
	}
	return Generic{Record: rec}
}
