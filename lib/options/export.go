package options

import (
	"encoding/json"
	"fmt"
	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"strings"
)

// --------------------------------------------------------------------------
// Diagnostic export
// --------------------------------------------------------------------------

// entry is the exported form of a record. Exports are lists so the write order survives.
type entry struct {
	Name  string `json:"name" yaml:"name" cbor:"name"`
	Type  string `json:"type" yaml:"type" cbor:"type"`
	Value any    `json:"value" yaml:"value" cbor:"value"`
}

// cborMode encodes with Core Deterministic Encoding, identical records give identical bytes
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("options: CBOR encoder initialization failed: " + err.Error())
	}
}

func entries(recs []Record) []entry {
	out := make([]entry, len(recs))
	for i, r := range recs {
		out[i] = entry{Name: r.Name, Type: r.Tag.String(), Value: r.Value}
		if r.Tag == TagChar {
			out[i].Value = r.Text()
		}
	}
	return out
}

// ExportText writes one name:type=value line per record
func ExportText(w io.Writer, recs []Record) error {
	for _, r := range recs {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// ExportJSON writes recs as an indented JSON array
func ExportJSON(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries(recs))
}

// ExportYAML writes recs as a YAML sequence
func ExportYAML(w io.Writer, recs []Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries(recs)); err != nil {
		return err
	}
	return enc.Close()
}

// ExportCBOR writes recs as a CBOR array
func ExportCBOR(w io.Writer, recs []Record) error {
	return cborMode.NewEncoder(w).Encode(entries(recs))
}

// Export dispatches on format: text, json, yaml or cbor
func Export(w io.Writer, format string, recs []Record) error {
	switch strings.ToLower(format) {
	case "", "text":
		return ExportText(w, recs)
	case "json":
		return ExportJSON(w, recs)
	case "yaml", "yml":
		return ExportYAML(w, recs)
	case "cbor":
		return ExportCBOR(w, recs)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// --------------------------------------------------------------------------
// Definition files
// --------------------------------------------------------------------------

// definition is one element of a definition file
type definition struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// ParseDefinitions reads a JSONC array of {"name", "type", "value"} objects
// into records. Comments and trailing commas are allowed. Values may be given
// as JSON literals or as strings in the name:type=value text syntax.
func ParseDefinitions(data []byte) ([]Record, error) {
	var defs []definition
	if err := json.Unmarshal(jsonc.ToJSON(data), &defs); err != nil {
		return nil, fmt.Errorf("parsing option definitions: %w", err)
	}
	recs := make([]Record, 0, len(defs))
	for i, d := range defs {
		tag, err := ParseTag(d.Type)
		if err != nil {
			return nil, fmt.Errorf("definition %d (%q): %w", i, d.Name, err)
		}
		text := string(d.Value)
		if strings.HasPrefix(text, `"`) {
			if err := json.Unmarshal(d.Value, &text); err != nil {
				return nil, fmt.Errorf("definition %d (%q): %w", i, d.Name, err)
			}
		}
		v, err := ParseValue(tag, text)
		if err != nil {
			return nil, fmt.Errorf("definition %d (%q): %w", i, d.Name, err)
		}
		rec := Record{Name: d.Name, Tag: tag, Value: v}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("definition %d: %w", i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// ReadDefinitions reads and parses a definition file
func ReadDefinitions(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	recs, err := ParseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
