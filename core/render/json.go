// Package render — JSON and YAML catalogs.
// Each record becomes one object keyed by column name, keys in CSV column
// order, which is the shape the site's detail page script consumes.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/plantpipe/core"
)

// JSONRenderer produces a JSON array of ordered objects.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the records into a JSON array.
func (r *JSONRenderer) Render(records []*core.Record) ([]byte, error) {
	if len(records) == 0 {
		return []byte("[]\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("[")
	for i, rec := range records {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		values := rec.Values()
		for j, col := range rec.Header() {
			if j > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n    ")
			if err := writeJSONString(&buf, col); err != nil {
				return nil, fmt.Errorf("marshaling JSON: %w", err)
			}
			buf.WriteString(": ")
			if err := writeJSONString(&buf, values[j]); err != nil {
				return nil, fmt.Errorf("marshaling JSON: %w", err)
			}
		}
		buf.WriteString("\n  }")
	}
	buf.WriteString("\n]\n")
	return buf.Bytes(), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// writeJSONString writes s as a JSON string without HTML escaping.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// YAMLRenderer produces a YAML sequence of ordered mappings.
type YAMLRenderer struct{}

// NewYAMLRenderer creates a YAMLRenderer.
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// Render converts the records into a YAML document.
func (r *YAMLRenderer) Render(records []*core.Record) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range records {
		m := &yaml.Node{Kind: yaml.MappingNode}
		values := rec.Values()
		for j, col := range rec.Header() {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values[j]},
			)
		}
		seq.Content = append(seq.Content, m)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{seq}}); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for YAML output.
func (r *YAMLRenderer) Extension() string {
	return ".yaml"
}
