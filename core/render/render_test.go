package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/plantpipe/core"
)

func sampleRecords() []*core.Record {
	return []*core.Record{
		{
			Identity: core.PlantIdentity{ScientificName: "Rosa rugosa", CommonName: "Beach Rose", Slug: "rosa-rugosa"},
			Labels:   []string{"Type", "Zone", "Scent"},
			Fields:   []string{"Shrub", "3-9", ""},
			Tail:     []string{"Rosa rugosa 'Alba'", "Rosa rugosa 'Hansa'"},
		},
		{
			Identity: core.PlantIdentity{ScientificName: "Hosta 'Blue Mouse Ears'", Slug: "hosta-blue-mouse-ears"},
			Labels:   []string{"Type"},
			Fields:   []string{"Perennial <shade> | low"},
		},
	}
}

// --- LinkRenderer Tests ---

func TestLinkRenderer_Line(t *testing.T) {
	r := NewLinkRenderer("plant-details.html", "      ")
	recs := sampleRecords()

	want := `      <li><a href="plant-details.html?name=rosa-rugosa">Rosa rugosa (Beach Rose)</a></li>`
	if got := r.Line(recs[0]); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}

	want = `      <li><a href="plant-details.html?name=hosta-blue-mouse-ears">Hosta 'Blue Mouse Ears'</a></li>`
	if got := r.Line(recs[1]); got != want {
		t.Errorf("Line() without common name = %q, want %q", got, want)
	}
}

// --- JSONRenderer Tests ---

func TestJSONRenderer_Render(t *testing.T) {
	data, err := NewJSONRenderer().Render(sampleRecords()[:1])
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `[
  {
    "Scientific Name": "Rosa rugosa",
    "Common Name": "Beach Rose",
    "Type": "Shrub",
    "Zone": "3-9",
    "Scent": "",
    "Image Titles": "Rosa rugosa 'Alba':Rosa rugosa 'Hansa'"
  }
]
`
	if string(data) != want {
		t.Errorf("Render() =\n%s\nwant\n%s", data, want)
	}
}

func TestJSONRenderer_ValidAndUnescaped(t *testing.T) {
	data, err := NewJSONRenderer().Render(sampleRecords())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded []map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, data)
	}
	if len(decoded) != 2 {
		t.Fatalf("len = %d", len(decoded))
	}
	if decoded[1]["Type"] != "Perennial <shade> | low" {
		t.Errorf("Type = %q", decoded[1]["Type"])
	}
	if !bytes.Contains(data, []byte("<shade>")) {
		t.Error("HTML characters should not be escaped")
	}
}

func TestJSONRenderer_Empty(t *testing.T) {
	data, err := NewJSONRenderer().Render(nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Render(nil) = %q", data)
	}
}

// --- YAMLRenderer Tests ---

func TestYAMLRenderer_Render(t *testing.T) {
	data, err := NewYAMLRenderer().Render(sampleRecords())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded []map[string]string
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, data)
	}
	if decoded[0]["Zone"] != "3-9" || decoded[0]["Common Name"] != "Beach Rose" {
		t.Errorf("decoded[0] = %v", decoded[0])
	}

	out := string(data)
	if strings.Index(out, "Scientific Name") > strings.Index(out, "Image Titles") {
		t.Error("keys should keep column order")
	}
}

// --- MarkdownRenderer Tests ---

func TestMarkdownRenderer_Render(t *testing.T) {
	data, err := NewMarkdownRenderer().Render(sampleRecords())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"## Rosa rugosa (Beach Rose)",
		"| Type | Shrub |",
		"| Zone | 3-9 |",
		"Images: Rosa rugosa 'Alba', Rosa rugosa 'Hansa'",
		`| Type | Perennial <shade> \| low |`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "| Scent |") {
		t.Error("empty features should be skipped")
	}
}

// --- PDFRenderer Tests ---

func TestPDFRenderer_Render(t *testing.T) {
	data, err := NewPDFRenderer().Render(sampleRecords())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 16)])
	}
}

func TestExtensions(t *testing.T) {
	renderers := map[string]core.Renderer{
		".json": NewJSONRenderer(),
		".yaml": NewYAMLRenderer(),
		".md":   NewMarkdownRenderer(),
		".pdf":  NewPDFRenderer(),
	}
	for want, r := range renderers {
		if got := r.Extension(); got != want {
			t.Errorf("%T.Extension() = %q, want %q", r, got, want)
		}
	}
}
