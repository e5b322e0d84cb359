package extract

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/plantpipe/core"
	"github.com/gaurav-prasanna/plantpipe/core/naming"
)

// Features is the ordered whitelist of feature labels. Its order is the CSV
// column order; its last entry ends the feature block of a text record.
var Features = []string{
	"Type",
	"Zone",
	"When it Blooms",
	"Where to Grow",
	"Soil Type",
	"When to Divide",
	"Habit",
	"Scent",
	"Attracts",
	"Resist",
	"Maturity Rate",
	"Long Lived",
	"Something Special or Unique",
}

// SentinelFeature is the last whitelisted feature. Once it is recorded,
// unlabeled lines are image names.
var SentinelFeature = Features[len(Features)-1]

var featureIndex = func() map[string]int {
	m := make(map[string]int, len(Features))
	for i, f := range Features {
		m[f] = i
	}
	return m
}()

const labelSep = ": "

// ParseState is the position of a RecordParser within a text record.
type ParseState int

const (
	CollectingFeatures ParseState = iota
	CollectingImageNames
)

func (s ParseState) String() string {
	switch s {
	case CollectingFeatures:
		return "collecting-features"
	case CollectingImageNames:
		return "collecting-image-names"
	default:
		return fmt.Sprintf("ParseState(%d)", int(s))
	}
}

// RecordParser is the line-oriented state machine for one text record.
// The first line is the full name; each later non-blank line is fed to Line.
type RecordParser struct {
	rec      *core.Record
	values   map[string]string
	state    ParseState
	sciFirst string
}

// NewRecordParser starts a record from its name line.
func NewRecordParser(nameLine string, order naming.Order) *RecordParser {
	id, ok := naming.Parse(nameLine, order)
	p := &RecordParser{
		rec:      &core.Record{Identity: id},
		values:   make(map[string]string, len(Features)),
		sciFirst: naming.FirstWord(id.ScientificName),
	}
	if !ok {
		p.rec.Warn("Unexpected full name shape: %s", naming.Collapse(nameLine))
	}
	return p
}

// State reports whether the parser is still reading features.
func (p *RecordParser) State() ParseState { return p.state }

// Line consumes one trimmed, non-blank line.
func (p *RecordParser) Line(line string) {
	label, value, labeled := strings.Cut(line, labelSep)
	if labeled {
		p.feature(label, strings.TrimSpace(value))
		return
	}

	if p.state == CollectingImageNames {
		p.rec.Tail = append(p.rec.Tail, p.imageName(line))
		return
	}
	// A bare line inside the feature block is a value whose label was lost.
	p.rec.Warn("Missing detail: %s", line)
	p.values[line] = ""
}

func (p *RecordParser) feature(label, value string) {
	if _, ok := featureIndex[label]; !ok {
		p.rec.Warn("Unknown feature %q: %s", label, value)
		return
	}
	p.values[label] = value
	if label == SentinelFeature {
		p.state = CollectingImageNames
	}
}

// imageName keeps a line that already starts with the genus and prefixes
// any other line with the scientific name as a cultivar.
func (p *RecordParser) imageName(line string) string {
	if p.sciFirst != "" && naming.FirstWord(line) == p.sciFirst {
		return line
	}
	return fmt.Sprintf("%s '%s'", p.rec.Identity.ScientificName, line)
}

// Record returns the finished record with one field per whitelisted
// feature, in whitelist order.
func (p *RecordParser) Record() *core.Record {
	p.rec.Labels = append([]string(nil), Features...)
	p.rec.Fields = make([]string, len(Features))
	for i, f := range Features {
		p.rec.Fields[i] = p.values[f]
	}
	return p.rec
}

// TextExtractor extracts a Record from a plain-text plant record.
type TextExtractor struct {
	Order naming.Order
}

// NewTextExtractor creates a TextExtractor for "Scientific (Common)" name lines.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{Order: naming.ScientificFirst}
}

// Extract runs a RecordParser over the lines of src.
func (e *TextExtractor) Extract(src *core.Source) (*core.Record, error) {
	lines, err := splitLines(src.Data)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("missing name line: %w", core.ErrNotPlantPage)
	}

	p := NewRecordParser(lines[0], e.Order)
	for _, line := range lines[1:] {
		if line != "" {
			p.Line(line)
		}
	}
	rec := p.Record()
	rec.Path = src.Path
	return rec, nil
}

// splitLines returns the trimmed lines of data.
func splitLines(data []byte) ([]string, error) {
	var lines []string
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return lines, nil
}
