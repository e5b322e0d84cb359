package extract

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/plantpipe/core"
	"github.com/gaurav-prasanna/plantpipe/core/naming"
)

// legacyPadAfter is followed by an empty "Resists" detail in legacy records,
// whose source files never carried that line.
const legacyPadAfter = "Attracts"

// LegacyTextExtractor reproduces the first text converter: no whitelist,
// every non-blank line after the name is one detail in input order.
type LegacyTextExtractor struct {
	Order naming.Order
}

// NewLegacyTextExtractor creates a LegacyTextExtractor.
func NewLegacyTextExtractor() *LegacyTextExtractor {
	return &LegacyTextExtractor{Order: naming.ScientificFirst}
}

// Extract emits each "Label: value" value (empty for bare lines) and pads
// an empty detail after every Attracts line.
func (e *LegacyTextExtractor) Extract(src *core.Source) (*core.Record, error) {
	lines, err := splitLines(src.Data)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("missing name line: %w", core.ErrNotPlantPage)
	}

	rec := &core.Record{Path: src.Path}
	id, ok := naming.Parse(lines[0], e.Order)
	if !ok {
		rec.Warn("Unexpected full name shape: %s", naming.Collapse(lines[0]))
	}
	rec.Identity = id

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		label, value, _ := strings.Cut(line, labelSep)
		rec.Labels = append(rec.Labels, label)
		rec.Fields = append(rec.Fields, value)
		if label == legacyPadAfter {
			rec.Labels = append(rec.Labels, "Resists")
			rec.Fields = append(rec.Fields, "")
		}
	}
	// A name-only record still carries one empty detail column.
	if len(rec.Fields) == 0 {
		rec.Labels = append(rec.Labels, "")
		rec.Fields = append(rec.Fields, "")
	}
	return rec, nil
}
